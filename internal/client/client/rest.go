package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/vehireg/internal/client/assets"
	"github.com/dmitrijs2005/vehireg/internal/client/models"
	"github.com/dmitrijs2005/vehireg/internal/logging"
)

const (
	RequestIDHeader = "X-Request-ID"
	maxResponseBody = 8 << 20
)

type RESTClient struct {
	baseURL string
	http    *http.Client
	opener  assets.Opener
	logger  logging.Logger
	newID   func() string
}

// NewRESTClient returns a client for the API rooted at baseURL, e.g.
// http://127.0.0.1:8080/api/vehicles. Image URIs are read through opener.
func NewRESTClient(baseURL string, timeout time.Duration, opener assets.Opener, logger logging.Logger) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: want http(s)://host/path", baseURL)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		opener:  opener,
		logger:  logger,
		newID:   uuid.NewString,
	}, nil
}

func (c *RESTClient) ListMakes(ctx context.Context) ([]models.Make, error) {
	var out []models.Make
	if err := c.getJSON(ctx, "/makes", &out); err != nil {
		return nil, fmt.Errorf("list makes: %w", err)
	}
	return out, nil
}

func (c *RESTClient) ListModels(ctx context.Context) ([]models.Model, error) {
	var out []models.Model
	if err := c.getJSON(ctx, "/models", &out); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return out, nil
}

func (c *RESTClient) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var out []models.Vehicle
	if err := c.getJSON(ctx, "/vehicles", &out); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return out, nil
}

func (c *RESTClient) GetVehicle(ctx context.Context, id models.ID) (*models.Vehicle, error) {
	var out models.Vehicle
	if err := c.getJSON(ctx, "/vehicles/"+url.PathEscape(id.String()), &out); err != nil {
		return nil, fmt.Errorf("get vehicle %s: %w", id, err)
	}
	return &out, nil
}

func (c *RESTClient) SubmitVehicle(ctx context.Context, s models.Submission) error {
	body, ct, err := c.encode(func(w *multipart.Writer) error {
		return writeSubmission(ctx, w, c.opener, s)
	})
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	if err := c.send(ctx, http.MethodPost, "/save", ct, body, false); err != nil {
		return fmt.Errorf("submit vehicle: %w", err)
	}
	regNo, _ := s.Field(models.FieldRegNo)
	c.logger.Info(ctx, "vehicle submitted", "reg_no", regNo, "images", len(s.Images))
	return nil
}

// UpdateVehicle replaces the fields of vehicle id. Only the images in s
// are uploaded; tags without an image keep their stored photo.
func (c *RESTClient) UpdateVehicle(ctx context.Context, id models.ID, s models.Submission) error {
	body, ct, err := c.encode(func(w *multipart.Writer) error {
		return writeSubmission(ctx, w, c.opener, s)
	})
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}
	if err := c.send(ctx, http.MethodPut, "/"+url.PathEscape(id.String()), ct, body, false); err != nil {
		return fmt.Errorf("update vehicle %s: %w", id, err)
	}
	c.logger.Info(ctx, "vehicle updated", "id", id.String(), "images", len(s.Images))
	return nil
}

func (c *RESTClient) DeleteVehicle(ctx context.Context, id models.ID) error {
	if err := c.send(ctx, http.MethodDelete, "/"+url.PathEscape(id.String()), "", nil, false); err != nil {
		return fmt.Errorf("delete vehicle %s: %w", id, err)
	}
	c.logger.Info(ctx, "vehicle deleted", "id", id.String())
	return nil
}

func (c *RESTClient) CreateMake(ctx context.Context, m models.NewMake) error {
	body, ct, err := c.encode(func(w *multipart.Writer) error {
		return writeMake(ctx, w, c.opener, m)
	})
	if err != nil {
		return fmt.Errorf("encode make: %w", err)
	}
	if err := c.send(ctx, http.MethodPost, "/makes", ct, body, true); err != nil {
		return fmt.Errorf("create make: %w", err)
	}
	c.logger.Info(ctx, "make created", "name", m.Name)
	return nil
}

func (c *RESTClient) CreateModel(ctx context.Context, m models.NewModel) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := c.send(ctx, http.MethodPost, "/models", "application/json", bytes.NewReader(b), true); err != nil {
		return fmt.Errorf("create model: %w", err)
	}
	c.logger.Info(ctx, "model created", "name", m.Name, "make_id", m.MakeID.String())
	return nil
}

// encode buffers a multipart body so that unreadable images fail before
// anything is sent.
func (c *RESTClient) encode(fill func(w *multipart.Writer) error) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *RESTClient) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	env, ok := decodeEnvelope(body)
	if !ok {
		return errors.New("malformed response envelope")
	}
	if env.rejected() {
		return &StatusError{StatusCode: http.StatusOK, Message: env.Message, Err: ErrRejected}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// send performs a write. With checkEnvelope set, a 2xx reply carrying
// status=false is reported as ErrRejected.
func (c *RESTClient) send(ctx context.Context, method, path, contentType string, body io.Reader, checkEnvelope bool) error {
	resp, err := c.do(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	if !checkEnvelope {
		return nil
	}
	if env, ok := decodeEnvelope(resp); ok && env.rejected() {
		return &StatusError{StatusCode: http.StatusOK, Message: env.Message, Err: ErrRejected}
	}
	return nil
}

// do executes one request and returns the body of a 2xx response.
func (c *RESTClient) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	reqID := c.newID()
	log := c.logger.With("request_id", reqID, "method", method, "path", path)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, b)
	}
	return b, nil
}
var _ Client = (*RESTClient)(nil)
