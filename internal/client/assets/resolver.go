package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
	"github.com/dmitrijs2005/vehireg/internal/logging"
	"github.com/dmitrijs2005/vehireg/internal/netx"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
	ErrNotImage          = errors.New("not an image")
	ErrS3Unavailable     = errors.New("s3 access is not configured")
)

// Opener opens the content behind an image URI.
type Opener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// S3Factory builds an S3 object getter on first use.
type S3Factory func(ctx context.Context) (ObjectGetter, error)

// Resolver implements Opener for the schemes listed in the package doc.
type Resolver struct {
	httpClient *http.Client
	s3Factory  S3Factory
	s3         ObjectGetter
	logger     logging.Logger
}

func NewResolver(httpClient *http.Client, s3Factory S3Factory, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Resolver{httpClient: httpClient, s3Factory: s3Factory, logger: logger}
}

// Open returns a reader over the content at uri.
func (r *Resolver) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, errors.New("empty uri")
	}

	switch scheme(uri) {
	case "":
		return os.Open(uri)
	case "file":
		p, err := filePath(uri)
		if err != nil {
			return nil, err
		}
		return os.Open(p)
	case "data":
		d, err := ParseDataURI(uri)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(d.Data)), nil
	case "s3":
		return r.openS3(ctx, uri)
	case "http", "https":
		r.logger.Debug(ctx, "downloading image", "uri", uri)
		return netx.Download(ctx, r.httpClient, uri)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
}

// Inspect opens uri, sniffs its MIME type and returns an Image ready for a
// wizard slot. fallbackName is used when the URI has no usable base name.
func (r *Resolver) Inspect(ctx context.Context, uri, fallbackName string) (models.Image, error) {
	uri = strings.TrimSpace(uri)

	if scheme(uri) == "data" {
		d, err := ParseDataURI(uri)
		if err != nil {
			return models.Image{}, err
		}
		// the declared media type is not trusted
		mt := DetectBytes(d.Data)
		if !IsImage(mt) {
			return models.Image{}, fmt.Errorf("%w: %s", ErrNotImage, mt)
		}
		return models.Image{URI: uri, MimeType: mt, FileName: fallbackName + Extension(mt)}, nil
	}

	rc, err := r.Open(ctx, uri)
	if err != nil {
		return models.Image{}, fmt.Errorf("open %s: %w", uri, err)
	}
	defer rc.Close()

	mt, err := DetectReader(rc)
	if err != nil {
		return models.Image{}, fmt.Errorf("detect type of %s: %w", uri, err)
	}
	if !IsImage(mt) {
		return models.Image{}, fmt.Errorf("%w: %s", ErrNotImage, mt)
	}

	name := baseName(uri)
	if name == "" {
		name = fallbackName + Extension(mt)
	}
	return models.Image{URI: uri, MimeType: mt, FileName: name}, nil
}

func (r *Resolver) openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	if r.s3 == nil {
		if r.s3Factory == nil {
			return nil, ErrS3Unavailable
		}
		g, err := r.s3Factory(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		r.s3 = g
	}
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	return GetS3Object(ctx, r.s3, bucket, key)
}

func scheme(uri string) string {
	i := strings.Index(uri, ":")
	if i <= 1 {
		// no scheme, or a Windows drive letter
		return ""
	}
	s := strings.ToLower(uri[:i])
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			return ""
		}
	}
	return s
}

func filePath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse file uri: %w", err)
	}
	return filepath.FromSlash(u.Path), nil
}

func baseName(uri string) string {
	p := uri
	if s := scheme(uri); s != "" {
		u, err := url.Parse(uri)
		if err != nil {
			return ""
		}
		p = u.Path
	} else {
		p = filepath.ToSlash(p)
	}
	b := path.Base(p)
	if b == "." || b == "/" {
		return ""
	}
	return b
}
