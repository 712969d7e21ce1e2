package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const pngURI = "data:image/png;base64,iVBORw0KGgo="

type received struct {
	method string
	path   string
	fields map[string][]string
	files  []string
	json   map[string]any
}

// fakeBackend is an in-memory stand-in for the registry REST API.
type fakeBackend struct {
	mu       sync.Mutex
	reqs     []received
	failSave int
	makesErr bool
}

func (b *fakeBackend) writes(method, path string) []received {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []received
	for _, r := range b.reqs {
		if r.method == method && r.path == path {
			out = append(out, r)
		}
	}
	return out
}

func envelope(w http.ResponseWriter, code int, status bool, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": status, "message": msg, "data": data})
}

var testVehicle = map[string]any{
	"id": 11, "regNo": "CAB-1234",
	"make":  map[string]any{"id": 7, "name": "Toyota"},
	"model": map[string]any{"id": "m1", "name": "Corolla", "vehicleType": "CAR"},
	"yearOfManu": 2019, "fuelType": "PETROL", "vehicleType": "CAR",
	"vehicleImages": []any{
		map[string]any{"id": 1, "tag": "MAIN", "imageUrl": "https://cdn/11/main.jpg"},
		map[string]any{"id": 2, "tag": "FRONT", "imageUrl": "https://cdn/11/front.jpg"},
	},
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/vehicles")
	rec := received{method: r.Method, path: path}

	if r.Method != http.MethodGet {
		ct := r.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(ct, "multipart/form-data"):
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				rec.fields = r.MultipartForm.Value
				for _, fh := range r.MultipartForm.File["images"] {
					rec.files = append(rec.files, fh.Filename)
				}
				for _, fh := range r.MultipartForm.File["logo"] {
					rec.files = append(rec.files, fh.Filename)
				}
			}
		case ct == "application/json":
			body, _ := io.ReadAll(r.Body)
			_ = json.NewDecoder(bytes.NewReader(body)).Decode(&rec.json)
		}
		b.mu.Lock()
		b.reqs = append(b.reqs, rec)
		fail := r.Method == http.MethodPost && path == "/save" && b.failSave > 0
		if fail {
			b.failSave--
		}
		b.mu.Unlock()
		if fail {
			envelope(w, http.StatusInternalServerError, false, "db down", nil)
			return
		}
	}

	switch {
	case r.Method == http.MethodGet && path == "/makes":
		if b.makesErr {
			envelope(w, http.StatusOK, false, "makes unavailable", nil)
			return
		}
		envelope(w, http.StatusOK, true, "", []any{
			map[string]any{"id": 7, "name": "Toyota"},
			map[string]any{"id": 9, "name": "Honda"},
		})
	case r.Method == http.MethodGet && path == "/models":
		envelope(w, http.StatusOK, true, "", []any{
			map[string]any{"id": "m1", "name": "Corolla", "makeId": 7, "vehicleType": "CAR"},
			map[string]any{"id": "m2", "name": "Civic", "make": map[string]any{"id": 9}, "vehicleType": "CAR"},
		})
	case r.Method == http.MethodGet && path == "/vehicles":
		envelope(w, http.StatusOK, true, "", []any{
			testVehicle,
			map[string]any{"id": 12, "regNo": "WP-7777", "make": map[string]any{"id": 9, "name": "Honda"}},
		})
	case r.Method == http.MethodGet && path == "/vehicles/11":
		envelope(w, http.StatusOK, true, "", testVehicle)
	case r.Method == http.MethodGet:
		envelope(w, http.StatusNotFound, false, "Vehicle not found", nil)
	case r.Method == http.MethodPost && path == "/save":
		envelope(w, http.StatusCreated, true, "saved", nil)
	case r.Method == http.MethodPost, r.Method == http.MethodPut:
		envelope(w, http.StatusOK, true, "ok", nil)
	case r.Method == http.MethodDelete && path == "/11":
		envelope(w, http.StatusOK, true, "deleted", nil)
	default:
		envelope(w, http.StatusNotFound, false, "not found", nil)
	}
}

// runCLI executes the command tree against a fake backend with the given
// stdin lines and returns stdout.
func runCLI(t *testing.T, b *fakeBackend, input []string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	root := NewRootCmd(strings.NewReader(strings.Join(input, "\n")+"\n"), &out, &errOut)
	root.SetArgs(append([]string{"--server-url=" + srv.URL + "/api/vehicles", "--log-level=debug"}, args...))
	err := root.Execute()
	require.NotContains(t, errOut.String(), "panic")
	return out.String(), err
}
