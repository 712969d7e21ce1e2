package client

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/netx"
)

// envelope is the wrapper around every JSON response body.
type envelope struct {
	Status  *bool           `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(body []byte) (envelope, bool) {
	var env envelope
	if len(bytes.TrimSpace(body)) == 0 {
		return env, false
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, false
	}
	return env, true
}

func (e envelope) rejected() bool {
	return e.Status != nil && !*e.Status
}

// statusError builds the error for a non-2xx response.
func statusError(code int, body []byte) *StatusError {
	se := &StatusError{StatusCode: code, Err: mapStatus(code)}
	if env, ok := decodeEnvelope(body); ok {
		se.Message = env.Message
		return se
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > netx.MaxErrorBody {
		msg = msg[:netx.MaxErrorBody]
	}
	se.Message = msg
	return se
}
