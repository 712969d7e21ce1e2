package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrNotFound         = errors.New("not found")
	ErrRejected         = errors.New("rejected by server")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// StatusError is returned when the backend answered with a failure.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		return e.Err.Error() + " (" + msg + ")"
	}
	return msg
}

func (e *StatusError) Unwrap() error { return e.Err }

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// ServerMessage returns the envelope message, if any.
func (e *StatusError) ServerMessage() string { return e.Message }

func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusBadGateway, code == http.StatusServiceUnavailable, code == http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrUnexpectedStatus
	}
}
