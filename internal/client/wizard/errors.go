package wizard

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrUnknownTag   = errors.New("unknown image tag")
	ErrEmptyImage   = errors.New("image has no uri")
	ErrAtReview     = errors.New("already at review step")
	ErrNotAtReview  = errors.New("submit is only allowed from the review step")
)

// ValidationError lists every violated field or tag with its message.
// Keys are form field names (models.Field*) or tag names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.join()
}

// UserMessage is the inline text shown next to the form.
func (e *ValidationError) UserMessage() string {
	return "Please fix: " + e.join()
}

// Keys returns the violated keys, form fields first in form order, then
// tags in tag order.
func (e *ValidationError) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyRank(keys[i]) < keyRank(keys[j]) })
	return keys
}

func (e *ValidationError) join() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func keyRank(k string) int {
	for i, f := range models.FieldKeys {
		if f == k {
			return i
		}
	}
	if i := models.Tag(k).Index(); i >= 0 {
		return len(models.FieldKeys) + i
	}
	return len(models.FieldKeys) + len(models.Tags)
}

// FetchError reports that makes or models could not be loaded. Reference
// data stays empty afterwards.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch reference data: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) UserMessage() string {
	return "Failed to load makes or models."
}

// SubmissionError reports a failed final submit. StatusCode is zero when
// the request never got a response.
type SubmissionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("submission failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) UserMessage() string {
	if e.StatusCode == 0 {
		return "Something went wrong during upload."
	}
	msg := fmt.Sprintf("Upload failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

// httpStatuser and serverMessager are satisfied by transport errors that
// carry a response status and an envelope message.
type httpStatuser interface {
	HTTPStatus() int
}

type serverMessager interface {
	ServerMessage() string
}

func newSubmissionError(err error) *SubmissionError {
	se := &SubmissionError{Err: err}
	var hs httpStatuser
	if errors.As(err, &hs) {
		se.StatusCode = hs.HTTPStatus()
	}
	var sm serverMessager
	if errors.As(err, &sm) {
		se.Message = sm.ServerMessage()
	}
	return se
}

// UserMessage extracts the user-facing text of err, falling back to its
// Error string.
func UserMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}
