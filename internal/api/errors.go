package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure for the UI layer
type Kind int

const (
	KindNetwork Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindServer
	KindBadEnvelope
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindBadEnvelope:
		return "bad_envelope"
	}
	return "unknown"
}

// Error is the typed failure returned by every client method
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: API returned status %d", e.Kind, e.Status)
	}
	return e.Kind.String()
}

// IsUnauthorized reports whether err is an authorization failure, the
// one error kind the shell handles globally.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// kindForStatus maps an HTTP status onto the error taxonomy
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}
