package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidEnvelope = errors.New("invalid response envelope")
)

// BusinessError is a 2xx response whose envelope code is not a success code.
type BusinessError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("business error %d", e.Code)
	}
	return fmt.Sprintf("business error %d: %s", e.Code, e.Message)
}

// HTTPError is a failed transport exchange. Status 0 means no response
// arrived. Message is fit for showing to the user.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
	err     error
}

func (e *HTTPError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.err }

// Is lets errors.Is(err, ErrUnauthorized) and errors.Is(err, ErrUnavailable)
// match by status.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrUnavailable:
		return e.Status == 0
	}
	return false
}

// statusMessage maps a failed status to the message shown to the user.
// The backend's own message wins except for 500.
func statusMessage(status int, backend string) string {
	var fallback string
	switch status {
	case 0:
		return "network timeout, please check your network settings"
	case http.StatusBadRequest:
		fallback = "invalid request parameters, please check your input"
	case http.StatusUnauthorized:
		fallback = "session expired, please log in again"
	case http.StatusForbidden:
		fallback = "permission denied"
	case http.StatusNotFound:
		fallback = "requested resource not found"
	case http.StatusConflict:
		fallback = "resource conflict, please check your data"
	case http.StatusLocked:
		fallback = "account locked, please contact administrator"
	case http.StatusInternalServerError:
		return "internal server error, please try again later"
	default:
		fallback = fmt.Sprintf("request failed (status code: %d)", status)
	}

	if backend != "" {
		return backend
	}
	return fallback
}
