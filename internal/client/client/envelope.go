package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the wrapper the backend puts around every response body.
type Envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// Result is a decoded envelope: either Success or Failure.
type Result interface {
	isResult()
}

type Success struct {
	Data json.RawMessage
}

type Failure struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (Success) isResult() {}
func (Failure) isResult() {}

// DecodeEnvelope classifies a 2xx body. Codes 200 and 201 are Success.
func DecodeEnvelope(body []byte) (Result, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	switch env.Code {
	case http.StatusOK, http.StatusCreated:
		return Success{Data: env.Data}, nil
	default:
		return Failure{Code: env.Code, Message: env.Message, Data: env.Data}, nil
	}
}

// backendMessage pulls "message" out of an error body, if it has one.
func backendMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &env) != nil {
		return ""
	}
	return env.Message
}

// unwrap turns a Result into out or a *BusinessError.
func unwrap(res Result, out any) error {
	switch r := res.(type) {
	case Success:
		if out == nil || len(r.Data) == 0 || string(r.Data) == "null" {
			return nil
		}
		if err := json.Unmarshal(r.Data, out); err != nil {
			return fmt.Errorf("%w: data: %v", ErrInvalidEnvelope, err)
		}
		return nil
	case Failure:
		return &BusinessError{Code: r.Code, Message: r.Message, Data: r.Data}
	default:
		return ErrInvalidEnvelope
	}
}
