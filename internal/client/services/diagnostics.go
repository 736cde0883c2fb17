package services

import (
	"context"
	"fmt"
)

const diagnosticsPath = "/api/test"

type SampleData struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// DiagnosticsService calls the backend's test endpoints, each of which
// exercises one response shape of the pipeline.
type DiagnosticsService interface {
	Success(ctx context.Context) (string, error)
	Data(ctx context.Context) (*SampleData, error)
	Create(ctx context.Context) (*User, error)
	List(ctx context.Context) ([]string, error)
	BusinessError(ctx context.Context) error
	NotFound(ctx context.Context, id int64) error
	ServerError(ctx context.Context) error
}

type diagnosticsService struct {
	api API
}

func NewDiagnosticsService(api API) DiagnosticsService {
	return &diagnosticsService{api: api}
}

func (s *diagnosticsService) Success(ctx context.Context) (string, error) {
	var msg string
	err := s.api.Get(ctx, diagnosticsPath+"/success", &msg)
	return msg, err
}

func (s *diagnosticsService) Data(ctx context.Context) (*SampleData, error) {
	var d SampleData
	if err := s.api.Get(ctx, diagnosticsPath+"/data", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *diagnosticsService) Create(ctx context.Context) (*User, error) {
	var u User
	if err := s.api.Post(ctx, diagnosticsPath+"/create", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *diagnosticsService) List(ctx context.Context) ([]string, error) {
	var items []string
	if err := s.api.Get(ctx, diagnosticsPath+"/list", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *diagnosticsService) BusinessError(ctx context.Context) error {
	return s.api.Get(ctx, diagnosticsPath+"/business-error", nil)
}

func (s *diagnosticsService) NotFound(ctx context.Context, id int64) error {
	return s.api.Get(ctx, fmt.Sprintf("%s/not-found/%d", diagnosticsPath, id), nil)
}

func (s *diagnosticsService) ServerError(ctx context.Context) error {
	return s.api.Get(ctx, diagnosticsPath+"/server-error", nil)
}
