package services

import (
	"context"
	"encoding/json"
)

const healthPath = "/health"

// Health is the backend health report. Fields the console does not know
// about are kept in Extra.
type Health struct {
	Status    string                     `json:"status"`
	Timestamp string                     `json:"timestamp"`
	Version   string                     `json:"version,omitempty"`
	Uptime    float64                    `json:"uptime,omitempty"`
	Extra     map[string]json.RawMessage `json:"-"`
}

func (h *Health) UnmarshalJSON(b []byte) error {
	type plain Health
	if err := json.Unmarshal(b, (*plain)(h)); err != nil {
		return err
	}
	if err := json.Unmarshal(b, &h.Extra); err != nil {
		return err
	}
	for _, k := range []string{"status", "timestamp", "version", "uptime"} {
		delete(h.Extra, k)
	}
	return nil
}

type SystemService interface {
	HealthCheck(ctx context.Context) (*Health, error)
}

type systemService struct {
	api API
}

func NewSystemService(api API) SystemService {
	return &systemService{api: api}
}

func (s *systemService) HealthCheck(ctx context.Context) (*Health, error) {
	var h Health
	if err := s.api.Get(ctx, healthPath, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
