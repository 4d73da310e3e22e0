package service

import (
	"context"

	"github.com/kubev2v/transcription-service/internal/store"
)

type HealthService struct {
	store store.Store
}

func NewHealthService(s store.Store) *HealthService {
	return &HealthService{store: s}
}

func (h *HealthService) Check(ctx context.Context) error {
	return h.store.Ping(ctx)
}
