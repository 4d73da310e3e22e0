package v1alpha1

import (
	"context"
	"io"

	"github.com/go-chi/chi/v5"

	"github.com/kubev2v/transcription-service/internal/handlers/validator"
	"github.com/kubev2v/transcription-service/internal/service"
	"github.com/kubev2v/transcription-service/internal/store/model"
)

type TranscriptionService interface {
	Transcribe(ctx context.Context, audioURL, filename string) (string, error)
	ListHistory(ctx context.Context, filter service.HistoryFilter) (model.TranscriptionList, error)
	SaveTranscription(ctx context.Context, filename, text string) (*model.Transcription, error)
}

type UploadService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
}

type HealthChecker interface {
	Check(ctx context.Context) error
}

var (
	_ TranscriptionService = (*service.TranscriptionService)(nil)
	_ UploadService        = (*service.UploadService)(nil)
	_ HealthChecker        = (*service.HealthService)(nil)
)

type ServiceHandler struct {
	transcriptionSrv TranscriptionService
	uploadSrv        UploadService
	healthSrv        HealthChecker
	validator        *validator.Validator
	maxUploadSize    int64
}

func NewServiceHandler(transcriptionService TranscriptionService, uploadService UploadService, healthService HealthChecker) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewTranscriptionValidationRules()...)

	return &ServiceHandler{
		transcriptionSrv: transcriptionService,
		uploadSrv:        uploadService,
		healthSrv:        healthService,
		validator:        v,
		maxUploadSize:    defaultMaxUploadSize,
	}
}

// WithMaxUploadSize bounds the size of a multipart upload body.
func (h *ServiceHandler) WithMaxUploadSize(size int64) *ServiceHandler {
	if size > 0 {
		h.maxUploadSize = size
	}
	return h
}

// RegisterTranscriptionRoutes mounts the JSON endpoints.
func (h *ServiceHandler) RegisterTranscriptionRoutes(r chi.Router) {
	r.Post("/api/v1/transcriptions/transcribe", h.Transcribe)
	r.Get("/api/v1/transcriptions/history", h.ListHistory)
	r.Post("/api/v1/transcriptions", h.SaveTranscription)
}

func (h *ServiceHandler) RegisterUploadRoutes(r chi.Router) {
	r.Post("/api/v1/uploads", h.UploadAudio)
}

func (h *ServiceHandler) RegisterHealthRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}
