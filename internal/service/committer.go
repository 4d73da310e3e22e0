package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kubev2v/transcription-service/internal/store"
	"github.com/kubev2v/transcription-service/internal/store/model"
	"github.com/kubev2v/transcription-service/pkg/log"
)

// Committer writes the outcome of a terminal job as a single record.
type Committer struct {
	store  store.Store
	now    func() time.Time
	logger *log.StructuredLogger
}

func NewCommitter(s store.Store, now func() time.Time) *Committer {
	if now == nil {
		now = time.Now
	}
	return &Committer{store: s, now: now, logger: log.NewDebugLogger("result_committer")}
}

// Commit persists job. Only terminal jobs can be committed.
func (c *Committer) Commit(ctx context.Context, job *TranscriptionJob) (*model.Transcription, error) {
	if !job.Status().Terminal() {
		return nil, fmt.Errorf("cannot commit job %s in state %s", job.ExternalID(), job.Status())
	}

	externalID := job.ExternalID()
	record := model.Transcription{
		AudioURL:      job.AudioURL,
		Filename:      job.Filename,
		Transcription: job.Text,
		Status:        model.TranscriptionStatusCompleted,
		ExternalJobID: &externalID,
	}
	if job.Status() == JobStatusFailed {
		reason := job.FailureReason
		record.Status = model.TranscriptionStatusFailed
		record.Transcription = model.NoTranscriptionPlaceholder
		record.FailureReason = &reason
	}

	return c.create(ctx, record, job.Text)
}

// Save persists a transcription produced outside of a job.
func (c *Committer) Save(ctx context.Context, filename, text string) (*model.Transcription, error) {
	if strings.TrimSpace(filename) == "" || strings.TrimSpace(text) == "" {
		return nil, NewErrInvalidInput("filename and transcription are required")
	}
	return c.create(ctx, model.Transcription{
		AudioURL:      model.NoAudioURLPlaceholder,
		Filename:      filename,
		Transcription: text,
		Status:        model.TranscriptionStatusCompleted,
	}, text)
}

func (c *Committer) create(ctx context.Context, record model.Transcription, recovered string) (*model.Transcription, error) {
	if record.Transcription == "" {
		record.Transcription = model.NoTranscriptionPlaceholder
	}
	record.CreatedAt = c.now().UTC()

	tracer := c.logger.WithContext(ctx).
		Operation("commit_transcription").
		WithString("filename", record.Filename).
		WithString("status", string(record.Status)).
		Build()

	created, err := c.store.Transcription().Create(ctx, record)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrPersistence(err, recovered)
	}

	tracer.Success().WithUUID("transcription_id", created.ID).Log()
	return created, nil
}
