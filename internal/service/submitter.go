package service

import (
	"context"
	"strings"

	"github.com/kubev2v/transcription-service/internal/client"
	"github.com/kubev2v/transcription-service/pkg/log"
)

// Processor is the external transcription engine.
type Processor interface {
	CreateJob(ctx context.Context, audioURL string) (string, error)
	GetJobStatus(ctx context.Context, jobID string) (*client.JobStatus, error)
}

var _ Processor = (*client.AssemblyAIClient)(nil)

type Submitter struct {
	processor Processor
	logger    *log.StructuredLogger
}

func NewSubmitter(processor Processor) *Submitter {
	return &Submitter{
		processor: processor,
		logger:    log.NewDebugLogger("job_submitter"),
	}
}

// Submit asks the processor to start a job for audioURL and returns it in the
// submitted state. It does not wait for any result.
func (s *Submitter) Submit(ctx context.Context, audioURL, filename string) (*TranscriptionJob, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("submit_job").
		WithString("audio_url", audioURL).
		Build()

	if strings.TrimSpace(audioURL) == "" {
		return nil, NewErrInvalidInput("audio url is required")
	}

	id, err := s.processor.CreateJob(ctx, audioURL)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrSubmission(audioURL, err)
	}

	tracer.Success().WithString("external_job_id", id).Log()

	return NewTranscriptionJob(audioURL, filename, id), nil
}
