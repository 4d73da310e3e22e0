package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/transcription-service/internal/store"
	"github.com/kubev2v/transcription-service/internal/store/model"
	"github.com/kubev2v/transcription-service/pkg/log"
	"github.com/kubev2v/transcription-service/pkg/metrics"
)

type TranscriptionServiceOption func(s *TranscriptionService)

func WithPollerOptions(opts PollerOptions) TranscriptionServiceOption {
	return func(s *TranscriptionService) {
		s.pollerOpts = opts
	}
}

// WithClock sets the clock used for record timestamps.
func WithClock(now func() time.Time) TranscriptionServiceOption {
	return func(s *TranscriptionService) {
		s.now = now
	}
}

// TranscriptionService runs a transcription end to end: submit, wait for a
// terminal state, then commit the outcome.
type TranscriptionService struct {
	submitter  *Submitter
	poller     *Poller
	committer  *Committer
	history    *HistoryReader
	pollerOpts PollerOptions
	now        func() time.Time
	logger     *log.StructuredLogger
}

func NewTranscriptionService(processor Processor, s store.Store, opts ...TranscriptionServiceOption) *TranscriptionService {
	svc := &TranscriptionService{now: time.Now}
	for _, o := range opts {
		o(svc)
	}

	svc.submitter = NewSubmitter(processor)
	svc.poller = NewPoller(processor, svc.pollerOpts)
	svc.committer = NewCommitter(s, svc.now)
	svc.history = NewHistoryReader(s)
	svc.logger = log.NewDebugLogger("transcription_service")

	return svc
}

// Transcribe returns the text of audioURL once the processor completed it and
// the result is committed. Jobs that fail or time out are committed with a
// placeholder text before the error is returned. A cancelled ctx commits
// nothing.
func (s *TranscriptionService) Transcribe(ctx context.Context, audioURL, filename string) (string, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("transcribe").
		WithString("audio_url", audioURL).
		WithString("filename", filename).
		Build()

	if strings.TrimSpace(audioURL) == "" {
		return "", NewErrInvalidInput("audio_url is required")
	}
	if strings.TrimSpace(filename) == "" {
		return "", NewErrInvalidInput("filename is required")
	}

	start := time.Now()

	job, err := s.submitter.Submit(ctx, audioURL, filename)
	if err != nil {
		metrics.IncreaseJobsTotalMetric(metrics.OutcomeSubmissionFailed, time.Since(start))
		tracer.Error(err).Log()
		return "", err
	}

	tracer.Step("job_submitted").WithString("external_job_id", job.ExternalID()).Log()

	if err := s.poller.Await(ctx, job); err != nil {
		if !job.Status().Terminal() {
			metrics.IncreaseJobsTotalMetric(outcomeOf(err), time.Since(start))
			tracer.Error(err).WithString("external_job_id", job.ExternalID()).Log()
			return "", err
		}

		// the processing error is what the caller needs, even when the
		// failure record cannot be written
		if _, commitErr := s.committer.Commit(ctx, job); commitErr != nil {
			zap.S().Named("transcription_service").Errorw("failed to record job failure",
				"external_job_id", job.ExternalID(), "error", commitErr)
		}
		metrics.IncreaseJobsTotalMetric(outcomeOf(err), time.Since(start))
		tracer.Error(err).WithString("external_job_id", job.ExternalID()).Log()
		return "", err
	}

	if _, err := s.committer.Commit(ctx, job); err != nil {
		metrics.IncreaseJobsTotalMetric(metrics.OutcomePersistenceFailed, time.Since(start))
		tracer.Error(err).WithString("recovered_transcription", job.Text).Log()
		return "", err
	}

	metrics.IncreaseJobsTotalMetric(metrics.OutcomeCompleted, time.Since(start))
	tracer.Success().WithString("external_job_id", job.ExternalID()).Log()

	return job.Text, nil
}

func (s *TranscriptionService) ListHistory(ctx context.Context, filter HistoryFilter) (model.TranscriptionList, error) {
	return s.history.List(ctx, filter)
}

// SaveTranscription stores text that was transcribed elsewhere.
func (s *TranscriptionService) SaveTranscription(ctx context.Context, filename, text string) (*model.Transcription, error) {
	return s.committer.Save(ctx, filename, text)
}

func outcomeOf(err error) string {
	var failed *ErrProcessingFailed
	var timeout *ErrPollingTimeout
	switch {
	case errors.As(err, &failed):
		return metrics.OutcomeProcessingFailed
	case errors.As(err, &timeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCancelled
	default:
		return metrics.OutcomeFailed
	}
}
