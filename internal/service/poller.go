package service

import (
	"context"
	"errors"
	"time"

	"github.com/lthibault/jitterbug/v2"

	"github.com/kubev2v/transcription-service/internal/client"
	"github.com/kubev2v/transcription-service/pkg/log"
	"github.com/kubev2v/transcription-service/pkg/metrics"
)

const (
	defaultPollInterval    = 5 * time.Second
	defaultPollJitter      = 30 * time.Millisecond
	defaultPollMaxAttempts = 120
	defaultPollMaxWait     = 10 * time.Minute
)

type PollerOptions struct {
	// Interval between two status queries.
	Interval time.Duration
	// Jitter is the standard deviation applied to Interval.
	Jitter time.Duration
	// MaxAttempts bounds the number of status queries.
	MaxAttempts int
	// MaxWait bounds the total polling time.
	MaxWait time.Duration
	// MaxStatusRetries is how many times a failed status query is retried
	// before polling gives up.
	MaxStatusRetries int
	RetryDelay       time.Duration
}

// Validate rejects negative values. Zero values are replaced by defaults.
func (o PollerOptions) Validate() error {
	switch {
	case o.Interval < 0:
		return NewErrInvalidInput("poll interval must not be negative")
	case o.Jitter < 0:
		return NewErrInvalidInput("poll jitter must not be negative")
	case o.MaxAttempts < 0:
		return NewErrInvalidInput("poll max attempts must not be negative")
	case o.MaxWait < 0:
		return NewErrInvalidInput("poll max wait must not be negative")
	case o.MaxStatusRetries < 0:
		return NewErrInvalidInput("status query retries must not be negative")
	case o.RetryDelay < 0:
		return NewErrInvalidInput("status query retry delay must not be negative")
	}
	return nil
}

// withDefaults always yields a bounded poller.
func (o PollerOptions) withDefaults() PollerOptions {
	if o.Interval <= 0 {
		o.Interval = defaultPollInterval
	}
	if o.Jitter <= 0 {
		o.Jitter = defaultPollJitter
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultPollMaxAttempts
	}
	if o.MaxWait <= 0 {
		o.MaxWait = defaultPollMaxWait
	}
	if o.MaxStatusRetries < 0 {
		o.MaxStatusRetries = 0
	}
	return o
}

type Poller struct {
	processor Processor
	opts      PollerOptions
	logger    *log.StructuredLogger
}

func NewPoller(processor Processor, opts PollerOptions) *Poller {
	return &Poller{
		processor: processor,
		opts:      opts.withDefaults(),
		logger:    log.NewDebugLogger("job_poller"),
	}
}

// Await queries the job status until it reaches a terminal state. It moves the
// job to polling, then to completed or failed. When the polling bounds are
// exhausted the job is failed with the timeout reason. When ctx is cancelled
// the job is left in polling and ctx.Err() is returned.
func (p *Poller) Await(ctx context.Context, job *TranscriptionJob) error {
	if err := job.StartPolling(); err != nil {
		return err
	}

	tracer := p.logger.WithContext(ctx).
		Operation("await_job").
		WithString("external_job_id", job.ExternalID()).
		Build()

	text, err := p.AwaitCompletion(ctx, job.ExternalID())
	if err != nil {
		var failed *ErrProcessingFailed
		var timeout *ErrPollingTimeout
		switch {
		case errors.As(err, &failed):
			_ = job.Fail(failed.Reason)
		case errors.As(err, &timeout):
			_ = job.Fail(timeout.Reason())
		}
		tracer.Error(err).WithString("job_status", string(job.Status())).Log()
		return err
	}

	if err := job.Complete(text); err != nil {
		return err
	}
	tracer.Success().WithInt("text_length", len(text)).Log()
	return nil
}

// AwaitCompletion polls jobID until the processor reports a terminal state and
// returns the transcribed text. It fails with ErrProcessingFailed or
// ErrPollingTimeout, or with ctx.Err() when ctx is done first.
func (p *Poller) AwaitCompletion(ctx context.Context, jobID string) (string, error) {
	pollCtx, cancel := context.WithTimeout(ctx, p.opts.MaxWait)
	defer cancel()

	var ticker *jitterbug.Ticker
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for attempt := 1; ; attempt++ {
		status, err := p.queryStatus(pollCtx, jobID)
		if err != nil {
			return "", p.pollingError(ctx, jobID, attempt, err)
		}

		switch {
		case status.Completed():
			return status.Text, nil
		case status.Failed():
			return "", NewErrProcessingFailed(jobID, status.Error)
		}

		if attempt >= p.opts.MaxAttempts {
			return "", NewErrPollingTimeout(jobID, attempt, nil)
		}

		if ticker == nil {
			ticker = jitterbug.New(p.opts.Interval, &jitterbug.Norm{Stdev: p.opts.Jitter, Mean: 0})
		}

		select {
		case <-pollCtx.Done():
			return "", p.pollingError(ctx, jobID, attempt, pollCtx.Err())
		case <-ticker.C:
		}
	}
}

// queryStatus retries transport failures up to MaxStatusRetries times.
func (p *Poller) queryStatus(ctx context.Context, jobID string) (*client.JobStatus, error) {
	var lastErr error
	for try := 0; try <= p.opts.MaxStatusRetries; try++ {
		if try > 0 {
			if err := wait(ctx, p.opts.RetryDelay); err != nil {
				return nil, err
			}
		}

		metrics.IncreasePollTicksMetric()
		status, err := p.processor.GetJobStatus(ctx, jobID)
		if err == nil {
			return status, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		metrics.IncreaseStatusQueryFailuresMetric()
		p.logger.WithContext(ctx).
			Operation("query_job_status").
			WithString("external_job_id", jobID).
			WithInt("try", try+1).
			Build().
			Error(err).
			Log()
		lastErr = err
	}
	return nil, lastErr
}

// pollingError tells a cancelled caller apart from an exhausted polling budget.
func (p *Poller) pollingError(ctx context.Context, jobID string, attempt int, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewErrPollingTimeout(jobID, attempt, nil)
	}
	return NewErrPollingTimeout(jobID, attempt, err)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
