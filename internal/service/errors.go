package service

import (
	"fmt"
)

// TimeoutReason is the failure reason recorded for jobs that never reached a terminal state.
const TimeoutReason = "timeout"

type ErrInvalidInput struct {
	error
}

func NewErrInvalidInput(format string, args ...any) *ErrInvalidInput {
	return &ErrInvalidInput{fmt.Errorf(format, args...)}
}

// ErrSubmission means the processor rejected the job or could not be reached.
// Nothing is committed for it.
type ErrSubmission struct {
	error
}

func NewErrSubmission(audioURL string, cause error) *ErrSubmission {
	return &ErrSubmission{fmt.Errorf("failed to submit %s to the transcription processor: %w", audioURL, cause)}
}

func (e *ErrSubmission) Unwrap() error { return e.error }

// ErrProcessingFailed means the processor finished the job and reported a failure.
type ErrProcessingFailed struct {
	error
	JobID  string
	Reason string
}

func NewErrProcessingFailed(jobID, reason string) *ErrProcessingFailed {
	if reason == "" {
		reason = "transcription processor reported a failure"
	}
	return &ErrProcessingFailed{
		error:  fmt.Errorf("transcription job %s failed: %s", jobID, reason),
		JobID:  jobID,
		Reason: reason,
	}
}

// ErrPollingTimeout means the job did not reach a terminal state within the
// polling bounds, or its status could not be queried.
type ErrPollingTimeout struct {
	error
	JobID    string
	Attempts int
	cause    error
}

func NewErrPollingTimeout(jobID string, attempts int, cause error) *ErrPollingTimeout {
	msg := fmt.Sprintf("transcription job %s did not complete after %d status queries", jobID, attempts)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &ErrPollingTimeout{error: fmt.Errorf("%s", msg), JobID: jobID, Attempts: attempts, cause: cause}
}

func (e *ErrPollingTimeout) Unwrap() error { return e.cause }

// Reason is the failure reason recorded for the job. The cause stays in the
// error message.
func (e *ErrPollingTimeout) Reason() string {
	return TimeoutReason
}

// ErrPersistence means a store write failed. Transcription holds the text
// that was produced before the write failed, if any.
type ErrPersistence struct {
	error
	Transcription string
}

func NewErrPersistence(cause error, transcription string) *ErrPersistence {
	return &ErrPersistence{error: fmt.Errorf("failed to persist transcription: %w", cause), Transcription: transcription}
}

func (e *ErrPersistence) Unwrap() error { return e.error }

// Details describes the failure for the caller, including the recovered text.
func (e *ErrPersistence) Details() string {
	if e.Transcription == "" {
		return e.Error()
	}
	return fmt.Sprintf("%s; recovered transcription: %s", e.Error(), e.Transcription)
}

type ErrQuery struct {
	error
}

func NewErrQuery(cause error) *ErrQuery {
	return &ErrQuery{fmt.Errorf("failed to query transcription history: %w", cause)}
}

func (e *ErrQuery) Unwrap() error { return e.error }

type ErrUpload struct {
	error
}

func NewErrUpload(filename string, cause error) *ErrUpload {
	return &ErrUpload{fmt.Errorf("failed to upload %s: %w", filename, cause)}
}

func (e *ErrUpload) Unwrap() error { return e.error }
