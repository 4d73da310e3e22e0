package service

import (
	"fmt"
	"time"
)

type JobStatus string

const (
	JobStatusSubmitted JobStatus = "submitted"
	JobStatusPolling   JobStatus = "polling"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

var jobStatusRank = map[JobStatus]int{
	JobStatusSubmitted: 0,
	JobStatusPolling:   1,
	JobStatusCompleted: 2,
	JobStatusFailed:    2,
}

func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// TranscriptionJob tracks one request from submission to its terminal state.
// It lives only for the duration of a Transcribe call.
type TranscriptionJob struct {
	AudioURL      string
	Filename      string
	Text          string
	FailureReason string
	SubmittedAt   time.Time

	externalID string
	status     JobStatus
}

func NewTranscriptionJob(audioURL, filename, externalID string) *TranscriptionJob {
	return &TranscriptionJob{
		AudioURL:    audioURL,
		Filename:    filename,
		SubmittedAt: time.Now(),
		externalID:  externalID,
		status:      JobStatusSubmitted,
	}
}

func (j *TranscriptionJob) ExternalID() string {
	return j.externalID
}

func (j *TranscriptionJob) Status() JobStatus {
	return j.status
}

func (j *TranscriptionJob) StartPolling() error {
	return j.transition(JobStatusPolling)
}

func (j *TranscriptionJob) Complete(text string) error {
	if err := j.transition(JobStatusCompleted); err != nil {
		return err
	}
	j.Text = text
	return nil
}

func (j *TranscriptionJob) Fail(reason string) error {
	if err := j.transition(JobStatusFailed); err != nil {
		return err
	}
	j.FailureReason = reason
	return nil
}

// transition only moves forward. Terminal states are final.
func (j *TranscriptionJob) transition(to JobStatus) error {
	if j.status.Terminal() || jobStatusRank[to] <= jobStatusRank[j.status] {
		return fmt.Errorf("invalid job transition from %s to %s", j.status, to)
	}
	j.status = to
	return nil
}
