package v1alpha1

import (
	"github.com/go-openapi/strfmt"
)

// TranscriptionStatus is the outcome recorded for a transcription.
type TranscriptionStatus string

const (
	TranscriptionStatusCompleted TranscriptionStatus = "completed"
	TranscriptionStatusFailed    TranscriptionStatus = "failed"
)

// TranscribeRequest defines model for TranscribeRequest.
type TranscribeRequest struct {
	AudioURL string `json:"audio_url" validate:"required,audio_url"`
	Filename string `json:"filename" validate:"required,filename"`
}

// TranscribeResponse defines model for TranscribeResponse.
type TranscribeResponse struct {
	Transcription string `json:"transcription"`
}

// SaveTranscriptionRequest defines model for SaveTranscriptionRequest.
type SaveTranscriptionRequest struct {
	Filename      string `json:"filename" validate:"required,filename"`
	Transcription string `json:"transcription" validate:"required,not_blank"`
}

// Transcription defines model for Transcription.
type Transcription struct {
	ID            string              `json:"id"`
	AudioURL      string              `json:"audio_url"`
	Filename      string              `json:"filename"`
	Transcription string              `json:"transcription"`
	Status        TranscriptionStatus `json:"status"`
	FailureReason *string             `json:"failure_reason,omitempty"`
	CreatedAt     strfmt.DateTime     `json:"created_at"`
}

// TranscriptionList defines model for TranscriptionList.
type TranscriptionList []Transcription

// UploadResponse defines model for UploadResponse.
type UploadResponse struct {
	Message string `json:"message"`
	FileURL string `json:"file_url"`
}

// Health defines model for Health.
type Health struct {
	Status string `json:"status"`
}

// Error defines model for Error.
type Error struct {
	Message   string  `json:"message"`
	Details   *string `json:"details,omitempty"`
	RequestID *string `json:"request_id,omitempty"`
}
