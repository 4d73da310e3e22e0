package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// NoTranscriptionPlaceholder is stored when a record has no text.
	NoTranscriptionPlaceholder = "No transcription available"
	// NoAudioURLPlaceholder is stored when a record was saved without an audio reference.
	NoAudioURLPlaceholder = "No URL Provided"
)

type TranscriptionStatus string

const (
	TranscriptionStatusCompleted TranscriptionStatus = "completed"
	TranscriptionStatusFailed    TranscriptionStatus = "failed"
)

// Transcription is the durable outcome of one transcription job.
type Transcription struct {
	ID            uuid.UUID           `gorm:"primaryKey;type:uuid"`
	AudioURL      string              `gorm:"column:audio_url;not null"`
	Filename      string              `gorm:"not null"`
	Transcription string              `gorm:"type:text;not null"`
	Status        TranscriptionStatus `gorm:"type:varchar(16);not null;default:completed"`
	FailureReason *string             `gorm:"type:text"`
	ExternalJobID *string             `gorm:"column:external_job_id"`
	CreatedAt     time.Time           `gorm:"index;not null"`
}

type TranscriptionList []Transcription

func (Transcription) TableName() string {
	return "transcriptions"
}

func (t Transcription) String() string {
	val, _ := json.Marshal(t)
	return string(val)
}

func (t Transcription) Failed() bool {
	return t.Status == TranscriptionStatusFailed
}
