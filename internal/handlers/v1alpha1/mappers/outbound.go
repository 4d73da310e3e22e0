package mappers

import (
	"errors"

	"github.com/go-openapi/strfmt"

	"github.com/kubev2v/transcription-service/api/v1alpha1"
	"github.com/kubev2v/transcription-service/internal/service"
	"github.com/kubev2v/transcription-service/internal/store/model"
)

func TranscriptionToApi(t model.Transcription) v1alpha1.Transcription {
	return v1alpha1.Transcription{
		ID:            t.ID.String(),
		AudioURL:      t.AudioURL,
		Filename:      t.Filename,
		Transcription: t.Transcription,
		Status:        v1alpha1.TranscriptionStatus(t.Status),
		FailureReason: t.FailureReason,
		CreatedAt:     strfmt.DateTime(t.CreatedAt.UTC()),
	}
}

// TranscriptionListToApi never returns nil so an empty history renders as [].
func TranscriptionListToApi(list model.TranscriptionList) v1alpha1.TranscriptionList {
	out := make(v1alpha1.TranscriptionList, 0, len(list))
	for _, t := range list {
		out = append(out, TranscriptionToApi(t))
	}
	return out
}

func ErrorToApi(err error, requestID string) v1alpha1.Error {
	e := v1alpha1.Error{Message: err.Error()}

	var persistence *service.ErrPersistence
	if errors.As(err, &persistence) {
		details := persistence.Details()
		e.Details = &details
	}
	var processing *service.ErrProcessingFailed
	if errors.As(err, &processing) {
		reason := processing.Reason
		e.Details = &reason
	}
	if requestID != "" {
		e.RequestID = &requestID
	}
	return e
}
