package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kubev2v/transcription-service/api/v1alpha1"
	"github.com/kubev2v/transcription-service/internal/handlers/v1alpha1/mappers"
)

// (POST /api/v1/transcriptions/transcribe)
func (h *ServiceHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.TranscribeRequest
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderBadRequest(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err)
		return
	}

	text, err := h.transcriptionSrv.Transcribe(r.Context(), form.AudioURL, form.Filename)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, v1alpha1.TranscribeResponse{Transcription: text})
}

// (GET /api/v1/transcriptions/history)
func (h *ServiceHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	filter, err := mappers.HistoryFilterFromQuery(r.URL.Query())
	if err != nil {
		renderBadRequest(w, r, err)
		return
	}

	records, err := h.transcriptionSrv.ListHistory(r.Context(), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, mappers.TranscriptionListToApi(records))
}

// (POST /api/v1/transcriptions)
func (h *ServiceHandler) SaveTranscription(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.SaveTranscriptionRequest
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderBadRequest(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err)
		return
	}

	record, err := h.transcriptionSrv.SaveTranscription(r.Context(), form.Filename, form.Transcription)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.TranscriptionToApi(*record))
}
