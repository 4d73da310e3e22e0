package v1alpha1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kubev2v/transcription-service/api/v1alpha1"
)

const (
	defaultMaxUploadSize = 100 << 20
	uploadFormField      = "audio"
)

// (POST /api/v1/uploads)
func (h *ServiceHandler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			renderBadRequest(w, r, fmt.Errorf("upload exceeds %d bytes", h.maxUploadSize))
			return
		}
		renderBadRequest(w, r, fmt.Errorf("invalid multipart body: %w", err))
		return
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		renderBadRequest(w, r, errors.New("no file uploaded"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileURL, err := h.uploadSrv.Upload(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v1alpha1.UploadResponse{Message: "File uploaded successfully", FileURL: fileURL})
}
