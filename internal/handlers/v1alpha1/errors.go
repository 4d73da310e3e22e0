package v1alpha1

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kubev2v/transcription-service/api/v1alpha1"
	"github.com/kubev2v/transcription-service/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/transcription-service/internal/handlers/validator"
	"github.com/kubev2v/transcription-service/internal/service"
	"github.com/kubev2v/transcription-service/pkg/requestid"
)

// ErrorReply renders an error body with its status code.
type ErrorReply struct {
	HTTPStatusCode int `json:"-"`
	v1alpha1.Error
}

func (e *ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func newErrorReply(r *http.Request, status int, err error) *ErrorReply {
	return &ErrorReply{
		HTTPStatusCode: status,
		Error:          mappers.ErrorToApi(err, requestid.FromContext(r.Context())),
	}
}

// statusFor maps the service error taxonomy to a status code.
func statusFor(err error) int {
	var (
		invalidInput *service.ErrInvalidInput
		invalidField *validator.ErrInvalidField
		submission   *service.ErrSubmission
		processing   *service.ErrProcessingFailed
		timeout      *service.ErrPollingTimeout
		persistence  *service.ErrPersistence
		query        *service.ErrQuery
		upload       *service.ErrUpload
	)

	switch {
	case errors.As(err, &invalidInput), errors.As(err, &invalidField):
		return http.StatusBadRequest
	case errors.As(err, &submission):
		return http.StatusBadGateway
	case errors.As(err, &processing):
		return http.StatusUnprocessableEntity
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &persistence), errors.As(err, &query), errors.As(err, &upload):
		return http.StatusInternalServerError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	_ = render.Render(w, r, newErrorReply(r, statusFor(err), err))
}

func renderBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	_ = render.Render(w, r, newErrorReply(r, http.StatusBadRequest, err))
}
