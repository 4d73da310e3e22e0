package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/kubev2v/transcription-service/api/v1alpha1"
)

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.healthSrv.Check(r.Context()); err != nil {
		_ = render.Render(w, r, newErrorReply(r, http.StatusServiceUnavailable, err))
		return
	}
	render.JSON(w, r, v1alpha1.Health{Status: "ok"})
}
