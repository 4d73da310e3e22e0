package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/kubev2v/transcription-service/pkg/requestid"
)

// RequestID makes a request id available through the requestid package.
// The id comes from the X-Request-Id header, then from chi's RequestID
// middleware, and is generated otherwise. It is echoed back in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" {
			id = middleware.GetReqID(r.Context())
		}
		if id == "" {
			id = requestid.Generate()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.ToContext(r.Context(), id)))
	})
}
