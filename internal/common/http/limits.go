package http

import (
	"net/http"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
)

func MaxRequestSizeMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, CodeRequestTooLarge, "request body too large", nil, TraceIDFromContext(r.Context()))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
