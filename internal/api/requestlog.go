package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/ecxhq/identity-be/internal/services"
)

// RequestLogger records one ":method :url :status :response-time ms" line per
// handled request into the persisted request log.
func RequestLogger(logs services.LogServiceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := float64(time.Since(start).Microseconds()) / 1000.0
			line := fmt.Sprintf("%s %s %d %.3f ms", r.Method, r.URL.RequestURI(), ww.Status(), elapsed)
			if err := logs.Append(line); err != nil {
				log.Error().Err(err).Str("line", line).Msg("Failed to persist request log line")
			}
		})
	}
}
