package preview

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"loadmaster/internal/logging"
	"loadmaster/internal/services"
)

var knownPaths = map[string]struct{}{
	"/":              {},
	"/manifest.txt":  {},
	"/manifest.csv":  {},
	"/manifest.html": {},
	"/api/manifest":  {},
	"/metrics":       {},
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument tags each request with a correlation id, counts it and logs it
// at debug level. Unknown paths share one label to bound metric cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := services.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		path := r.URL.Path
		if _, ok := knownPaths[path]; !ok {
			path = "other"
		}
		s.metrics.RecordHTTPRequest(r.Method, path, rec.status)
		logging.WithContext(ctx, s.logger).Debug("preview request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(started)),
		)
	})
}
