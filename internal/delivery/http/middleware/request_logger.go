package middleware

import (
	"net/http"
	"time"

	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"

	"github.com/google/uuid"
)

// RequestLogger attaches a request-scoped logger and logs every request
// with its status and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()[:8]
		}
		reqLogger := logger.WithRequestID(requestID)
		// the token is only decoded here; AuthMiddleware still decides access
		if claims, err := utils.ExtractClaims(r); err == nil && claims.UserID != "" {
			reqLogger = logger.WithUserID(reqLogger, claims.UserID)
		}
		r = r.WithContext(logger.NewContext(r.Context(), &reqLogger))
		w.Header().Set("X-Request-ID", requestID)

		wrapped := newStatusRecorder(w)
		next.ServeHTTP(wrapped, r)

		event := reqLogger.Info()
		switch {
		case wrapped.status >= 500:
			event = reqLogger.Error()
		case wrapped.status >= 400:
			event = reqLogger.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", wrapped.status).
			Dur("duration_ms", time.Since(start)).
			Str("ip", remoteHost(r.RemoteAddr)).
			Str("forwarded_for", r.Header.Get("X-Forwarded-For")).
			Str("user_agent", r.UserAgent()).
			Msg("HTTP")
	})
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
