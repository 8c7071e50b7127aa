package logging

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Middleware tags every request with a request id, logs its start and
// completion, and turns handler panics into a JSON 500.
func Middleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			entry := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			entry.WithFields(logrus.Fields{
				"remote-addr": r.RemoteAddr,
				"user-agent":  r.UserAgent(),
			}).Debug("request started")

			sw := &statusWriter{ResponseWriter: w}

			defer func() {
				if recovered := recover(); recovered != nil {
					entry.WithFields(logrus.Fields{
						"panic":    recovered,
						"stack":    string(debug.Stack()),
						"duration": time.Since(start),
					}).Error("panic recovered in request handler")

					if sw.status == 0 {
						sw.Header().Set("Content-Type", "application/json")
						sw.WriteHeader(http.StatusInternalServerError)
						_ = json.NewEncoder(sw).Encode(map[string]string{"error": "internal server error"})
					}
				}
			}()

			next.ServeHTTP(sw, r.WithContext(WithContext(r.Context(), entry)))

			entry.WithFields(logrus.Fields{
				"status":   sw.Status(),
				"duration": time.Since(start),
			}).Info("request completed")
		})
	}
}
