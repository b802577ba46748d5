package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogMiddleware logs every HTTP request with method, path, duration and
// remote address.
func LogMiddleware(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
				"remote":   r.RemoteAddr,
			}).Info("HTTP request")
		})
	}
}

// LogSocketConnect records an accepted game socket together with the
// transient connection id it was assigned.
func LogSocketConnect(logger *logrus.Logger, connID uuid.UUID, remoteAddr string) {
	logger.WithFields(logrus.Fields{
		"conn":   connID,
		"remote": remoteAddr,
	}).Info("socket connected")
}

// LogSocketDisconnect records a game socket going away, with the read error
// that ended its loop if there was one.
func LogSocketDisconnect(logger *logrus.Logger, connID uuid.UUID, err error) {
	fields := logrus.Fields{"conn": connID}
	if err != nil {
		fields["error"] = err
	}
	logger.WithFields(fields).Info("socket disconnected")
}
