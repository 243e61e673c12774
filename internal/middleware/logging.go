package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/utils"
)

// responseWriter response bilgilerini yakalayan wrapper
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	responseSize int64
}

// WriteHeader status code'u yakalar
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write response boyutunu yakalar
func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.responseSize += int64(size)
	return size, err
}

// LoggingConfig logging middleware ayarları
type LoggingConfig struct {
	SkipPaths []string // Log'lanmayacak path'ler (health check gibi)
}

// DefaultLoggingConfig varsayılan logging ayarları
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		SkipPaths: []string{
			"/health",
			"/favicon.ico",
		},
	}
}

// RequestLoggingMiddleware HTTP isteklerini loglar
func RequestLoggingMiddleware(config *LoggingConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultLoggingConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip paths kontrolü
			if shouldSkipLogging(r.URL.Path, config.SkipPaths) {
				next.ServeHTTP(w, r)
				return
			}

			startTime := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			// Request ID oluştur (tracking için)
			requestID := uuid.NewString()
			wrapped.Header().Set("X-Request-ID", requestID)

			clientIP := utils.GetClientIP(r)

			log.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("client_ip", clientIP).
				Int64("request_size", r.ContentLength).
				Msg("Request started")

			next.ServeHTTP(wrapped, r)

			duration := time.Since(startTime)

			// FOR UPDATE kilit beklemeleri burada görünür olur
			event := log.Info()
			if wrapped.statusCode >= http.StatusInternalServerError {
				event = log.Error()
			} else if duration > time.Second {
				event = log.Warn()
			}

			event.
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("client_ip", clientIP).
				Int("status_code", wrapped.statusCode).
				Int64("response_size", wrapped.responseSize).
				Dur("duration", duration).
				Msg("Request completed")
		})
	}
}

// shouldSkipLogging path'in log dışı olup olmadığını kontrol eder
func shouldSkipLogging(path string, skipPaths []string) bool {
	for _, skip := range skipPaths {
		if path == skip {
			return true
		}
	}
	return false
}
