package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware/errors"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/utils"
)

// ErrorHandlingMiddleware centralized panic recovery ve JSON error response
func ErrorHandlingMiddleware(config *errors.ErrorConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = errors.DefaultErrorConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					statusCode := http.StatusInternalServerError
					var errorMessage string
					var stack string

					switch err := recovered.(type) {
					case errors.APIError:
						// APIError interface'ini implement eden error'lar
						statusCode = err.Status()
						errorMessage = err.Error()
					case error:
						errorMessage = err.Error()
						stack = string(debug.Stack())
					default:
						errorMessage = fmt.Sprintf("Server panic: %v", recovered)
						stack = string(debug.Stack())
					}

					if stack != "" {
						log.Error().
							Str("method", r.Method).
							Str("path", r.URL.Path).
							Str("client_ip", utils.GetClientIP(r)).
							Str("error", errorMessage).
							Msg("🚨 Panic recovered")
					}

					sendErrorResponse(w, r, statusCode, errorMessage, config, stack)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// sendErrorResponse standardized error response gönderir
func sendErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string, config *errors.ErrorConfig, stack string) {
	response := errors.ErrorResponse{
		Success:   false,
		Error:     truncateString(message, config.MaxErrorLength),
		Code:      statusCode,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
		Details: map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		},
	}

	// Stack trace sadece development'ta
	if config.ShowStackTrace && stack != "" {
		response.Stack = stack
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().
			Err(err).
			Str("request_id", response.RequestID).
			Msg("Error response JSON encoding failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// truncateString mesajı maksimum uzunluğa kısaltır
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
