package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware/errors"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/utils"
)

// NotFoundJSONHandler JSON formatında 404 Not Found döner
func NotFoundJSONHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := errors.ErrorResponse{
			Success:   false,
			Error:     "Endpoint bulunamadı. Cüzdan API rotaları /api/v1 altındadır.",
			Code:      http.StatusNotFound,
			Timestamp: time.Now().Format(time.RFC3339),
			RequestID: w.Header().Get("X-Request-ID"),
			Details: map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Error().Err(err).Msg("NotFound JSON encoding failed")
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		log.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", utils.GetClientIP(r)).
			Msg("404 Not Found")
	})
}

// MethodNotAllowedJSONHandler JSON formatında 405 Method Not Allowed döner
func MethodNotAllowedJSONHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := errors.ErrorResponse{
			Success:   false,
			Error:     "HTTP metodu bu endpoint için desteklenmiyor.",
			Code:      http.StatusMethodNotAllowed,
			Timestamp: time.Now().Format(time.RFC3339),
			RequestID: w.Header().Get("X-Request-ID"),
			Details: map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Error().Err(err).Msg("MethodNotAllowed JSON encoding failed")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		log.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", utils.GetClientIP(r)).
			Msg("405 Method Not Allowed")
	})
}
