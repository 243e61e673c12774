package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/auth"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware/errors"
)

// ContextKey middleware'de context için key tipi
type ContextKey string

const UserContextKey ContextKey = "user"

// AuthMiddleware korumalı endpoint'ler için Bearer JWT doğrulaması yapar.
// Geçerli token'ın claims'i request context'ine eklenir.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("Authorization header eksik")
			unauthorizedJSON(w, "Authorization header gerekli")
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			log.Warn().
				Str("path", r.URL.Path).
				Msg("Geçersiz Authorization format")
			unauthorizedJSON(w, "Authorization format: 'Bearer <token>'")
			return
		}

		claims, err := auth.ValidateToken(tokenParts[1])
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", r.URL.Path).
				Msg("Token doğrulama başarısız")
			unauthorizedJSON(w, "Geçersiz veya süresi dolmuş token")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		r = r.WithContext(ctx)

		log.Debug().
			Int("user_id", claims.UserID).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg("🔐 Authentication successful")

		next.ServeHTTP(w, r)
	})
}

// unauthorizedJSON 401 yanıtını standart hata zarfıyla döner
func unauthorizedJSON(w http.ResponseWriter, message string) {
	response := errors.ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      http.StatusUnauthorized,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(response)
}
