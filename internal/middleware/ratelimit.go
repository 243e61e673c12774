package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware/errors"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/utils"
)

// RateLimitConfig rate limiting ayarları
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	SkipPaths         []string
	CustomMessage     string
}

// DefaultRateLimitConfig varsayılan rate limit ayarları
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 60,
		Burst:             10,
		SkipPaths: []string{
			"/health",
			"/favicon.ico",
			// Bancard confirm webhook'u rate limit'e takılmamalı
			"/api/v1/bancard/confirm",
		},
		CustomMessage: "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
	}
}

// ipLimiter tek bir IP için rate limiter
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware IP başına token-bucket rate limiting
type RateLimitMiddleware struct {
	config   *RateLimitConfig
	limiters map[string]*ipLimiter
	mutex    sync.RWMutex
}

// NewRateLimitMiddleware yeni rate limit middleware oluşturur
func NewRateLimitMiddleware(config *RateLimitConfig) *RateLimitMiddleware {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	m := &RateLimitMiddleware{
		config:   config,
		limiters: make(map[string]*ipLimiter),
	}

	go m.cleanupLimiters()

	return m
}

// Handler rate limiting middleware handler döner
func (rlm *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rlm.shouldSkipPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := utils.GetClientIP(r)

			if !rlm.limiterFor(clientIP).Allow() {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Msg("⛔ Rate limit aşıldı")

				response := errors.ErrorResponse{
					Success:   false,
					Error:     rlm.config.CustomMessage,
					Code:      http.StatusTooManyRequests,
					Timestamp: time.Now().Format(time.RFC3339),
				}

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(response)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// limiterFor IP için limiter döner, yoksa oluşturur
func (rlm *RateLimitMiddleware) limiterFor(ip string) *rate.Limiter {
	rlm.mutex.Lock()
	defer rlm.mutex.Unlock()

	entry, exists := rlm.limiters[ip]
	if !exists {
		entry = &ipLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rlm.config.RequestsPerMinute)/60.0), rlm.config.Burst),
		}
		rlm.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

// shouldSkipPath path'in rate limit dışı olup olmadığını kontrol eder
func (rlm *RateLimitMiddleware) shouldSkipPath(path string) bool {
	for _, skip := range rlm.config.SkipPaths {
		if path == skip {
			return true
		}
	}
	return false
}

// cleanupLimiters uzun süredir görülmeyen IP'lerin limiter'larını temizler
func (rlm *RateLimitMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rlm.mutex.Lock()
		for ip, entry := range rlm.limiters {
			if time.Since(entry.lastSeen) > 10*time.Minute {
				delete(rlm.limiters, ip)
			}
		}
		rlm.mutex.Unlock()
	}
}
