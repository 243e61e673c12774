package main

import (
	"context"
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/config"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/db"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/handlers"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/logger"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware/errors"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/repository"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/services"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	// config yükle
	cfg := config.LoadConfig()

	// logger başlat
	logger.Init(cfg.AppEnv)

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Str("bancard_env", cfg.BancardEnvironment).
		Msg("🚀 Zennelectronica Cüzdan API başlatıldı")

	// Database bağlantısı
	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}
	defer database.Close()

	// Repository, Service, Handler katmanları
	userRepo := repository.NewUserRepository(database)
	walletRepo := repository.NewWalletRepository(database)
	bancardRepo := repository.NewBancardRepository(database)

	userService := services.NewUserService(userRepo)
	walletService := services.NewWalletService(walletRepo)
	bancardService := services.NewBancardService(bancardRepo, walletService, cfg)

	// Wallet Queue oluştur (3 worker, 50 buffer)
	walletQueue := services.NewWalletQueue(3, bancardService, 50)
	walletQueue.Start()

	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService)
	bancardHandler := handlers.NewBancardHandler(bancardService, walletQueue)

	// Gorilla Mux Router Setup
	router := setupRouter(cfg, userHandler, walletHandler, bancardHandler)

	// HTTP Server configuration
	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown setup
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Server'ı goroutine'de başlat
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("addr", serverAddr).
			Msg("🌐 HTTP Server (Gorilla Mux) başlatıldı")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server başlatma hatası")
		}
	}()

	// Shutdown signal'ını bekle
	<-shutdown
	log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")

	// Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// 1. HTTP Server'ı kapat (aktif bağlantıları bekle)
	log.Info().Msg("📡 HTTP Server kapatılıyor...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server başarıyla kapatıldı")
	}

	// 2. Wallet Queue'yu kapat (bekleyen ödemeleri bitir)
	log.Info().Msg("🔄 Wallet Queue kapatılıyor...")
	walletQueue.Stop()
	log.Info().Msg("✅ Wallet Queue başarıyla kapatıldı")

	// 3. Database bağlantısını kapat (defer ile zaten kapatılacak)
	log.Info().Msg("🗄️  Database bağlantısı kapatılıyor...")

	log.Info().Msg("👋 Cüzdan API başarıyla kapatıldı")
}

// setupRouter Gorilla Mux router'ını ayarlar
func setupRouter(cfg *config.Config, userHandler *handlers.UserHandler, walletHandler *handlers.WalletHandler, bancardHandler *handlers.BancardHandler) *mux.Router {
	router := mux.NewRouter()

	// Global middleware chain
	errorConfig := errors.DefaultErrorConfig()
	corsConfig := middleware.DefaultCORSConfig()
	if cfg.AppEnv == "development" {
		errorConfig = errors.DevelopmentErrorConfig()
	}

	rateLimiter := middleware.NewRateLimitMiddleware(middleware.DefaultRateLimitConfig())

	router.Use(middleware.ErrorHandlingMiddleware(errorConfig))
	router.Use(middleware.RequestLoggingMiddleware(middleware.DefaultLoggingConfig()))
	router.Use(middleware.CORSMiddleware(corsConfig))
	router.Use(rateLimiter.Handler())

	router.NotFoundHandler = middleware.NotFoundJSONHandler()
	router.MethodNotAllowedHandler = middleware.MethodNotAllowedJSONHandler()

	// Health check
	router.HandleFunc("/health", healthHandler).Methods("GET")

	// API v1 subrouter
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints (Authentication)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", userHandler.Register).Methods("POST")
	auth.HandleFunc("/login", userHandler.Login).Methods("POST")
	auth.HandleFunc("/refresh", userHandler.Refresh).Methods("POST")

	// Bancard webhook (public, Bancard tarafından çağrılır)
	api.HandleFunc("/bancard/confirm", bancardHandler.Confirm).Methods("POST")

	// Protected endpoints (Authentication required)
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)

	// User endpoints
	users := protected.PathPrefix("/users").Subrouter()
	users.HandleFunc("/profile", userHandler.GetProfile).Methods("GET")

	// Wallet endpoints
	wallet := protected.PathPrefix("/wallet").Subrouter()
	wallet.HandleFunc("/balance", walletHandler.GetBalance).Methods("GET")
	wallet.HandleFunc("/transactions", walletHandler.GetTransactions).Methods("GET")
	wallet.HandleFunc("/load", bancardHandler.LoadBalance).Methods("POST")
	wallet.HandleFunc("/pay", bancardHandler.Pay).Methods("POST")

	// Route listesini log'la (development için)
	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	return router
}

// healthHandler basit sağlık kontrolü endpoint'i
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
