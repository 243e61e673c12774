package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/auth"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/services"
)

// BancardHandler Bancard ve saldo ödemesi HTTP isteklerini yönetir
type BancardHandler struct {
	bancardService interfaces.BancardServiceInterface
	walletQueue    *services.WalletQueue
}

// NewBancardHandler yeni handler oluşturur
func NewBancardHandler(bancardService interfaces.BancardServiceInterface, walletQueue *services.WalletQueue) *BancardHandler {
	return &BancardHandler{
		bancardService: bancardService,
		walletQueue:    walletQueue,
	}
}

// LoadBalance Bancard üzerinden saldo yükleme oturumu başlatır (protected)
func (h *BancardHandler) LoadBalance(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*auth.Claims)
	if !ok {
		http.Error(w, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", http.StatusUnauthorized)
		return
	}

	var req models.LoadBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz istek formatı", http.StatusBadRequest)
		return
	}

	session, err := h.bancardService.CreateLoadSession(claims.UserID, &req)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Saldo yükleme oturumu oluşturulamadı")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"data":    session,
		"message": "Ödeme oturumu başarıyla oluşturuldu",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// Confirm Bancard confirm webhook'unu işler (public, token ile doğrulanır)
func (h *BancardHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req models.BancardConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz confirm payload'ı", http.StatusBadRequest)
		return
	}

	if err := h.bancardService.ProcessConfirmation(&req); err != nil {
		log.Error().Err(err).Msg("Confirm webhook işlenemedi")
		http.Error(w, "Confirmation işlenemedi", http.StatusBadRequest)
		return
	}

	// Bancard 200 + status success bekler
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// Pay saldo ile ödeme yapar (protected, queue üzerinden)
func (h *BancardHandler) Pay(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*auth.Claims)
	if !ok {
		http.Error(w, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", http.StatusUnauthorized)
		return
	}

	var req models.PayWithBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz istek formatı", http.StatusBadRequest)
		return
	}

	// Job'ı queue'ya ekle ve sonucu bekle
	resultChan := h.walletQueue.AddJob(claims.UserID, &req)

	select {
	case result := <-resultChan:
		if result.Error != nil {
			h.writePaymentError(w, claims.UserID, result.Error)
			return
		}

		response := map[string]interface{}{
			"success": true,
			"data":    result.Response,
			"message": result.Response.Message,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)

	case <-time.After(30 * time.Second):
		log.Error().Int("user_id", claims.UserID).Msg("Saldo ödemesi zaman aşımına uğradı")
		http.Error(w, "Ödeme zaman aşımına uğradı. Lütfen tekrar deneyin.", http.StatusGatewayTimeout)
	}
}

// writePaymentError ödeme hatasını uygun status code ile döner
func (h *BancardHandler) writePaymentError(w http.ResponseWriter, userID int, err error) {
	var insufficientErr *models.InsufficientBalanceError
	if errors.As(err, &insufficientErr) {
		response := map[string]interface{}{
			"success": false,
			"message": "Yetersiz saldo",
			"data": map[string]interface{}{
				"current_balance": insufficientErr.CurrentBalance,
				"required_amount": insufficientErr.RequiredAmount,
				"deficit":         insufficientErr.Deficit(),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(response)
		return
	}

	if errors.Is(err, models.ErrPersistenceConflict) {
		log.Warn().Int("user_id", userID).Msg("Ödeme eşzamanlı çakışma nedeniyle tamamlanamadı")
		http.Error(w, "İşlem şu anda gerçekleştirilemiyor. Lütfen tekrar deneyin.", http.StatusConflict)
		return
	}

	log.Error().Err(err).Int("user_id", userID).Msg("Saldo ödemesi başarısız")
	http.Error(w, err.Error(), http.StatusBadRequest)
}
