package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/auth"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware"
)

// WalletHandler cüzdan HTTP isteklerini yönetir
type WalletHandler struct {
	walletService interfaces.WalletServiceInterface
}

// NewWalletHandler yeni handler oluşturur
func NewWalletHandler(walletService interfaces.WalletServiceInterface) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetBalance kullanıcının saldo özetini döner (protected)
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	// Context'ten user bilgilerini al
	claims, ok := r.Context().Value(middleware.UserContextKey).(*auth.Claims)
	if !ok {
		http.Error(w, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", http.StatusUnauthorized)
		return
	}

	summary, err := h.walletService.GetBalanceSummary(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Saldo özeti getirilemedi")
		http.Error(w, "Saldo bilgisi alınamadı. Lütfen tekrar deneyin.", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"data":    summary,
		"message": "Saldo bilgisi başarıyla getirildi",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)

	log.Info().
		Int("user_id", claims.UserID).
		Float64("balance", summary.CurrentBalance).
		Msg("Saldo bilgisi getirildi")
}

// GetTransactions kullanıcının hareket geçmişi endpoint'i (protected)
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	// Context'ten user bilgilerini al
	claims, ok := r.Context().Value(middleware.UserContextKey).(*auth.Claims)
	if !ok {
		http.Error(w, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", http.StatusUnauthorized)
		return
	}

	// Query parameters (pagination)
	limit := 10
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	transactions, err := h.walletService.GetTransactions(claims.UserID, limit, offset)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Hareket geçmişi getirilemedi")
		http.Error(w, "Hareket geçmişi alınamadı. Lütfen tekrar deneyin.", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"transactions": transactions,
			"limit":        limit,
			"offset":       offset,
			"count":        len(transactions),
		},
		"message": "Hareket geçmişi başarıyla getirildi",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)

	log.Info().
		Int("user_id", claims.UserID).
		Int("count", len(transactions)).
		Msg("Hareket geçmişi getirildi")
}
