package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/auth"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/middleware"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// UserHandler kullanıcı HTTP isteklerini yönetir
type UserHandler struct {
	userService interfaces.UserServiceInterface
}

// NewUserHandler yeni handler oluşturur
func NewUserHandler(userService interfaces.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register yeni kullanıcı kaydı endpoint'i
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz istek formatı", http.StatusBadRequest)
		return
	}

	// Basit validation
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		http.Error(w, "Ad, email ve en az 6 karakterlik şifre gerekli", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Kullanıcı kaydı başarısız")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"data":    user,
		"message": "Kullanıcı başarıyla oluşturuldu",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)

	log.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("👤 Yeni kullanıcı kaydedildi")
}

// Login kullanıcı girişi endpoint'i
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz istek formatı", http.StatusBadRequest)
		return
	}

	loginResponse, err := h.userService.Login(&req)
	if err != nil {
		log.Warn().Str("email", req.Email).Msg("Başarısız giriş denemesi")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"data":    loginResponse,
		"message": "Giriş başarılı",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)

	log.Info().Int("user_id", loginResponse.User.ID).Msg("🔑 Kullanıcı giriş yaptı")
}

// Refresh süresi dolmuş token'ı yeniler
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		http.Error(w, "Authorization format: 'Bearer <token>'", http.StatusUnauthorized)
		return
	}

	newToken, expiresIn, err := auth.RefreshToken(tokenParts[1])
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	response := models.RefreshResponse{
		Success:   true,
		Token:     newToken,
		ExpiresIn: expiresIn,
		Message:   "Token başarıyla yenilendi",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// GetProfile giriş yapmış kullanıcının profilini döner (protected)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*auth.Claims)
	if !ok {
		http.Error(w, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Profil getirilemedi")
		http.Error(w, "Profil bilgisi alınamadı", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"data":    user,
		"message": "Profil bilgisi başarıyla getirildi",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
