package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Token ömrü, storefront oturumlarıyla aynı
const tokenTTL = 24 * time.Hour

var jwtSecret = []byte(secretFromEnv())

func secretFromEnv() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return "zennel-dev-secret-change-this-in-production"
}

// Claims JWT payload'ını temsil eder
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken kullanıcı için HS256 imzalı JWT üretir
func GenerateToken(userID int, email string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("token oluşturulamadı: %w", err)
	}

	return tokenString, nil
}

// ValidateToken JWT token'ını doğrular ve claims'i döner
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc)
	if err != nil {
		return nil, fmt.Errorf("token parse edilemedi: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("geçersiz token")
}

// keyFunc imza algoritmasını kontrol eder ve secret'ı döner
func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("beklenmeyen signing method: %v", token.Header["alg"])
	}
	return jwtSecret, nil
}

// RefreshToken süresi dolmuş bir token'dan yeni token üretir.
// Hala geçerli token'lar yenilenmez, malformed ve imzası bozuk
// token'lar reddedilir.
func RefreshToken(tokenString string) (string, int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc)

	if err == nil && token.Valid {
		log.Warn().Msg("Token refresh denendi ama token hala geçerli")
		return "", 0, fmt.Errorf("token hala geçerli, refresh gerekmiyor")
	}

	if token == nil {
		log.Error().Err(err).Msg("Token parse edilemedi")
		return "", 0, fmt.Errorf("token parse edilemedi: %w", err)
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return "", 0, fmt.Errorf("token claims alınamadı")
		}

		newToken, genErr := GenerateToken(claims.UserID, claims.Email)
		if genErr != nil {
			return "", 0, fmt.Errorf("yeni token oluşturulamadı: %w", genErr)
		}

		log.Info().Int("user_id", claims.UserID).Msg("Token başarıyla refresh edildi")
		return newToken, int64(tokenTTL.Seconds()), nil

	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", 0, fmt.Errorf("token malformed")

	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", 0, fmt.Errorf("token signature invalid")
	}

	log.Error().Err(err).Msg("Token refresh başarısız")
	return "", 0, fmt.Errorf("token refresh edilemedi: %w", err)
}
