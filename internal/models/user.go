package models

import (
	"time"
)

// User mağaza müşterisini temsil eder
type User struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // hash, JSON'a asla çıkmaz
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RegisterRequest yeni kullanıcı kayıt isteği
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest email/şifre ile giriş isteği
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse giriş sonrası kullanıcı ve JWT token döner
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// RefreshResponse yenilenen token bilgisini taşır
type RefreshResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	Message   string `json:"message"`
}
