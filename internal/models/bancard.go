package models

import "time"

// Bancard transaction status değerleri
const (
	BancardStatusPending    = "pending"
	BancardStatusApproved   = "approved"
	BancardStatusRejected   = "rejected"
	BancardStatusRolledBack = "rolled_back"
)

// BancardTransaction Bancard vPOS üzerinden yapılan bir işlemi temsil eder
type BancardTransaction struct {
	ID                  int        `json:"id" db:"id"`
	ShopProcessID       int64      `json:"shop_process_id" db:"shop_process_id"`
	UserID              int        `json:"user_id" db:"user_id"`
	Amount              float64    `json:"amount" db:"amount"`
	Currency            string     `json:"currency" db:"currency"` // "PYG"
	Status              string     `json:"status" db:"status"`
	BalanceLoad         bool       `json:"balance_load" db:"balance_load"` // Saldo yükleme işlemi mi?
	PaymentSessionID    string     `json:"payment_session_id" db:"payment_session_id"`
	ProcessID           string     `json:"process_id,omitempty" db:"process_id"` // Bancard'dan dönen process id
	Response            string     `json:"response,omitempty" db:"response"`     // "S" / "N"
	ResponseCode        string     `json:"response_code,omitempty" db:"response_code"`
	ResponseDescription string     `json:"response_description,omitempty" db:"response_description"`
	AuthorizationNumber string     `json:"authorization_number,omitempty" db:"authorization_number"`
	TicketNumber        string     `json:"ticket_number,omitempty" db:"ticket_number"`
	ConfirmationDate    *time.Time `json:"confirmation_date,omitempty" db:"confirmation_date"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}

// LoadBalanceRequest Bancard üzerinden saldo yükleme isteği
type LoadBalanceRequest struct {
	Amount float64 `json:"amount"`
}

// LoadBalanceResponse saldo yükleme oturumu yanıtı
type LoadBalanceResponse struct {
	Success          bool    `json:"success"`
	ShopProcessID    int64   `json:"shop_process_id"`
	PaymentSessionID string  `json:"payment_session_id"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	ProcessURL       string  `json:"process_url"`
	Message          string  `json:"message"`
}

// BancardOperation confirm webhook'unda gelen operation nesnesi
type BancardOperation struct {
	Token               string `json:"token"`
	ShopProcessID       int64  `json:"shop_process_id"`
	Response            string `json:"response"`
	ResponseCode        string `json:"response_code"`
	ResponseDescription string `json:"response_description"`
	Amount              string `json:"amount"` // Bancard string olarak gönderir ("10000.00")
	Currency            string `json:"currency"`
	AuthorizationNumber string `json:"authorization_number"`
	TicketNumber        string `json:"ticket_number"`
}

// BancardConfirmRequest Bancard confirm webhook payload'ı
type BancardConfirmRequest struct {
	Operation *BancardOperation `json:"operation"`
}
