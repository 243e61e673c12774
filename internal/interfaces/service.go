// internal/interfaces/service.go
package interfaces

import "github.com/Jomachado2002/Zennelectronica-sub006/internal/models"

// UserServiceInterface kullanıcı business logic için interface
type UserServiceInterface interface {
	// Register yeni kullanıcı kaydeder
	Register(req *models.RegisterRequest) (*models.User, error)

	// Login kullanıcı girişi yapar ve token döner
	Login(req *models.LoginRequest) (*models.LoginResponse, error)

	// GetUserByID ID ile kullanıcı getirir
	GetUserByID(userID int) (*models.User, error)
}

// WalletServiceInterface cüzdan business logic için interface
type WalletServiceInterface interface {
	// GetOrCreateBalance kullanıcının bakiyesini getirir, yoksa lazy oluşturur
	GetOrCreateBalance(userID int) (*models.Balance, error)

	// AddTransaction cüzdana hareket ekler ve güncellenmiş bakiyeyi döner
	AddTransaction(userID int, req *models.TransactionRequest) (*models.Balance, error)

	// HasEnoughBalance saldo yeterliliği için advisory ön kontrol
	HasEnoughBalance(userID int, amount float64) (bool, error)

	// GetBalanceSummary saldo özetini son hareketlerle birlikte döner
	GetBalanceSummary(userID int) (*models.BalanceSummary, error)

	// GetTransactions kullanıcının hareket geçmişini getirir
	GetTransactions(userID int, limit, offset int) ([]*models.WalletTransaction, error)
}

// BancardServiceInterface Bancard vPOS entegrasyonu için interface
type BancardServiceInterface interface {
	// CreateLoadSession saldo yükleme için yeni bir ödeme oturumu başlatır
	CreateLoadSession(userID int, req *models.LoadBalanceRequest) (*models.LoadBalanceResponse, error)

	// ProcessConfirmation confirm webhook'unu işler; onaylanırsa cüzdana load ekler
	ProcessConfirmation(req *models.BancardConfirmRequest) error

	// PayWithBalance saldo ile ödeme yapar (spend)
	PayWithBalance(userID int, req *models.PayWithBalanceRequest) (*models.PayWithBalanceResponse, error)
}
