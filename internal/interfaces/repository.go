// internal/interfaces/repository.go
package interfaces

import (
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// UserRepositoryInterface kullanıcı database işlemleri için interface
type UserRepositoryInterface interface {
	// Create yeni kullanıcı oluşturur
	Create(user *models.RegisterRequest) (*models.User, error)

	// GetByEmail email ile kullanıcı bulur
	GetByEmail(email string) (*models.User, error)

	// GetByID ID ile kullanıcı bulur
	GetByID(id int) (*models.User, error)
}

// WalletRepositoryInterface cüzdan database işlemleri için interface
type WalletRepositoryInterface interface {
	// GetByUserID kullanıcının bakiyesini transaction log'u ile birlikte getirir.
	// Kayıt yoksa models.ErrBalanceNotFound döner.
	GetByUserID(userID int) (*models.Balance, error)

	// GetOrCreateByUserID bakiyeyi getirir, yoksa sıfır bakiye ile oluşturur.
	// Eşzamanlı create yarışında unique constraint'e güvenir ve lookup'a düşer.
	GetOrCreateByUserID(userID int) (*models.Balance, error)

	// AppendTransaction check-and-append'i tek bir atomik read-modify-write
	// olarak uygular ve güncellenmiş bakiyeyi döner. Eşzamanlı çakışmada
	// models.ErrPersistenceConflict, yetersiz saldoda
	// *models.InsufficientBalanceError döner.
	AppendTransaction(userID int, tx *models.WalletTransaction) (*models.Balance, error)

	// GetTransactions kullanıcının hareketlerini tarih azalan sırada getirir (pagination ile)
	GetTransactions(userID int, limit, offset int) ([]*models.WalletTransaction, error)
}

// BancardRepositoryInterface Bancard transaction database işlemleri için interface
type BancardRepositoryInterface interface {
	// Create yeni Bancard transaction kaydı oluşturur
	Create(btx *models.BancardTransaction) (*models.BancardTransaction, error)

	// GetLoadByShopProcessID shop_process_id ile saldo yükleme kaydını bulur
	GetLoadByShopProcessID(shopProcessID int64) (*models.BancardTransaction, error)

	// UpdateConfirmation webhook sonucunu kayda işler (approved / rejected)
	UpdateConfirmation(id int, status string, op *models.BancardOperation) error
}
