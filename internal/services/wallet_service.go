package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// Tek seferde kabul edilen maksimum hareket miktarı (Guaraní)
const maxTransactionAmount = 100000000

// WalletService cüzdan business logic'i
type WalletService struct {
	walletRepo interfaces.WalletRepositoryInterface
	mutex      sync.RWMutex // Thread-safe operations için
}

// NewWalletService yeni service oluşturur
func NewWalletService(walletRepo interfaces.WalletRepositoryInterface) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		mutex:      sync.RWMutex{},
	}
}

// ValidateTransaction transaction isteğini doğrular
func (s *WalletService) ValidateTransaction(req *models.TransactionRequest) error {
	if !models.ValidTransactionType(req.Type) {
		return fmt.Errorf("geçersiz transaction tipi: %s. Geçerli tipler: load, spend, refund, bonus, roulette_win", req.Type)
	}

	if req.Amount < 0 {
		return fmt.Errorf("miktar negatif olamaz")
	}

	if req.Amount > maxTransactionAmount {
		return fmt.Errorf("maksimum işlem limiti: %d Gs.", maxTransactionAmount)
	}

	if req.Description == "" {
		return fmt.Errorf("açıklama zorunludur")
	}

	return nil
}

// GetOrCreateBalance kullanıcının bakiyesini getirir, yoksa lazy oluşturur
func (s *WalletService) GetOrCreateBalance(userID int) (*models.Balance, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	balance, err := s.walletRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("bakiye alınamadı: %w", err)
	}

	return balance, nil
}

// AddTransaction cüzdana hareket ekler ve güncellenmiş bakiyeyi döner.
// Eşzamanlı çakışmada (ErrPersistenceConflict) bakiye repository içinde
// taze state ile yeniden okunduğundan operasyon bir kez tekrarlanır;
// yeterlilik kontrolü her denemede güncel saldo üzerinden yapılır.
func (s *WalletService) AddTransaction(userID int, req *models.TransactionRequest) (*models.Balance, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.ValidateTransaction(req); err != nil {
		return nil, err
	}

	wtx := &models.WalletTransaction{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      req.Status,
		Metadata:    req.Metadata,
	}

	balance, err := s.appendWithRetry(userID, wtx)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("user_id", userID).
		Str("type", wtx.Type).
		Float64("amount", wtx.Amount).
		Float64("new_balance", balance.CurrentBalance).
		Msg("💰 Cüzdan hareketi eklendi")

	return balance, nil
}

// appendWithRetry append'i uygular; bakiye yoksa oluşturur, conflict'te bir kez retry eder
func (s *WalletService) appendWithRetry(userID int, wtx *models.WalletTransaction) (*models.Balance, error) {
	for attempt := 0; attempt < 2; attempt++ {
		balance, err := s.walletRepo.AppendTransaction(userID, wtx)
		if err == nil {
			return balance, nil
		}

		// İlk hareket: bakiye kaydı henüz yok, oluştur ve tekrar dene
		if errors.Is(err, models.ErrBalanceNotFound) {
			if _, createErr := s.walletRepo.GetOrCreateByUserID(userID); createErr != nil {
				return nil, fmt.Errorf("bakiye oluşturulamadı: %w", createErr)
			}
			continue
		}

		if errors.Is(err, models.ErrPersistenceConflict) && attempt == 0 {
			log.Warn().Int("user_id", userID).Msg("⚠️ Eşzamanlı çakışma, hareket yeniden deneniyor")
			continue
		}

		return nil, err
	}

	return nil, models.ErrPersistenceConflict
}

// HasEnoughBalance saldo yeterliliği için advisory ön kontrol.
// Asıl kontrol append sırasında kilit altında tekrar yapılır.
func (s *WalletService) HasEnoughBalance(userID int, amount float64) (bool, error) {
	balance, err := s.GetOrCreateBalance(userID)
	if err != nil {
		return false, err
	}

	return balance.HasEnoughBalance(amount), nil
}

// GetBalanceSummary saldo özetini son 10 hareketle birlikte döner
func (s *WalletService) GetBalanceSummary(userID int) (*models.BalanceSummary, error) {
	balance, err := s.GetOrCreateBalance(userID)
	if err != nil {
		return nil, err
	}

	return &models.BalanceSummary{
		UserID:              balance.UserID,
		CurrentBalance:      balance.CurrentBalance,
		TotalLoaded:         balance.TotalLoaded,
		TotalSpent:          balance.TotalSpent,
		LastTransactionDate: balance.LastTransactionDate,
		RecentTransactions:  balance.RecentTransactions(10),
		IsActive:            balance.IsActive,
	}, nil
}

// GetTransactions kullanıcının hareket geçmişini getirir
func (s *WalletService) GetTransactions(userID int, limit, offset int) ([]*models.WalletTransaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	// Pagination validation
	if limit <= 0 || limit > 100 {
		limit = 10 // default limit
	}
	if offset < 0 {
		offset = 0 // default offset
	}

	transactions, err := s.walletRepo.GetTransactions(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("hareket geçmişi alınamadı: %w", err)
	}

	return transactions, nil
}
