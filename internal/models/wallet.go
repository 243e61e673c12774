package models

import "time"

// Cüzdan transaction tipleri
const (
	TxTypeLoad        = "load"         // Saldo yükleme (Bancard vb.)
	TxTypeSpend       = "spend"        // Saldo ile ödeme
	TxTypeRefund      = "refund"       // İade
	TxTypeBonus       = "bonus"        // Bonus yükleme
	TxTypeRouletteWin = "roulette_win" // Rulet kazancı
)

// Transaction status değerleri
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// ValidTransactionType transaction tipinin enum'da olup olmadığını kontrol eder
func ValidTransactionType(txType string) bool {
	switch txType {
	case TxTypeLoad, TxTypeSpend, TxTypeRefund, TxTypeBonus, TxTypeRouletteWin:
		return true
	}
	return false
}

// WalletTransaction cüzdan hareketini temsil eder (Balance içine gömülü log kaydı)
type WalletTransaction struct {
	ID              int                    `json:"id" db:"id"`
	UserID          int                    `json:"user_id" db:"user_id"`
	Type            string                 `json:"type" db:"type"`
	Amount          float64                `json:"amount" db:"amount"`
	Description     string                 `json:"description" db:"description"`
	Reference       string                 `json:"reference,omitempty" db:"reference"` // Bancard shop_process_id, satış ID vb.
	TransactionDate time.Time              `json:"transaction_date" db:"transaction_date"`
	Status          string                 `json:"status" db:"status"`
	Metadata        map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
}

// IsCredit transaction'ın bakiyeyi artıran tipte olup olmadığını döner
func (t *WalletTransaction) IsCredit() bool {
	switch t.Type {
	case TxTypeLoad, TxTypeBonus, TxTypeRouletteWin, TxTypeRefund:
		return true
	}
	return false
}

// Balance kullanıcı başına tek cüzdan aggregate'ini temsil eder
type Balance struct {
	UserID              int                  `json:"user_id" db:"user_id"`
	CurrentBalance      float64              `json:"current_balance" db:"current_balance"`
	TotalLoaded         float64              `json:"total_loaded" db:"total_loaded"`
	TotalSpent          float64              `json:"total_spent" db:"total_spent"`
	Transactions        []*WalletTransaction `json:"transactions"`
	LastTransactionDate time.Time            `json:"last_transaction_date" db:"last_transaction_date"`
	IsActive            bool                 `json:"is_active" db:"is_active"`
	CreatedAt           time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at" db:"updated_at"`
}

// Recalculate bakiyeyi transaction log'undan yeniden hesaplar.
// Sadece status == completed olan hareketler bakiyeye dahildir;
// load/bonus/roulette_win/refund artırır, spend azaltır.
func (b *Balance) Recalculate() {
	balance := 0.0
	for _, t := range b.Transactions {
		if t.Status != StatusCompleted {
			continue
		}
		if t.Type == TxTypeSpend {
			balance -= t.Amount
		} else if t.IsCredit() {
			balance += t.Amount
		}
	}
	b.CurrentBalance = balance
}

// HasEnoughBalance saldo yeterliliği için advisory kontrol.
// Asıl kontrol AddTransaction içinde yapılır; bu metod yan etkisizdir.
func (b *Balance) HasEnoughBalance(amount float64) bool {
	return b.CurrentBalance >= amount
}

// AddTransaction transaction'ı log'a ekler ve bakiyeyi günceller.
//
// spend tipinde, miktar append öncesi CurrentBalance'tan büyükse
// *InsufficientBalanceError döner ve log değişmeden kalır.
// Status verilmezse completed, tarih verilmezse şimdi kabul edilir.
// TotalLoaded/TotalSpent status'tan bağımsız artırılır; bakiye fold'u
// ise sadece completed hareketleri sayar.
func (b *Balance) AddTransaction(tx *WalletTransaction) error {
	// Default'ları uygula
	if tx.Status == "" {
		tx.Status = StatusCompleted
	}
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = time.Now()
	}
	tx.UserID = b.UserID

	// Mevcut saldodan fazlası harcanamaz
	if tx.Type == TxTypeSpend && tx.Amount > b.CurrentBalance {
		return &InsufficientBalanceError{
			CurrentBalance: b.CurrentBalance,
			RequiredAmount: tx.Amount,
		}
	}

	// Transaction'ı ekle
	b.Transactions = append(b.Transactions, tx)

	// Toplamları güncelle
	if tx.Type == TxTypeLoad {
		b.TotalLoaded += tx.Amount
	} else if tx.Type == TxTypeSpend {
		b.TotalSpent += tx.Amount
	}

	// Bakiyeyi yeniden hesapla ve son hareket tarihini güncelle
	b.Recalculate()
	b.LastTransactionDate = tx.TransactionDate

	return nil
}

// RecentTransactions en yeni N hareketi tarih sırasına göre döner
func (b *Balance) RecentTransactions(limit int) []*WalletTransaction {
	if limit <= 0 || len(b.Transactions) == 0 {
		return []*WalletTransaction{}
	}

	sorted := make([]*WalletTransaction, len(b.Transactions))
	copy(sorted, b.Transactions)

	// Tarihe göre azalan sırala (eşit tarihte ekleniş sırası korunur)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].TransactionDate.After(sorted[j-1].TransactionDate); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if limit > len(sorted) {
		limit = len(sorted)
	}
	return sorted[:limit]
}

// TransactionRequest cüzdana hareket ekleme isteği
type TransactionRequest struct {
	Type        string                 `json:"type"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
	Reference   string                 `json:"reference,omitempty"`
	Status      string                 `json:"status,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// BalanceSummary saldo görüntüleme yanıtı (son hareketlerle birlikte)
type BalanceSummary struct {
	UserID              int                  `json:"user_id"`
	CurrentBalance      float64              `json:"current_balance"`
	TotalLoaded         float64              `json:"total_loaded"`
	TotalSpent          float64              `json:"total_spent"`
	LastTransactionDate time.Time            `json:"last_transaction_date"`
	RecentTransactions  []*WalletTransaction `json:"recent_transactions"`
	IsActive            bool                 `json:"is_active"`
}

// PayWithBalanceRequest saldo ile ödeme isteği
type PayWithBalanceRequest struct {
	Amount       float64                  `json:"amount"`
	Description  string                   `json:"description"`
	SaleID       string                   `json:"sale_id,omitempty"`
	Reference    string                   `json:"reference,omitempty"`
	Items        []map[string]interface{} `json:"items,omitempty"`
	CustomerInfo map[string]interface{}   `json:"customer_info,omitempty"`
}

// PayWithBalanceResponse saldo ile ödeme yanıtı
type PayWithBalanceResponse struct {
	Success          bool    `json:"success"`
	UserID           int     `json:"user_id"`
	AmountPaid       float64 `json:"amount_paid"`
	RemainingBalance float64 `json:"remaining_balance"`
	TransactionRef   string  `json:"transaction_ref"`
	Message          string  `json:"message"`
}
