package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/db"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// querier *sql.DB ve *sql.Tx için ortak sorgu interface'i
type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// WalletRepository cüzdan database işlemleri
type WalletRepository struct {
	db *sql.DB
}

// NewWalletRepository yeni repository oluşturur
func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetByUserID kullanıcının bakiyesini transaction log'u ile birlikte getirir
func (r *WalletRepository) GetByUserID(userID int) (*models.Balance, error) {
	balance, err := r.scanBalance(r.db, userID, false)
	if err != nil {
		return nil, err
	}

	transactions, err := r.loadTransactions(r.db, userID)
	if err != nil {
		return nil, err
	}
	balance.Transactions = transactions

	return balance, nil
}

// GetOrCreateByUserID bakiyeyi getirir, yoksa sıfır bakiye ile oluşturur.
// İki eşzamanlı çağrıdan ikincisinin insert'i unique constraint'e takılırsa
// plain lookup olarak tekrar denenir; her iki çağrı da aynı kaydı görür.
func (r *WalletRepository) GetOrCreateByUserID(userID int) (*models.Balance, error) {
	balance, err := r.GetByUserID(userID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, models.ErrBalanceNotFound) {
		return nil, err
	}

	balance, err = r.createBalance(userID)
	if errors.Is(err, models.ErrDuplicateBalance) {
		// Yarışı kaybettik, mevcut kaydı oku
		return r.GetByUserID(userID)
	}
	if err != nil {
		return nil, err
	}

	return balance, nil
}

// createBalance yeni sıfır bakiye oluşturur
func (r *WalletRepository) createBalance(userID int) (*models.Balance, error) {
	query := `
		INSERT INTO balances (user_id, current_balance, total_loaded, total_spent)
		VALUES ($1, 0, 0, 0)
		RETURNING user_id, current_balance, total_loaded, total_spent, last_transaction_date, is_active, created_at, updated_at
	`

	var balance models.Balance
	err := r.db.QueryRow(query, userID).Scan(
		&balance.UserID,
		&balance.CurrentBalance,
		&balance.TotalLoaded,
		&balance.TotalSpent,
		&balance.LastTransactionDate,
		&balance.IsActive,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	)

	if err != nil {
		err = translatePQError(err)
		if errors.Is(err, models.ErrDuplicateBalance) {
			return nil, err
		}
		return nil, fmt.Errorf("bakiye oluşturulamadı: %w", err)
	}

	balance.Transactions = []*models.WalletTransaction{}
	return &balance, nil
}

// AppendTransaction check-and-append'i tek bir database transaction'ında uygular.
// Bakiye satırı FOR UPDATE ile kilitlenir; yeterlilik kontrolü, insert ve
// recompute aynı kilidin altında çalışır, iki eşzamanlı spend aynı saldoyu
// iki kez harcayamaz.
func (r *WalletRepository) AppendTransaction(userID int, wtx *models.WalletTransaction) (*models.Balance, error) {
	var result *models.Balance

	err := db.WithTransaction(r.db, func(tx *sql.Tx) error {
		// 1. Bakiye satırını kilitle
		balance, err := r.scanBalance(tx, userID, true)
		if err != nil {
			return err
		}

		// 2. Transaction log'unu yükle
		transactions, err := r.loadTransactions(tx, userID)
		if err != nil {
			return err
		}
		balance.Transactions = transactions

		// 3. Hareketi aggregate'e uygula (yeterlilik kontrolü, toplamlar, full recompute)
		if err := balance.AddTransaction(wtx); err != nil {
			return err
		}

		// 4. Transaction satırını ekle
		metadataJSON, err := json.Marshal(wtx.Metadata)
		if err != nil {
			return fmt.Errorf("metadata serialize edilemedi: %w", err)
		}

		err = tx.QueryRow(`
			INSERT INTO wallet_transactions (user_id, type, amount, description, reference, transaction_date, status, metadata)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
			RETURNING id
		`, userID, wtx.Type, wtx.Amount, wtx.Description, wtx.Reference, wtx.TransactionDate, wtx.Status, metadataJSON).Scan(&wtx.ID)
		if err != nil {
			return fmt.Errorf("cüzdan hareketi kaydedilemedi: %w", err)
		}

		// 5. Bakiye satırını güncelle
		_, err = tx.Exec(`
			UPDATE balances
			SET current_balance = $1, total_loaded = $2, total_spent = $3,
			    last_transaction_date = $4, updated_at = NOW()
			WHERE user_id = $5
		`, balance.CurrentBalance, balance.TotalLoaded, balance.TotalSpent, balance.LastTransactionDate, userID)
		if err != nil {
			return fmt.Errorf("bakiye güncellenemedi: %w", err)
		}

		result = balance
		return nil
	})

	if err != nil {
		return nil, translatePQError(err)
	}

	return result, nil
}

// GetTransactions kullanıcının hareketlerini tarih azalan sırada getirir
func (r *WalletRepository) GetTransactions(userID int, limit, offset int) ([]*models.WalletTransaction, error) {
	query := `
		SELECT id, user_id, type, amount, description, reference, transaction_date, status, metadata
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("hareket geçmişi sorgusu hatası: %w", err)
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// scanBalance bakiye satırını okur; forUpdate true ise satırı kilitler
func (r *WalletRepository) scanBalance(q querier, userID int, forUpdate bool) (*models.Balance, error) {
	query := `
		SELECT user_id, current_balance, total_loaded, total_spent, last_transaction_date, is_active, created_at, updated_at
		FROM balances
		WHERE user_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var balance models.Balance
	err := q.QueryRow(query, userID).Scan(
		&balance.UserID,
		&balance.CurrentBalance,
		&balance.TotalLoaded,
		&balance.TotalSpent,
		&balance.LastTransactionDate,
		&balance.IsActive,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("bakiye sorgusu hatası: %w", err)
	}

	return &balance, nil
}

// loadTransactions kullanıcının tüm hareketlerini ekleniş sırasıyla yükler
func (r *WalletRepository) loadTransactions(q querier, userID int) ([]*models.WalletTransaction, error) {
	query := `
		SELECT id, user_id, type, amount, description, reference, transaction_date, status, metadata
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := q.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("hareket log'u sorgusu hatası: %w", err)
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// scanTransactionRows satırları WalletTransaction listesine çevirir
func scanTransactionRows(rows *sql.Rows) ([]*models.WalletTransaction, error) {
	transactions := []*models.WalletTransaction{}

	for rows.Next() {
		var t models.WalletTransaction
		var reference sql.NullString
		var metadataJSON []byte

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Type,
			&t.Amount,
			&t.Description,
			&reference,
			&t.TransactionDate,
			&t.Status,
			&metadataJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("hareket scan hatası: %w", err)
		}

		t.Reference = reference.String
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &t.Metadata); err != nil {
				return nil, fmt.Errorf("metadata parse hatası: %w", err)
			}
		}

		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hareket satırları okunamadı: %w", err)
	}

	return transactions, nil
}

// translatePQError PostgreSQL hata kodlarını domain hatalarına çevirir
func translatePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return models.ErrDuplicateBalance
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return models.ErrPersistenceConflict
		}
	}
	return err
}
