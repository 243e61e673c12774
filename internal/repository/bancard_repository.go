package repository

import (
	"database/sql"
	"fmt"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// BancardRepository Bancard transaction database işlemleri
type BancardRepository struct {
	db *sql.DB
}

// NewBancardRepository yeni repository oluşturur
func NewBancardRepository(db *sql.DB) *BancardRepository {
	return &BancardRepository{db: db}
}

// Create yeni Bancard transaction kaydı oluşturur
func (r *BancardRepository) Create(btx *models.BancardTransaction) (*models.BancardTransaction, error) {
	query := `
		INSERT INTO bancard_transactions
			(shop_process_id, user_id, amount, currency, status, balance_load, payment_session_id, process_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING id, created_at
	`

	err := r.db.QueryRow(query,
		btx.ShopProcessID,
		btx.UserID,
		btx.Amount,
		btx.Currency,
		btx.Status,
		btx.BalanceLoad,
		btx.PaymentSessionID,
		btx.ProcessID,
	).Scan(&btx.ID, &btx.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("bancard kaydı oluşturulamadı: %w", err)
	}

	return btx, nil
}

// GetLoadByShopProcessID shop_process_id ile saldo yükleme kaydını bulur
func (r *BancardRepository) GetLoadByShopProcessID(shopProcessID int64) (*models.BancardTransaction, error) {
	query := `
		SELECT id, shop_process_id, user_id, amount, currency, status, balance_load,
		       payment_session_id, COALESCE(process_id, ''), COALESCE(response, ''),
		       COALESCE(response_code, ''), COALESCE(response_description, ''),
		       COALESCE(authorization_number, ''), COALESCE(ticket_number, ''),
		       confirmation_date, created_at
		FROM bancard_transactions
		WHERE shop_process_id = $1 AND balance_load = TRUE
	`

	var btx models.BancardTransaction
	err := r.db.QueryRow(query, shopProcessID).Scan(
		&btx.ID,
		&btx.ShopProcessID,
		&btx.UserID,
		&btx.Amount,
		&btx.Currency,
		&btx.Status,
		&btx.BalanceLoad,
		&btx.PaymentSessionID,
		&btx.ProcessID,
		&btx.Response,
		&btx.ResponseCode,
		&btx.ResponseDescription,
		&btx.AuthorizationNumber,
		&btx.TicketNumber,
		&btx.ConfirmationDate,
		&btx.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("bancard kaydı arama hatası: %w", err)
	}

	return &btx, nil
}

// UpdateConfirmation webhook sonucunu kayda işler
func (r *BancardRepository) UpdateConfirmation(id int, status string, op *models.BancardOperation) error {
	query := `
		UPDATE bancard_transactions
		SET status = $1, response = $2, response_code = $3, response_description = $4,
		    authorization_number = $5, ticket_number = $6, confirmation_date = NOW()
		WHERE id = $7
	`

	_, err := r.db.Exec(query,
		status,
		op.Response,
		op.ResponseCode,
		op.ResponseDescription,
		op.AuthorizationNumber,
		op.TicketNumber,
		id,
	)
	if err != nil {
		return fmt.Errorf("bancard kaydı güncellenemedi: %w", err)
	}

	return nil
}
