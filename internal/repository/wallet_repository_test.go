package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

var balanceColumns = []string{
	"user_id", "current_balance", "total_loaded", "total_spent",
	"last_transaction_date", "is_active", "created_at", "updated_at",
}

var transactionColumns = []string{
	"id", "user_id", "type", "amount", "description", "reference",
	"transaction_date", "status", "metadata",
}

// balanceRow test bakiyesi için sqlmock satırı üretir
func balanceRow(userID int, current, loaded, spent float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(balanceColumns).
		AddRow(userID, current, loaded, spent, now, true, now, now)
}

// TestWalletRepository_GetByUserID_Success, bakiyenin transaction log'u ile
// birlikte okunduğunu test eder.
func TestWalletRepository_GetByUserID_Success(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT user_id, current_balance, total_loaded, total_spent").
		WithArgs(1).
		WillReturnRows(balanceRow(1, 7000, 10000, 3000))

	mock.ExpectQuery("SELECT id, user_id, type, amount").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(1, 1, models.TxTypeLoad, 10000.0, "Saldo yükleme", nil, now, models.StatusCompleted, []byte(`{}`)).
			AddRow(2, 1, models.TxTypeSpend, 3000.0, "Sipariş ödemesi", "SALE-1", now, models.StatusCompleted, nil))

	// Act
	balance, err := repo.GetByUserID(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7000.0, balance.CurrentBalance)
	assert.Equal(t, 10000.0, balance.TotalLoaded)
	assert.Equal(t, 3000.0, balance.TotalSpent)
	require.Len(t, balance.Transactions, 2)
	assert.Equal(t, "SALE-1", balance.Transactions[1].Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWalletRepository_GetByUserID_NotFound, kayıt yoksa ErrBalanceNotFound
// döndüğünü test eder.
func TestWalletRepository_GetByUserID_NotFound(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	mock.ExpectQuery("SELECT user_id, current_balance").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	// Act
	balance, err := repo.GetByUserID(99)

	// Assert
	assert.ErrorIs(t, err, models.ErrBalanceNotFound)
	assert.Nil(t, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWalletRepository_GetOrCreateByUserID_CreatesWhenMissing, eksik bakiyenin
// sıfır değerlerle oluşturulduğunu test eder.
func TestWalletRepository_GetOrCreateByUserID_CreatesWhenMissing(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	mock.ExpectQuery("SELECT user_id, current_balance").
		WithArgs(5).
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("INSERT INTO balances").
		WithArgs(5).
		WillReturnRows(balanceRow(5, 0, 0, 0))

	// Act
	balance, err := repo.GetOrCreateByUserID(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, balance.UserID)
	assert.Equal(t, 0.0, balance.CurrentBalance)
	assert.Empty(t, balance.Transactions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWalletRepository_GetOrCreateByUserID_RaceFallsBackToLookup, insert'i
// unique constraint'e takılan çağrının mevcut kaydı okuduğunu test eder.
func TestWalletRepository_GetOrCreateByUserID_RaceFallsBackToLookup(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	mock.ExpectQuery("SELECT user_id, current_balance").
		WithArgs(5).
		WillReturnError(sql.ErrNoRows)

	// Yarışı kaybeden insert
	mock.ExpectQuery("INSERT INTO balances").
		WithArgs(5).
		WillReturnError(&pq.Error{Code: "23505"})

	// Retry: kazanan tarafın kaydı okunur
	mock.ExpectQuery("SELECT user_id, current_balance").
		WithArgs(5).
		WillReturnRows(balanceRow(5, 1000, 1000, 0))

	mock.ExpectQuery("SELECT id, user_id, type, amount").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(transactionColumns))

	// Act
	balance, err := repo.GetOrCreateByUserID(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1000.0, balance.CurrentBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWalletRepository_AppendTransaction_Success, append'in kilit altında tek
// database transaction'ında çalıştığını test eder.
func TestWalletRepository_AppendTransaction_Success(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)
	now := time.Now()

	mock.ExpectBegin()

	mock.ExpectQuery("(?s)SELECT user_id, current_balance, total_loaded, total_spent.*FOR UPDATE").
		WithArgs(1).
		WillReturnRows(balanceRow(1, 10000, 10000, 0))

	mock.ExpectQuery("SELECT id, user_id, type, amount").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(1, 1, models.TxTypeLoad, 10000.0, "Saldo yükleme", nil, now, models.StatusCompleted, nil))

	mock.ExpectQuery("INSERT INTO wallet_transactions").
		WithArgs(1, models.TxTypeSpend, 3000.0, "Sipariş ödemesi", "SALE-1", sqlmock.AnyArg(), models.StatusCompleted, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	mock.ExpectExec("UPDATE balances").
		WithArgs(7000.0, 10000.0, 3000.0, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	// Act
	balance, err := repo.AppendTransaction(1, &models.WalletTransaction{
		Type:        models.TxTypeSpend,
		Amount:      3000,
		Description: "Sipariş ödemesi",
		Reference:   "SALE-1",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7000.0, balance.CurrentBalance)
	assert.Equal(t, 3000.0, balance.TotalSpent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWalletRepository_AppendTransaction_InsufficientBalance, yetersiz saldoda
// hiçbir yazma yapılmadan rollback edildiğini test eder.
func TestWalletRepository_AppendTransaction_InsufficientBalance(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	mock.ExpectBegin()

	mock.ExpectQuery("(?s)SELECT user_id, current_balance, total_loaded, total_spent.*FOR UPDATE").
		WithArgs(1).
		WillReturnRows(balanceRow(1, 7000, 10000, 3000))

	mock.ExpectQuery("SELECT id, user_id, type, amount").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(transactionColumns))

	mock.ExpectRollback()

	// Act
	balance, err := repo.AppendTransaction(1, &models.WalletTransaction{
		Type:        models.TxTypeSpend,
		Amount:      8000,
		Description: "Büyük harcama",
	})

	// Assert
	var insufficientErr *models.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 7000.0, insufficientErr.CurrentBalance)
	assert.Nil(t, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWalletRepository_AppendTransaction_SerializationConflict, serialization
// hatasının ErrPersistenceConflict'e çevrildiğini test eder.
func TestWalletRepository_AppendTransaction_SerializationConflict(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	mock.ExpectBegin()

	mock.ExpectQuery("(?s)SELECT user_id, current_balance, total_loaded, total_spent.*FOR UPDATE").
		WithArgs(1).
		WillReturnRows(balanceRow(1, 10000, 10000, 0))

	mock.ExpectQuery("SELECT id, user_id, type, amount").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(transactionColumns))

	mock.ExpectQuery("INSERT INTO wallet_transactions").
		WillReturnError(&pq.Error{Code: "40001"})

	mock.ExpectRollback()

	// Act
	balance, err := repo.AppendTransaction(1, &models.WalletTransaction{
		Type:        models.TxTypeSpend,
		Amount:      3000,
		Description: "Sipariş ödemesi",
	})

	// Assert
	assert.ErrorIs(t, err, models.ErrPersistenceConflict)
	assert.Nil(t, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWalletRepository_AppendTransaction_NotFound, bakiye kaydı yoksa
// ErrBalanceNotFound döndüğünü test eder.
func TestWalletRepository_AppendTransaction_NotFound(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("(?s)SELECT user_id, current_balance, total_loaded, total_spent.*FOR UPDATE").
		WithArgs(9).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	// Act
	balance, err := repo.AppendTransaction(9, &models.WalletTransaction{
		Type:        models.TxTypeLoad,
		Amount:      1000,
		Description: "Yükleme",
	})

	// Assert
	assert.ErrorIs(t, err, models.ErrBalanceNotFound)
	assert.Nil(t, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWalletRepository_GetTransactions, pagination'lı hareket sorgusunu test eder.
func TestWalletRepository_GetTransactions(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, type, amount").
		WithArgs(1, 10, 0).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(2, 1, models.TxTypeSpend, 3000.0, "Sipariş ödemesi", "SALE-1", now, models.StatusCompleted, []byte(`{"payment_method":"balance"}`)).
			AddRow(1, 1, models.TxTypeLoad, 10000.0, "Saldo yükleme", nil, now.Add(-time.Hour), models.StatusCompleted, nil))

	// Act
	transactions, err := repo.GetTransactions(1, 10, 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "balance", transactions[0].Metadata["payment_method"])
	assert.Equal(t, "", transactions[1].Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}
