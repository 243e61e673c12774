package db

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// TransactionFunc tek bir database transaction'ı içinde çalışır
type TransactionFunc func(tx *sql.Tx) error

// WithTransaction fn'i bir transaction içinde çalıştırır.
// fn hata dönerse veya panic atarsa rollback, aksi halde commit yapılır.
// Bakiye güncellemeleri ve migration'lar bu helper üzerinden geçer.
func WithTransaction(db *sql.DB, fn TransactionFunc) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("transaction başlatılamadı: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("Panic sonrası rollback başarısız")
			}
			log.Error().Interface("panic", r).Msg("Transaction panic nedeniyle geri alındı")
			panic(r) // Panic'i yeniden fırlat
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error().Err(rollbackErr).Msg("Rollback başarısız")
			return fmt.Errorf("transaction hatası ve rollback hatası: %w, rollback: %v", err, rollbackErr)
		}
		log.Warn().Err(err).Msg("Transaction geri alındı")
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Msg("Commit hatası")
		return fmt.Errorf("transaction commit hatası: %w", err)
	}

	return nil
}
