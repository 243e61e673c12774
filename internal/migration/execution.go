// internal/migration/execution.go
package migration

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/db"
)

// RunUp bekleyen tüm migration'ları sırayla uygular
func (r *Runner) RunUp() error {
	migrations, err := r.LoadMigrationsFromDisk()
	if err != nil {
		return err
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return err
	}

	pending := 0
	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			continue
		}
		pending++

		start := time.Now()
		err := db.WithTransaction(r.db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.UpSQL); err != nil {
				return fmt.Errorf("migration SQL çalıştırılamadı: %w", err)
			}
			recordSQL := fmt.Sprintf(
				"INSERT INTO %s (version, name, checksum) VALUES ($1, $2, $3)",
				r.config.TableName,
			)
			if _, err := tx.Exec(recordSQL, m.Version, m.Name, m.Checksum); err != nil {
				return fmt.Errorf("migration kaydı eklenemedi: %w", err)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("migration %06d (%s) başarısız: %w", m.Version, m.Name, err)
		}

		log.Info().
			Int64("version", m.Version).
			Str("name", m.Name).
			Dur("duration", time.Since(start)).
			Msg("✅ Migration uygulandı")
	}

	if pending == 0 && r.config.Verbose {
		log.Info().Msg("Uygulanacak yeni migration yok")
	}

	return nil
}

// RunDown son uygulanan migration'ı geri alır
func (r *Runner) RunDown() error {
	migrations, err := r.LoadMigrationsFromDisk()
	if err != nil {
		return err
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return err
	}

	// En son uygulananı bul (version sıralı, sondan başa)
	var target *Migration
	for i := len(migrations) - 1; i >= 0; i-- {
		if _, ok := applied[migrations[i].Version]; ok {
			target = &migrations[i]
			break
		}
	}
	if target == nil {
		log.Warn().Msg("Geri alınacak migration yok")
		return nil
	}
	if !target.HasDown {
		return fmt.Errorf("migration %06d için DOWN dosyası yok", target.Version)
	}

	err = db.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(target.DownSQL); err != nil {
			return fmt.Errorf("DOWN SQL çalıştırılamadı: %w", err)
		}
		deleteSQL := fmt.Sprintf("DELETE FROM %s WHERE version = $1", r.config.TableName)
		if _, err := tx.Exec(deleteSQL, target.Version); err != nil {
			return fmt.Errorf("migration kaydı silinemedi: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rollback %06d (%s) başarısız: %w", target.Version, target.Name, err)
	}

	log.Info().
		Int64("version", target.Version).
		Str("name", target.Name).
		Msg("↩️ Migration geri alındı")

	return nil
}

// GetStatus disk ve veritabanındaki migration durumunu birleştirir
func (r *Runner) GetStatus() (*Status, error) {
	migrations, err := r.LoadMigrationsFromDisk()
	if err != nil {
		return nil, err
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return nil, err
	}

	status := &Status{Migrations: make([]Migration, 0, len(migrations))}
	for _, m := range migrations {
		if at, ok := applied[m.Version]; ok {
			m.Applied = true
			m.AppliedAt = &at
			status.AppliedCount++
			if m.Version > status.CurrentVersion {
				status.CurrentVersion = m.Version
			}
		} else {
			status.PendingCount++
		}
		status.Migrations = append(status.Migrations, m)
	}

	return status, nil
}

// appliedVersions takip tablosundaki uygulanmış versiyonları okur
func (r *Runner) appliedVersions() (map[int64]time.Time, error) {
	querySQL := fmt.Sprintf("SELECT version, applied_at FROM %s", r.config.TableName)
	rows, err := r.db.Query(querySQL)
	if err != nil {
		return nil, fmt.Errorf("uygulanmış migration'lar okunamadı: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]time.Time)
	for rows.Next() {
		var version int64
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("migration satırı okunamadı: %w", err)
		}
		applied[version] = appliedAt
	}

	return applied, rows.Err()
}
