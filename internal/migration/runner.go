// internal/migration/runner.go
package migration

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Migration tek bir veritabanı migration'ını temsil eder
type Migration struct {
	Version   int64      `json:"version"`
	Name      string     `json:"name"`
	UpSQL     string     `json:"-"`
	DownSQL   string     `json:"-"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
	Checksum  string     `json:"checksum"`
	HasDown   bool       `json:"hasDown"`
}

// Status migration sisteminin genel durumunu gösterir
type Status struct {
	CurrentVersion int64       `json:"currentVersion"`
	Migrations     []Migration `json:"migrations"`
	AppliedCount   int         `json:"appliedCount"`
	PendingCount   int         `json:"pendingCount"`
}

// Config migration ayarlarını tutar
type Config struct {
	MigrationsPath string // Migration dosyalarının yolu
	TableName      string // Takip tablosu adı
	Verbose        bool   // Detaylı log çıktısı
}

// DefaultConfig varsayılan ayarları döner
func DefaultConfig() *Config {
	absPath, err := filepath.Abs("./migrations")
	if err != nil {
		absPath = "./migrations"
	}
	return &Config{
		MigrationsPath: absPath,
		TableName:      "schema_migrations",
		Verbose:        false,
	}
}

// CLIConfig CLI kullanımı için detaylı çıktı açar
func CLIConfig() *Config {
	c := DefaultConfig()
	c.Verbose = true
	return c
}

// Runner migration işlemlerini yöneten ana yapı
type Runner struct {
	db     *sql.DB
	config *Config
}

// NewRunner yeni migration runner oluşturur
func NewRunner(db *sql.DB, config *Config) *Runner {
	if config == nil {
		config = DefaultConfig()
	}

	if err := ensurePathExists(config.MigrationsPath); err != nil {
		log.Warn().
			Err(err).
			Str("path", config.MigrationsPath).
			Msg("Migration path oluşturulamadı, mevcut path kullanılacak")
	}

	return &Runner{db: db, config: config}
}

// Initialize migration tracking tablosunu oluşturur
func (r *Runner) Initialize() error {
	createTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, r.config.TableName)

	if _, err := r.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("migration tracking tablosu oluşturulamadı: %w", err)
	}

	if r.config.Verbose {
		log.Info().
			Str("table", r.config.TableName).
			Str("path", r.config.MigrationsPath).
			Msg("Migration sistemi initialize edildi")
	}

	return nil
}

// ensurePathExists klasör yoksa oluşturur
func ensurePathExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("migration klasörü oluşturulamadı: %w", err)
		}
	}
	return nil
}
