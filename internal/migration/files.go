// internal/migration/files.go
package migration

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Dosya adı formatı: 000001_create_users_table.up.sql
var migrationFilePattern = regexp.MustCompile(`^(\d{6})_([a-zA-Z0-9_]+)\.(up|down)\.sql$`)

// LoadMigrationsFromDisk migrations klasöründeki tüm migration dosyalarını okur
func (r *Runner) LoadMigrationsFromDisk() ([]Migration, error) {
	upFiles, err := filepath.Glob(filepath.Join(r.config.MigrationsPath, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("migration dosyaları bulunamadı: %w", err)
	}

	if len(upFiles) == 0 {
		log.Warn().
			Str("path", r.config.MigrationsPath).
			Msg("Hiç migration dosyası bulunamadı")
		return []Migration{}, nil
	}

	var migrations []Migration
	for _, upFile := range upFiles {
		migration, err := r.parseMigrationFile(upFile)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", upFile).
				Msg("Migration dosyası parse edilemedi, atlanıyor")
			continue
		}
		migrations = append(migrations, migration)
	}

	// Version'a göre sırala (eskiden yeniye)
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	if r.config.Verbose {
		log.Info().
			Int("count", len(migrations)).
			Msg("Migration dosyaları başarıyla okundu")
	}

	return migrations, nil
}

// parseMigrationFile tek bir migration dosyasını parse eder
func (r *Runner) parseMigrationFile(upFilePath string) (Migration, error) {
	filename := filepath.Base(upFilePath)
	matches := migrationFilePattern.FindStringSubmatch(filename)
	if len(matches) != 4 {
		return Migration{}, fmt.Errorf("geçersiz migration dosya formatı: %s", filename)
	}

	version, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return Migration{}, fmt.Errorf("geçersiz version formatı %s: %w", matches[1], err)
	}

	name := strings.ReplaceAll(matches[2], "_", " ")

	upContent, err := os.ReadFile(upFilePath)
	if err != nil {
		return Migration{}, fmt.Errorf("UP dosyası okunamadı %s: %w", upFilePath, err)
	}

	// DOWN dosyası opsiyonel
	downFilePath := strings.Replace(upFilePath, ".up.sql", ".down.sql", 1)
	var downContent []byte
	hasDown := false
	if b, err := os.ReadFile(downFilePath); err == nil {
		downContent = b
		hasDown = true
	}

	sum := sha256.Sum256(upContent)

	return Migration{
		Version:  version,
		Name:     name,
		UpSQL:    string(upContent),
		DownSQL:  string(downContent),
		Checksum: fmt.Sprintf("%x", sum),
		HasDown:  hasDown,
	}, nil
}
