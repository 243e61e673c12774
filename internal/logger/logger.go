package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init global zerolog logger'ını ortama göre yapılandırır.
// Development'ta renkli console çıktısı, diğer ortamlarda
// service alanı eklenmiş JSON çıktısı kullanılır.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "zennel-wallet-api").
		Logger()
}
