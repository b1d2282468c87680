package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/blackjack/go-server/internal/cardsource"
	"github.com/robalobadob/blackjack/go-server/internal/httpserver"
	"github.com/robalobadob/blackjack/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/blackjack.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Remote oracle when configured, in-process decks otherwise.
	var cards cardsource.Source
	if base := os.Getenv("CARD_SOURCE_URL"); base != "" {
		log.Info().Str("base", base).Msg("using remote card source")
		cards = cardsource.NewClient(base, nil)
	} else {
		log.Info().Msg("using local card source")
		cards = cardsource.NewLocal(0)
	}

	srv := httpserver.New(store.NewSQLite(db), cards, db)
	port := getEnv("PORT", "5185")
	log.Info().Str("port", port).Msg("starting blackjack go-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
