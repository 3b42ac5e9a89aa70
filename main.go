package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/config"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/daily"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/httpserver"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/state"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/store"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lists, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("timezone")
	}

	kv, err := store.Open(cfg.StorageDriver, cfg.StoragePath, cfg.CacheSize)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("open storage")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Warn().Err(err).Msg("close storage")
		}
	}()

	outbox := httpserver.NewOutbox()
	game := state.Open(ctx, state.Deps{
		Storage:     kv,
		Selector:    daily.NewSelector(lists.Answers(), loc, nil),
		Dict:        lists,
		Notifier:    outbox,
		Sharer:      outbox,
		PrefersDark: cfg.PrefersDark,
	})
	game.Dispatch(ctx, state.Boot{})

	srv := httpserver.New(game, outbox, httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
		WordCounts:     lists.Stats,
	})
	log.Info().
		Str("addr", cfg.Addr()).
		Str("storage", cfg.StorageDriver).
		Int("puzzle", game.View().PuzzleIndex).
		Msg("starting wordlestar")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Error().Err(err).Msg("server exited")
	}
}
