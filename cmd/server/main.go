package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/anushka369/minesweeper-assist/internal/config"
	"github.com/anushka369/minesweeper-assist/internal/database"
	"github.com/anushka369/minesweeper-assist/internal/hint"
	"github.com/anushka369/minesweeper-assist/internal/middleware"
	"github.com/anushka369/minesweeper-assist/internal/prob"
	"github.com/anushka369/minesweeper-assist/internal/repository"
	"github.com/anushka369/minesweeper-assist/internal/session"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func main() {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(handler)

	if logFile := config.LogFile(); logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logrus.DebugLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			logger.Error("failed to create engine log file hook", "error", err)
			return
		}
		prob.Logger().AddHook(hook)
		hint.Logger().AddHook(hook)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	savesDb, err := sql.Open("sqlite3", config.SavesPath())
	if err != nil {
		logger.Error("failed to open saves database", "error", err)
		return
	}
	defer savesDb.Close()
	saves, err := session.NewStore(savesDb)
	if err != nil {
		logger.Error("failed to init saves store", "error", err)
		return
	}

	// Highscores need postgres; everything else works without it.
	var repo *repository.Queries
	if url := config.DatabaseURL(); url != "" {
		pool, err := database.ConnectAndMigrate(ctx, url)
		if err != nil {
			logger.Error("failed to connect and migrate db", "error", err)
			return
		}
		defer pool.Close()
		repo = repository.New(pool)
	} else {
		logger.Warn("DATABASE_URL not set, highscores disabled")
	}

	app := &application{
		logger:   logger,
		sessions: session.NewRegistry(prob.Solver{}),
		saves:    saves,
		repo:     repo,
		rnd:      createRand(),
	}

	port := config.Port()
	server := &http.Server{
		Addr:         port,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler: middleware.Wrap(
			app.Router(),
			middleware.Logging(logger),
			middleware.Cors(),
		),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(fmt.Sprintf("assist server listening at http://localhost%s", port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, sCancel := context.WithTimeout(context.Background(), time.Second*15)
		defer sCancel()
		return server.Shutdown(sCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
