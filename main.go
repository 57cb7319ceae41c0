package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/election-ledger/cliparse"
	"github.com/danielhkuo/election-ledger/db"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/middleware"
	"github.com/danielhkuo/election-ledger/router"
)

const shutdownTimeout = 10 * time.Second

// newLogger writes text to a terminal and JSON everywhere else
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.LogLevel))

	registry, err := ledger.NewRegistry(ledger.Identity(cfg.AdminIdentity), ledger.SystemClock{})
	if err != nil {
		slog.Error("registry setup failed", "error", err)
		os.Exit(1)
	}

	// Durable journal is optional; without it state lives in memory only
	if cfg.DatabaseURL != "" {
		dbConn, err := openJournal(cfg, registry)
		if err != nil {
			slog.Error("journal setup failed", "error", err, "database_type", cfg.DatabaseType)
			os.Exit(1)
		}
		defer dbConn.Close()
	} else {
		slog.Warn("no DATABASE_URL set, ledger state will not survive a restart")
	}

	// Create router
	mux := router.NewRouter(registry, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "admin", cfg.AdminIdentity)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openJournal connects the database, replays every recorded event into
// registry and then attaches the journal so new mutations are recorded.
func openJournal(cfg cliparse.Config, registry *ledger.Registry) (*sql.DB, error) {
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}
	slog.Info("Database schema ready", "database_type", cfg.DatabaseType)

	journal := db.NewJournal(dbConn)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := db.Restore(ctx, journal, registry)
	if err != nil {
		dbConn.Close()
		return nil, err
	}
	slog.Info("ledger restored", "events", n, "elections", registry.ElectionsCount())

	registry.SetRecorder(journal)
	return dbConn, nil
}
