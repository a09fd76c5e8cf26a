package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/merrymix/auth"
	"github.com/danielhkuo/merrymix/backend"
	"github.com/danielhkuo/merrymix/cliparse"
	"github.com/danielhkuo/merrymix/db"
	"github.com/danielhkuo/merrymix/router"
	"github.com/danielhkuo/merrymix/session"
	"github.com/danielhkuo/merrymix/view"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("storage setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Session storage ready", "type", cfg.DatabaseType)

	client := backend.NewClient(cfg.BackendURL, nil, cfg.Timeout)
	gate := auth.NewGate(cfg.LoginPassword, client, cfg.Timeout)
	views := view.NewRegistry(store, client, client)

	server := &http.Server{
		Handler:           router.NewRouter(views, gate, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		// logins accepted before shutdown still get recorded
		gate.Close()
		return err
	})

	g.Go(func() error {
		views.Run(ctx, sweepInterval, cfg.ViewIdleTTL)
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// openStore returns the session store selected by cfg and a func releasing it.
func openStore(cfg cliparse.Config) (session.Store, func(), error) {
	switch cfg.DatabaseType {
	case cliparse.StorageMemory:
		return session.NewMemoryStore(), func() {}, nil

	case cliparse.StorageRedis:
		opts, err := redisOptions(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		rdb := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		return session.NewRedisStore(rdb), func() { rdb.Close() }, nil

	default:
		conn, err := db.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return session.NewSQLStore(conn), func() { conn.Close() }, nil
	}
}

// redisOptions accepts either a redis:// URL or a bare host:port.
func redisOptions(raw string) (*redis.Options, error) {
	if strings.Contains(raw, "://") {
		return redis.ParseURL(raw)
	}
	return &redis.Options{Addr: raw}, nil
}
