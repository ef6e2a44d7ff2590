package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hongminglow/society-be/internal/config"
	"github.com/hongminglow/society-be/internal/events"
	"github.com/hongminglow/society-be/internal/ratelimit"
	"github.com/hongminglow/society-be/internal/redisx"
	"github.com/hongminglow/society-be/internal/server"
	"github.com/hongminglow/society-be/internal/storage"
	"github.com/hongminglow/society-be/internal/storage/memory"
	postgres "github.com/hongminglow/society-be/internal/storage/postgres"
	"github.com/joho/godotenv"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	defer store.Close()

	if err := server.EnsureAdmin(ctx, store, cfg.Admin); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	deps := server.Deps{Store: store}
	if cfg.RedisEnabled() {
		rdb, err := redisx.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("init redis: %v", err)
		}
		defer rdb.Close()
		deps.Publisher = events.NewRedisPublisher(rdb, events.SecretaryStream)
		if cfg.LoginRateLimit > 0 {
			deps.Limiter = ratelimit.NewFixedWindow(rdb, "login", cfg.LoginRateLimit, time.Minute)
		}
	} else {
		log.Println("REDIS_ADDR not set; login throttling and ledger events disabled")
	}

	srv := server.New(cfg, deps)

	go func() {
		log.Printf("society backend listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StorageDriver == config.DriverMemory {
		log.Println("using in-memory storage; data is lost on restart")
		return memory.NewStore(), nil
	}
	return postgres.NewStore(ctx, cfg.DatabaseURL)
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
