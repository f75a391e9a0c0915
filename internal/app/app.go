package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/syncroom/server/internal/controller"
	"github.com/syncroom/server/internal/repository/connection/inmemory"
	roomRedis "github.com/syncroom/server/internal/repository/room/redis"
	wsSender "github.com/syncroom/server/internal/repository/sender/ws"
	"github.com/syncroom/server/internal/service/room"
	"github.com/syncroom/server/pkg/ctxlogger"
	"github.com/syncroom/server/pkg/mediadata"
	"github.com/syncroom/server/pkg/redisclient"
)

type AppConfig struct {
	Host             string `json:"host"`
	Port             int    `json:"port"`
	LogLevel         string `json:"log_level"`
	QueueLimit       int    `json:"queue_limit"`
	ChatMessageLimit int    `json:"chat_message_limit"`
	SyncIntervalSec  int    `json:"sync_interval_sec"`
	FallbackDurSec   int    `json:"fallback_duration_sec"`
	RedisPort        int    `json:"redis_port"`
	RedisHost        string `json:"redis_host"`
	RedisPassword    string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.QueueLimit < 1 {
		return fmt.Errorf("queue limit must be greater than 0")
	}
	if cfg.SyncIntervalSec < 1 {
		return fmt.Errorf("sync interval must be greater than 0")
	}
	if cfg.FallbackDurSec < 1 {
		return fmt.Errorf("fallback duration must be greater than 0")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Port:     cfg.RedisPort,
		Host:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	roomRepo := roomRedis.NewRepo(rc, 24*14*time.Hour, logger)
	connRepo := inmemory.NewRepo(logger)
	sender := wsSender.NewRepo()
	metadata := mediadata.NewResolver()
	roomService := room.NewService(roomRepo, connRepo, sender, metadata, clock.New(), &room.Config{
		QueueLimit:       cfg.QueueLimit,
		ChatMessageLimit: cfg.ChatMessageLimit,
		SyncInterval:     time.Duration(cfg.SyncIntervalSec) * time.Second,
		FallbackDuration: time.Duration(cfg.FallbackDurSec) * time.Second,
	}, logger)
	defer roomService.Shutdown()

	controller := controller.NewController(roomService, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
