package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zhouzirui/babysitter/backend/internal/config"
	"github.com/zhouzirui/babysitter/backend/internal/handler"
	"github.com/zhouzirui/babysitter/backend/internal/logger"
	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
	"github.com/zhouzirui/babysitter/backend/internal/service/ai"
	"github.com/zhouzirui/babysitter/backend/internal/service/dialog"
	"github.com/zhouzirui/babysitter/backend/internal/service/skill"
	"github.com/zhouzirui/babysitter/backend/internal/service/transcript"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	catalog := joke.NewCatalog(joke.Seed())
	jokes := newJokeSource(ctx, cfg, catalog, zapLogger)

	transcripts, closeTranscripts := newTranscriptStore(ctx, cfg.Redis, zapLogger)
	defer closeTranscripts()

	if cfg.Skill.ApplicationID == "" {
		zapLogger.Warn("SKILL_APP_ID not set, application id check disabled")
	}

	controller := dialog.NewController(jokes, zapLogger)
	executor := skill.NewExecutor(cfg.Skill.ApplicationID, controller, transcripts, zapLogger)

	router := handler.NewRouter(handler.Deps{
		Executor:    executor,
		AppID:       cfg.Skill.ApplicationID,
		Jokes:       catalog,
		Transcripts: transcripts,
		Logger:      zapLogger,
	})

	startServer(ctx, cfg.Server, router, zapLogger)
}

// newJokeSource 配置了模型时使用 LLM 生成笑话，否则回退到内置笑话库。
func newJokeSource(ctx context.Context, cfg *config.Config, catalog *joke.Catalog, zapLogger *zap.Logger) joke.Source {
	if !cfg.AI.JokesEnabled {
		return catalog
	}
	if !cfg.AI.Enabled() {
		zapLogger.Warn("AI_JOKES_ENABLED set but Ark credentials are missing, using joke catalog")
		return catalog
	}

	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		zapLogger.Warn("failed to create chat model, using joke catalog", zap.Error(err))
		return catalog
	}

	writer, err := ai.NewJokeWriter(ctx, chatModel, catalog, zapLogger)
	if err != nil {
		zapLogger.Warn("failed to build joke writer, using joke catalog", zap.Error(err))
		return catalog
	}
	zapLogger.Info("LLM joke writer enabled", zap.String("model", cfg.AI.Model))
	return writer
}

// newTranscriptStore 优先使用 Redis，连接失败时回退到内存存储。
func newTranscriptStore(ctx context.Context, cfg config.RedisConfig, zapLogger *zap.Logger) (transcript.Store, func()) {
	if !cfg.Enabled() {
		zapLogger.Info("transcripts kept in memory")
		return transcript.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		zapLogger.Warn("redis unavailable, transcripts kept in memory", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = client.Close()
		return transcript.NewMemoryStore(), func() {}
	}

	zapLogger.Info("transcripts stored in redis", zap.String("addr", cfg.Addr), zap.Duration("ttl", cfg.TranscriptTTL))
	return transcript.NewRedisStore(client, cfg.TranscriptTTL), func() {
		if err := client.Close(); err != nil {
			zapLogger.Warn("close redis client", zap.Error(err))
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, zapLogger *zap.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	zapLogger.Info("babysitter skill listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}
}

// runServer 启动服务并在 ctx 取消后优雅关闭。
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
