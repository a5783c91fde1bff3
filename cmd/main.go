package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"campaign-insights/internal/adapter/bedrock"
	"campaign-insights/internal/adapter/chatcompletion"
	httpadapter "campaign-insights/internal/adapter/http"
	"campaign-insights/internal/adapter/mailer"
	"campaign-insights/internal/adapter/rediscache"
	"campaign-insights/internal/adapter/s3store"
	"campaign-insights/internal/adapter/usecase"
	"campaign-insights/internal/config"
	"campaign-insights/internal/config/configs"
	"campaign-insights/internal/core/insight"
	"campaign-insights/internal/core/ledger"
	"campaign-insights/internal/core/port"
	"campaign-insights/internal/core/segment"
)

// main loads configuration, wires the optional completion backend, cache
// and object store around the analytics workspace, then serves the HTTP
// API until SIGINT or SIGTERM.
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", slog.Any("error", err))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := cfg.Log.New(os.Stdout).With(slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rules := insight.DefaultRules()
	if cfg.Insight.RulesFile != "" {
		if rules, err = insight.LoadRules(cfg.Insight.RulesFile); err != nil {
			logger.Error("failed to load intent rules", slog.Any("error", err))
			os.Exit(1)
		}
	}
	templates, err := insight.NewTemplateAnswerer()
	if err != nil {
		logger.Error("failed to parse report templates", slog.Any("error", err))
		os.Exit(1)
	}

	routerOpts := []insight.RouterOption{insight.WithLogger(logger)}
	if cfg.Completion.Enabled() {
		completer, err := newCompleter(ctx, cfg.Completion)
		if err != nil {
			logger.Error("completion backend error", slog.Any("error", err))
			os.Exit(1)
		}
		if cfg.Redis.Addr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer rdb.Close()
			pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				logger.Warn("redis unreachable, completion cache disabled", slog.Any("error", err))
			} else {
				completer = rediscache.New(completer, rdb,
					rediscache.WithTTL(cfg.Redis.TTL),
					rediscache.WithLogger(logger),
				)
			}
			pingCancel()
		}
		routerOpts = append(routerOpts, insight.WithAnswerer(insight.NewCompletionAnswerer(completer,
			insight.WithTimeout(cfg.Completion.Timeout),
			insight.WithMaxTokens(cfg.Completion.MaxTokens),
			insight.WithTemperature(cfg.Completion.Temperature),
		)))
		logger.Info("completion backend enabled", slog.String("backend", completer.Name()))
	}

	segmentOpts := segment.DefaultOptions()
	segmentOpts.K = cfg.Segment.Clusters
	segmentOpts.Seed = cfg.Segment.Seed

	wsOpts := []usecase.Option{
		usecase.WithLogger(logger),
		usecase.WithSegmentOptions(segmentOpts),
	}
	if cfg.S3.Enabled {
		store, err := s3store.NewFromConfig(ctx, cfg.S3.Region, cfg.S3.Endpoint)
		if err != nil {
			logger.Error("object store error", slog.Any("error", err))
			os.Exit(1)
		}
		wsOpts = append(wsOpts, usecase.WithObjectStore(store))
	}

	var sender port.Mailer = mailer.NewSimulated(logger)
	if cfg.Mailer.Provider == configs.MailerSES {
		if sender, err = mailer.NewSESFromRegion(ctx, cfg.Mailer.Region, cfg.Mailer.From, logger); err != nil {
			logger.Error("mailer error", slog.Any("error", err))
			os.Exit(1)
		}
	}

	ws := usecase.NewWorkspace(
		insight.NewRouter(rules, templates, routerOpts...),
		sender,
		ledger.New(ledger.NewSimulatedEngagement(cfg.Ledger.Seed)),
		wsOpts...,
	)

	handler := httpadapter.NewHandler(ws, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}

func newCompleter(ctx context.Context, cfg configs.Completion) (port.TextCompleter, error) {
	switch cfg.Provider {
	case configs.ProviderGroq:
		return chatcompletion.New(cfg.GroqAPIKey,
			chatcompletion.WithBaseURL(cfg.GroqEndpoint),
			chatcompletion.WithModel(cfg.GroqModel),
		), nil
	case configs.ProviderBedrock:
		return bedrock.NewFromRegion(ctx, cfg.BedrockRegion, cfg.BedrockModel)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
