package main

import (
	"EventWebhook/config"
	"EventWebhook/flow"
	"EventWebhook/handler"
	"EventWebhook/repo"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	logger := newLogger(cfg.LogFormat)
	log.Logger = logger

	level, ok := logLevel(cfg.LogLevel)
	if !ok {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, using info")
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := repo.NewFirestoreConnector(ctx, cfg.ServiceAccountKeyPath, cfg.ProjectID, cfg.ParticipantNameField)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing Firebase")
	}
	defer store.Close()

	identity, err := newIdentityResolver(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing identity resolver")
	}

	engine := flow.NewEngine(flow.Mode(cfg.QuestionMode), cfg.StaticQuestions(), flow.WithLifespan(cfg.ContextLifespan))
	webhook := handler.NewWebhookHandler(identity, store, engine, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.NewRouter(webhook, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("mode", cfg.QuestionMode).Str("identity", cfg.IdentityProvider).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped unexpectedly")
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down server")
	}
	webhook.Wait()
	log.Info().Msg("Server stopped")
}

// logLevel parses a zerolog level name, reporting false and info for an
// unknown one.
func logLevel(name string) (zerolog.Level, bool) {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return level, true
}

func newLogger(format string) zerolog.Logger {
	return newLoggerTo(os.Stdout, format)
}

func newLoggerTo(out io.Writer, format string) zerolog.Logger {
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func newIdentityResolver(cfg config.Config) (repo.IdentityResolver, error) {
	switch cfg.IdentityProvider {
	case "telegram":
		return repo.NewTelegramIdentityService(cfg.TelegramBotToken)
	default:
		return repo.NewGraphIdentityService(cfg.AccessToken, cfg.GraphAPIURL, &http.Client{Timeout: 10 * time.Second}), nil
	}
}
