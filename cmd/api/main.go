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

	"github.com/go-verification-nosql/internal/application/user"
	"github.com/go-verification-nosql/internal/application/verification"
	"github.com/go-verification-nosql/internal/config"
	"github.com/go-verification-nosql/internal/domain"
	"github.com/go-verification-nosql/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-verification-nosql/internal/infrastructure/jwt"
	"github.com/go-verification-nosql/internal/infrastructure/sns"
	"github.com/go-verification-nosql/internal/pkg/hasher"
	"github.com/go-verification-nosql/internal/pkg/logger"
	transporthttp "github.com/go-verification-nosql/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.Debug, cfg.IsProduction())
	slog.SetDefault(log)
	if envErr != nil {
		log.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		log.Error("dynamodb client", "err", err)
		os.Exit(1)
	}
	if cfg.DynamoBootstrap {
		dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, log)
	}

	verificationSvc := verification.NewService(verification.ServiceDeps{
		Repo:    dynamo.NewVerificationRequestRepo(dynamoClient),
		Hasher:  hasher.NewBcrypt(cfg.BcryptCost),
		Table:   cfg.DynamoTables.VerificationRequests,
		BaseURL: cfg.BaseURL,
		Logger:  log.With("component", "verification"),
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo: dynamo.NewUserRepo(dynamoClient),
		Table:    cfg.DynamoTables.Users,
		Logger:   log.With("component", "user"),
	})

	deps := &transporthttp.Deps{
		VerificationSvc: verificationSvc,
		UserSvc:         userSvc,
		Deliver:         newDeliver(ctx, cfg, log),
	}

	// Service auth is optional in development; without a key every route is open.
	if cfg.JWTPublicKeyPath != "" {
		v, err := jwtinfra.LoadVerifier(cfg.JWTPublicKeyPath)
		if err != nil {
			log.Error("jwt verifier", "err", err)
			os.Exit(1)
		}
		deps.Verifier = v
	} else {
		log.Warn("JWT_PUBLIC_KEY_PATH not set, service auth disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(ctx, cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newDeliver picks the delivery callback: the SNS topic when configured,
// otherwise a log line outside production. Production without a topic
// gets nil, so create requests fail with a configuration error.
func newDeliver(ctx context.Context, cfg *config.Config, log *slog.Logger) verification.DeliverFunc {
	if cfg.SNSVerificationTopicARN != "" {
		client, err := sns.NewClient(ctx, cfg)
		if err == nil {
			return sns.NewPublisher(client, cfg.SNSVerificationTopicARN).SendVerificationRequest
		}
		log.Warn("SNS publisher not available", "err", err)
	}
	if cfg.IsProduction() {
		return nil
	}
	return func(_ context.Context, p domain.VerificationParams) error {
		log.Info("verification link", "email", p.Identifier, "url", p.URL)
		return nil
	}
}
