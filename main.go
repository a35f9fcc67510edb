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

	"github.com/DhavalSuthar-24/socialsoccer/config"
	_ "github.com/DhavalSuthar-24/socialsoccer/docs"
	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
	"github.com/DhavalSuthar-24/socialsoccer/internal/auth"
	"github.com/DhavalSuthar-24/socialsoccer/internal/db"
	"github.com/DhavalSuthar-24/socialsoccer/internal/email"
	"github.com/DhavalSuthar-24/socialsoccer/internal/game"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/encryption"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/validator"
	"github.com/DhavalSuthar-24/socialsoccer/routes"
)

const shutdownTimeout = 10 * time.Second

// @title Social Soccer API
// @version 1.0
// @description Find, organise and join weekly pickup soccer games.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLog := logger.NewFromEnv(cfg.App.Env)

	if err := run(cfg, appLog); err != nil {
		appLog.Critical("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLog logger.Logger) error {
	cipher, err := encryption.NewAESCipher(cfg.Encryption.Key)
	if err != nil {
		return err
	}

	if err := db.Up(cfg.MigrateURL(), appLog); err != nil {
		return err
	}
	gormDB, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}

	err = validator.RegisterGinValidations(map[string][]string{
		"weekday":   game.Days,
		"gamelevel": game.Levels,
	})
	if err != nil {
		return err
	}

	transport, closer, err := email.NewTransport(cfg, appLog)
	if err != nil {
		return err
	}
	defer closer.Close()
	mailer := email.NewService(transport, cfg.Mail.From, appLog)

	userRepo := user.NewUserRepository(gormDB)
	addresses := address.NewService(address.NewAddressRepository(gormDB), cipher, appLog)
	users := user.NewService(userRepo, addresses, cipher, appLog)
	services := routes.Services{
		Auth:      auth.NewService(auth.NewAuthRepository(gormDB), userRepo, mailer, cfg, appLog),
		Users:     users,
		Addresses: addresses,
		Games:     game.NewService(game.NewGameRepository(gormDB), users, addresses, appLog),
	}

	router := routes.SetupRoutes(cfg, gormDB, services, appLog)
	defer router.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting server", "port", cfg.App.Port, "env", cfg.App.Env, "mail_transport", cfg.Mail.Transport)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
