// Command server runs the event listing HTTP API.
//
//	@title			Event Listing API
//	@version		1.0
//	@description	Public event listing, registration and an admin dashboard behind a cookie/IP gate.
//	@BasePath		/
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

	"eventlisting/config"
	_ "eventlisting/docs"
	"eventlisting/internal/adapters/auth"
	"eventlisting/internal/adapters/email"
	deliveryhttp "eventlisting/internal/delivery/http"
	"eventlisting/internal/delivery/http/controllers"
	"eventlisting/internal/domain"
	"eventlisting/internal/repository/memory"
	"eventlisting/internal/repository/postgres"
	"eventlisting/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tx, eventRepo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	mailer, err := email.NewMailer(cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("load email templates: %w", err)
	}

	eventService := services.NewEventService(tx, eventRepo, cfg.RequestTimeout)
	attendeeService := services.NewAttendeeService(
		eventRepo,
		auth.NewTicketIssuer(cfg.TicketSecret, cfg.TicketExpiry),
		auth.NewTicketVerifier(cfg.TicketSecret),
		services.NewEmailService(mailer, renderer, logger),
		logger,
		cfg.RequestTimeout,
	)
	adminAuth := services.NewAdminAuthService(auth.NewBcryptChecker(), cfg.AdminPasswordHash, cfg.AdminToken)

	if cfg.AdminToken == "" && len(cfg.AdminAllowedIPs) == 0 {
		logger.Warn("ADMIN_TOKEN and ADMIN_ALLOWED_IPS are empty: every /admin request will be redirected to /login")
	}

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Events: controllers.NewEventController(logger, eventService),
		Public: controllers.NewPublicController(logger, eventService, attendeeService),
		Auth:   controllers.NewAuthController(logger, adminAuth, cfg.IsProduction()),
	})
	handler := deliveryhttp.NewHandler(logger, mux, deliveryhttp.HandlerConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:     cfg.AdminToken,
		AdminIPs:       cfg.AdminAllowedIPs,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}

// openStore returns the transaction runner and event repository for the configured driver,
// plus a cleanup func.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.TxRunner, domain.EventRepository, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return store, store.Events(), func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", "err", err)
		}
	}
	if err := postgres.Migrate(db, logger); err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	return postgres.NewTxRunner(db), postgres.NewStores(db).Events(), closeDB, nil
}
