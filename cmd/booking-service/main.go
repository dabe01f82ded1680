package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nurpe/booking-wizard/internal/auth"
	"github.com/nurpe/booking-wizard/internal/config"
	"github.com/nurpe/booking-wizard/internal/db"
	"github.com/nurpe/booking-wizard/internal/excel"
	httphandler "github.com/nurpe/booking-wizard/internal/http"
	"github.com/nurpe/booking-wizard/internal/logger"
	"github.com/nurpe/booking-wizard/internal/pdf"
	"github.com/nurpe/booking-wizard/internal/repository"
	"github.com/nurpe/booking-wizard/internal/service"
	"github.com/nurpe/booking-wizard/internal/validation"
	"github.com/nurpe/booking-wizard/internal/wizard"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	redisClient, err := db.NewRedis(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer redisClient.Close()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}

	bookingRepo := repository.NewBookingRepository(database)
	wizardStore := repository.NewWizardStore(redisClient, cfg.Session.TTL)
	machine := wizard.NewMachine(validation.NewValidator(loc))
	pdfGenerator, err := pdf.NewGenerator(loc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		wizardStore,
		machine,
		excel.NewGenerator(loc),
		pdfGenerator,
		cfg,
	)

	tokens := auth.NewSessionTokens(cfg.Session.Secret, cfg.Session.TTL)
	handler := httphandler.NewHandler(bookingService, cfg.Booking.ValidStatuses, log)
	router, err := httphandler.NewRouter(handler, tokens, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting booking service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("booking service stopped")
}
