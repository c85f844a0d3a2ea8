package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/config"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/infra"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/router"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker handlers are wired here (composition root) so that the pool has
	// full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	pdfGen := infra.NewPDFGenerator(cfg.PDFStoragePath)
	storage := infra.NewStorage(cfg.UploadStoragePath, cfg.PublicBaseURL)
	dispatcher := worker.NewDispatcher(rdb)

	cotizacionRepo := repository.NewCotizacionRepository(db)
	pdfWorker := worker.NewCotizacionPDFWorker(cotizacionRepo, pdfGen, dispatcher)
	emailWorker := worker.NewEmailWorker(mailer)

	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
		worker.QueueCotizacionPDF: pdfWorker.Process,
		worker.QueueEmail:         emailWorker.Process,
	})

	r := router.New(cfg, db, rdb, dispatcher, pdfGen, storage)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Salty & Sweety backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
