package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"spendlog/internal/config"
	"spendlog/internal/handlers"
	"spendlog/internal/service"
	"spendlog/internal/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := db.DeleteExpiredSessions(context.Background()); err != nil {
		log.WithError(err).Warn("failed to clean up expired sessions")
	}

	h := handlers.New(
		service.NewAuth(db),
		service.NewExpenses(db),
		log,
		cfg.TemplateDir,
		cfg.SecureCookie,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Routes(cfg.StaticDir),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server exited")
	}
}
