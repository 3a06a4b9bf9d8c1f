package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	authservice "financeserver/auth/service"
	authpostgres "financeserver/auth/storage/postgres"
	"financeserver/internal/config"
	"financeserver/internal/logger"
	migrations "financeserver/internal/migrate"
	"financeserver/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	db, err := sql.Open("pgx", authpostgres.ConnectionString(cfg.Auth.Storage))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(context.Background()); err != nil {
		return err
	}
	if err := migrations.UpServerDB(db); err != nil {
		return err
	}

	authStorage := authpostgres.New(db, cfg.Auth.Storage, log)
	authService := authservice.New(cfg.Auth, authStorage, log)
	server := web.New(cfg.Server, authService, log)
	log.WithField("port", cfg.Server.Port).Info("starting server")
	return server.Serve()
}
