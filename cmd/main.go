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

	"github.com/gestaofrota/api-combustivel/internal/config"
	"github.com/gestaofrota/api-combustivel/internal/notificacao"
	"github.com/gestaofrota/api-combustivel/internal/router"
	"github.com/gestaofrota/api-combustivel/internal/usuario"
	"github.com/gestaofrota/api-combustivel/internal/utils/db"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func configurarLog(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("erro ao carregar configuração")
	}
	configurarLog(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.GetDB(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("erro ao conectar no banco")
	}

	// AutoMigrate para todos os modelos
	if err := conn.AutoMigrate(router.Modelos()...); err != nil {
		log.Fatal().Err(err).Msg("erro no AutoMigrate")
	}

	criado, err := usuario.GarantirAdmin(conn, cfg.AdminEmail, cfg.AdminSenha)
	if err != nil {
		log.Fatal().Err(err).Msg("erro ao criar administrador inicial")
	}
	if criado {
		log.Info().Str("email", cfg.AdminEmail).Msg("administrador inicial criado")
	}

	handler := router.New(conn, cfg, router.Externos{
		Notificador: notificacao.NovoWebhook(cfg.AlertaWebhookURL),
		Remetente:   notificacao.NovoMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("servidor parou")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("erro no shutdown")
	}
	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.Close()
	}
}
