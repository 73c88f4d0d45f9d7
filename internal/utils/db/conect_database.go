package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDB abre a conexão com o Postgres usando a configuração carregada.
func GetDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return ConnectDataBase(cfg.DBPort, cfg.DBHost, cfg.DBName, username, password, cfg.DBSSLModeDisable)
}

func ConnectDataBase(port uint, host, dbname, username, password string, sslDisabled bool) (*gorm.DB, error) {
	var sslMode string
	if sslDisabled {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", host, username, password, dbname, port, sslMode)
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar no banco: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Str("host", host).Str("db", dbname).Msg("banco conectado")
	return database, nil
}
