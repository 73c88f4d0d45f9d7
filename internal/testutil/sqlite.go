// Package testutil abre bancos SQLite em memória para os testes de repositório e handler.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// NovoBanco cria um banco isolado por teste e migra os modelos informados.
func NovoBanco(t testing.TB, modelos ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// uma conexão só: o banco em memória some quando a última fecha
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if len(modelos) > 0 {
		require.NoError(t, db.AutoMigrate(modelos...))
	}
	return db
}
