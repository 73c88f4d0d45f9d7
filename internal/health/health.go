package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Resposta struct {
	OK bool   `json:"ok"`
	DB string `json:"db"`
}

// Handler pinga o banco com timeout de 3s. Nunca expõe o erro ao cliente.
func Handler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		res := Resposta{OK: true, DB: "connected"}
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			log.Warn().Err(err).Msg("health: banco indisponível")
			res = Resposta{OK: false, DB: "error"}
		}

		status := http.StatusOK
		if !res.OK {
			status = http.StatusServiceUnavailable
		}
		utils.ResponderJSON(w, status, res)
	}
}
