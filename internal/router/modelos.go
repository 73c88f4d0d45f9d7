package router

import (
	"github.com/gestaofrota/api-combustivel/internal/abastecimento"
	"github.com/gestaofrota/api-combustivel/internal/aditivo"
	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/gestaofrota/api-combustivel/internal/motorista"
	"github.com/gestaofrota/api-combustivel/internal/usuario"
	"github.com/gestaofrota/api-combustivel/internal/veiculo"
)

// Modelos lista as tabelas migradas na subida, na ordem de dependência.
func Modelos() []any {
	return []any{
		&usuario.Usuario{},
		&auth.RefreshToken{},
		&veiculo.Veiculo{},
		&motorista.Motorista{},
		&contrato.ContratoCombustivel{},
		&contrato.Item{},
		&aditivo.Aditivo{},
		&abastecimento.Abastecimento{},
	}
}
