package usuario

import (
	"errors"
	"fmt"

	"github.com/gestaofrota/api-combustivel/internal/utils"
	"gorm.io/gorm"
)

// GarantirAdmin cria o primeiro administrador quando a tabela ainda não tem
// nenhum. Devolve true se criou.
func GarantirAdmin(db *gorm.DB, email, senha string) (bool, error) {
	if email == "" || senha == "" {
		return false, nil
	}
	var n int64
	if err := db.Model(&Usuario{}).Where("tipo = ?", TipoAdmin).Count(&n).Error; err != nil {
		return false, fmt.Errorf("contar administradores: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		return false, err
	}
	u := &Usuario{Nome: "Administrador", Email: email, SenhaHash: hash, Tipo: TipoAdmin}
	if err := NewRepository().Salvar(db, u); err != nil {
		if errors.Is(err, ErrEmailEmUso) {
			return false, fmt.Errorf("e-mail %s já pertence a um usuário comum", u.Email)
		}
		return false, err
	}
	return true, nil
}
