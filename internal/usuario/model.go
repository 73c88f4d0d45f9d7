package usuario

import "time"

const (
	TipoAdmin        = "admin"
	TipoDepartamento = "departamento"
)

type Usuario struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Nome                  string    `gorm:"size:100;not null" json:"nome"`
	Email                 string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	SenhaHash             string    `gorm:"size:200;not null" json:"-"`
	Tipo                  string    `gorm:"size:20;not null" json:"tipo"`
	Setor                 *string   `gorm:"size:100" json:"setor"`
	PrecisaRedefinirSenha bool      `json:"precisaRedefinirSenha"`
	DataCriacao           time.Time `gorm:"autoCreateTime" json:"dataCriacao"`
}

func (Usuario) TableName() string { return "usuarios" }

func (u Usuario) IsAdmin() bool { return u.Tipo == TipoAdmin }

func (u Usuario) SetorOuVazio() string {
	if u.Setor == nil {
		return ""
	}
	return *u.Setor
}
