package auth

import "time"

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	FamilyID  string `gorm:"index"`
	Hash      string `gorm:"uniqueIndex"`
	IsAdmin   bool
	Nome      string
	Setor     string
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (rt RefreshToken) solicitante() Solicitante {
	return Solicitante{UsuarioID: rt.UserID, Nome: rt.Nome, Admin: rt.IsAdmin, Setor: rt.Setor}
}
