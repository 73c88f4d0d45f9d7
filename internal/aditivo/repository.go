package aditivo

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListarPorContrato(ctx context.Context, contratoID uint) ([]Aditivo, error) {
	var lista []Aditivo
	err := r.DB.WithContext(ctx).
		Where("contrato_id = ?", contratoID).
		Order("data_aditivo DESC, id DESC").
		Find(&lista).Error
	return lista, err
}

func (r *Repository) Buscar(ctx context.Context, contratoID, id uint) (*Aditivo, error) {
	var a Aditivo
	err := r.DB.WithContext(ctx).Where("contrato_id = ?", contratoID).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Salvar(ctx context.Context, a *Aditivo) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *Repository) Deletar(ctx context.Context, a *Aditivo) error {
	return r.DB.WithContext(ctx).Delete(a).Error
}
