package veiculo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrPlacaEmUso   = errors.New("placa já cadastrada")
	ErrVeiculoEmUso = errors.New("veículo possui abastecimentos registrados")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func normalizarPlaca(p string) string {
	return strings.ToUpper(strings.TrimSpace(p))
}

func (r *Repository) placaEmUso(placa string, ignorarID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&Veiculo{}).Where("placa = ? AND id <> ?", placa, ignorarID).Count(&n).Error
	return n > 0, err
}

func (r *Repository) Criar(v *Veiculo) error {
	v.Placa = normalizarPlaca(v.Placa)
	emUso, err := r.placaEmUso(v.Placa, 0)
	if err != nil {
		return err
	}
	if emUso {
		return ErrPlacaEmUso
	}
	return r.DB.Create(v).Error
}

func (r *Repository) Atualizar(v *Veiculo) error {
	v.Placa = normalizarPlaca(v.Placa)
	emUso, err := r.placaEmUso(v.Placa, v.ID)
	if err != nil {
		return err
	}
	if emUso {
		return ErrPlacaEmUso
	}
	return r.DB.Save(v).Error
}

func (r *Repository) BuscarPorID(id uint) (*Veiculo, error) {
	var v Veiculo
	if err := r.DB.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Listar devolve os veículos ordenados pela placa; setor vazio lista todos.
func (r *Repository) Listar(setor string) ([]Veiculo, error) {
	q := r.DB.Order("placa")
	if setor != "" {
		q = q.Where("tipo = ?", setor)
	}
	var lista []Veiculo
	err := q.Find(&lista).Error
	return lista, err
}

func (r *Repository) Contar(setor string) (int64, error) {
	q := r.DB.Model(&Veiculo{})
	if setor != "" {
		q = q.Where("tipo = ?", setor)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// Deletar recusa a exclusão quando há abastecimentos apontando para o veículo.
func (r *Repository) Deletar(id uint) error {
	var n int64
	if err := r.DB.Table("abastecimentos").Where("veiculo_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrVeiculoEmUso
	}
	res := r.DB.Delete(&Veiculo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
