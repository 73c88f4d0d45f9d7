package abastecimento

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) comVeiculo(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&Abastecimento{}).
		Joins("JOIN veiculos ON veiculos.id = abastecimentos.veiculo_id")
}

func (r *Repository) Criar(ctx context.Context, a *Abastecimento) error {
	return r.DB.WithContext(ctx).Omit("Veiculo", "Motorista").Create(a).Error
}

func (r *Repository) Atualizar(ctx context.Context, a *Abastecimento) error {
	return r.DB.WithContext(ctx).Omit("Veiculo", "Motorista").Save(a).Error
}

func (r *Repository) Deletar(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&Abastecimento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*Abastecimento, error) {
	var a Abastecimento
	err := r.DB.WithContext(ctx).
		Preload("Veiculo").
		Preload("Motorista").
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Listar aplica o filtro e devolve do mais recente para o mais antigo,
// com veículo e motorista carregados.
func (r *Repository) Listar(ctx context.Context, f Filtro) ([]Abastecimento, error) {
	var lista []Abastecimento
	err := f.aplicar(r.comVeiculo(ctx)).
		Preload("Veiculo").
		Preload("Motorista").
		Order("abastecimentos.data DESC, abastecimentos.id DESC").
		Find(&lista).Error
	return lista, err
}

// PorCombustivel devolve os abastecimentos de veículos com o combustível
// informado dentro de [inicio, fim]. Usa o combustível atual do veículo.
func (r *Repository) PorCombustivel(ctx context.Context, tipo string, inicio, fim time.Time, setor string) ([]Abastecimento, error) {
	q := r.comVeiculo(ctx).
		Where("veiculos.combustivel = ?", tipo).
		Where("abastecimentos.data BETWEEN ? AND ?", inicio, fim)
	if setor != "" {
		q = q.Where("veiculos.tipo = ?", setor)
	}
	var lista []Abastecimento
	err := q.Order("abastecimentos.id").Find(&lista).Error
	return lista, err
}

// PorContrato devolve os abastecimentos vinculados ao contrato dentro de [inicio, fim].
func (r *Repository) PorContrato(ctx context.Context, contratoID uint, inicio, fim time.Time, setor string) ([]Abastecimento, error) {
	q := r.comVeiculo(ctx).
		Where("abastecimentos.contrato_id = ?", contratoID).
		Where("abastecimentos.data BETWEEN ? AND ?", inicio, fim)
	if setor != "" {
		q = q.Where("veiculos.tipo = ?", setor)
	}
	var lista []Abastecimento
	err := q.Order("abastecimentos.id").Find(&lista).Error
	return lista, err
}
