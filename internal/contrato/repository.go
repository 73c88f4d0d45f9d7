package contrato

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrContratoNaoEncontrado = errors.New("contrato não encontrado")

// Ordenacao da listagem de contratos ativos.
type Ordenacao string

const (
	// OrdemInicio: data de início crescente.
	OrdemInicio Ordenacao = "inicio"
	// OrdemCriacao: data de criação decrescente.
	OrdemCriacao Ordenacao = "criacao"
)

// ParseOrdenacao aceita "inicio" e "criacao"; qualquer outra coisa vira OrdemInicio.
func ParseOrdenacao(s string) Ordenacao {
	if Ordenacao(s) == OrdemCriacao {
		return OrdemCriacao
	}
	return OrdemInicio
}

func (o Ordenacao) clausula() string {
	if o == OrdemCriacao {
		return "data_criacao DESC, id DESC"
	}
	return "data_inicio_contrato ASC, id ASC"
}

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar grava o contrato e os itens na mesma transação.
func (r *Repository) Criar(ctx context.Context, c *ContratoCombustivel) error {
	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	itens := c.Itens
	c.Itens = nil
	if err := tx.Create(c).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("criar contrato: %w", err)
	}
	for i := range itens {
		itens[i].ID = 0
		itens[i].ContratoID = c.ID
	}
	if len(itens) > 0 {
		if err := tx.Create(&itens).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("criar itens: %w", err)
		}
	}
	c.Itens = itens
	return tx.Commit().Error
}

// Substituir troca o cabeçalho e todos os itens do contrato.
func (r *Repository) Substituir(ctx context.Context, id uint, novo *ContratoCombustivel) error {
	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var atual ContratoCombustivel
	if err := tx.Where("ativo = ?", true).First(&atual, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContratoNaoEncontrado
		}
		return err
	}

	err := tx.Model(&atual).Select(
		"numero_contrato", "ano_contrato", "data_inicio_contrato", "data_fim_contrato",
		"fornecedor", "observacoes", "setor",
	).Updates(map[string]any{
		"numero_contrato":      novo.NumeroContrato,
		"ano_contrato":         novo.AnoContrato,
		"data_inicio_contrato": novo.DataInicioContrato,
		"data_fim_contrato":    novo.DataFimContrato,
		"fornecedor":           novo.Fornecedor,
		"observacoes":          novo.Observacoes,
		"setor":                novo.Setor,
	}).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("atualizar contrato: %w", err)
	}

	if err := tx.Where("contrato_id = ?", id).Delete(&Item{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("remover itens: %w", err)
	}
	itens := make([]Item, len(novo.Itens))
	for i, it := range novo.Itens {
		it.ID = 0
		it.ContratoID = id
		itens[i] = it
	}
	if len(itens) > 0 {
		if err := tx.Create(&itens).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("criar itens: %w", err)
		}
	}
	return tx.Commit().Error
}

// Desativar é a exclusão lógica.
func (r *Repository) Desativar(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&ContratoCombustivel{}).
		Where("id = ? AND ativo = ?", id, true).
		Update("ativo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrContratoNaoEncontrado
	}
	return nil
}

func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*ContratoCombustivel, error) {
	var c ContratoCombustivel
	err := r.DB.WithContext(ctx).
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContratoNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) BuscarAtivoPorID(ctx context.Context, id uint) (*ContratoCombustivel, error) {
	c, err := r.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Ativo {
		return nil, ErrContratoNaoEncontrado
	}
	return c, nil
}

// ListarAtivos devolve os contratos ativos com itens. setor filtra pela
// coluna setor do próprio contrato; vazio lista todos.
func (r *Repository) ListarAtivos(ctx context.Context, setor string, ordem Ordenacao) ([]ContratoCombustivel, error) {
	q := r.DB.WithContext(ctx).
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("ativo = ?", true)
	if setor != "" {
		q = q.Where("setor = ?", setor)
	}
	var lista []ContratoCombustivel
	if err := q.Order(ordem.clausula()).Find(&lista).Error; err != nil {
		return nil, fmt.Errorf("listar contratos ativos: %w", err)
	}
	return lista, nil
}
