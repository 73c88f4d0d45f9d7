package motorista

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDocumentoEmUso = errors.New("documento já cadastrado")
	ErrMotoristaEmUso = errors.New("motorista possui abastecimentos registrados")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) documentoEmUso(doc string, ignorarID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&Motorista{}).Where("documento = ? AND id <> ?", doc, ignorarID).Count(&n).Error
	return n > 0, err
}

func (r *Repository) Salvar(m *Motorista) error {
	m.Documento = strings.TrimSpace(m.Documento)
	emUso, err := r.documentoEmUso(m.Documento, m.ID)
	if err != nil {
		return err
	}
	if emUso {
		return ErrDocumentoEmUso
	}
	return r.DB.Save(m).Error
}

func (r *Repository) BuscarPorID(id uint) (*Motorista, error) {
	var m Motorista
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListarTodos filtra pelo setor cadastrado no próprio motorista.
func (r *Repository) ListarTodos(setor string) ([]Motorista, error) {
	q := r.DB.Order("nome_completo")
	if setor != "" {
		q = q.Where("setor = ?", setor)
	}
	var lista []Motorista
	err := q.Find(&lista).Error
	return lista, err
}

// ListarDoSetor devolve os motoristas do setor e os que já abasteceram
// veículos do setor.
func (r *Repository) ListarDoSetor(setor string) ([]Motorista, error) {
	abastecidos := r.DB.Table("abastecimentos").
		Select("abastecimentos.motorista_id").
		Joins("JOIN veiculos ON veiculos.id = abastecimentos.veiculo_id").
		Where("veiculos.tipo = ?", setor)

	var lista []Motorista
	err := r.DB.
		Where("setor = ?", setor).
		Or("id IN (?)", abastecidos).
		Order("nome_completo").
		Find(&lista).Error
	return lista, err
}

// AtendeSetor diz se o motorista é do setor ou já abasteceu veículo dele.
func (r *Repository) AtendeSetor(m *Motorista, setor string) (bool, error) {
	if m.Setor != nil && *m.Setor == setor {
		return true, nil
	}
	var n int64
	err := r.DB.Table("abastecimentos").
		Joins("JOIN veiculos ON veiculos.id = abastecimentos.veiculo_id").
		Where("abastecimentos.motorista_id = ? AND veiculos.tipo = ?", m.ID, setor).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) Deletar(id uint) error {
	var n int64
	if err := r.DB.Table("abastecimentos").Where("motorista_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrMotoristaEmUso
	}
	res := r.DB.Delete(&Motorista{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
