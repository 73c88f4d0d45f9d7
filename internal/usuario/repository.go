package usuario

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrEmailEmUso = errors.New("e-mail já cadastrado")

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	Salvar(db *gorm.DB, u *Usuario) error
	Deletar(db *gorm.DB, id uint) error
	ListarSetores(db *gorm.DB) ([]string, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var lista []Usuario
	err := db.Order("nome").Find(&lista).Error
	return lista, err
}

// Salvar cria ou atualiza, recusando e-mail repetido.
func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	var n int64
	if err := db.Model(&Usuario{}).Where("email = ? AND id <> ?", u.Email, u.ID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrEmailEmUso
	}
	return db.Save(u).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Usuario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListarSetores devolve os setores distintos cadastrados nos usuários.
func (r *repositoryImpl) ListarSetores(db *gorm.DB) ([]string, error) {
	var setores []string
	err := db.Model(&Usuario{}).
		Where("setor IS NOT NULL AND setor <> ''").
		Distinct().
		Order("setor").
		Pluck("setor", &setores).Error
	return setores, err
}
