package motorista

type Motorista struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	NomeCompleto string  `gorm:"size:150;not null" json:"nomeCompleto"`
	Documento    string  `gorm:"size:30;uniqueIndex;not null" json:"documento"`
	Observacoes  string  `gorm:"type:text" json:"observacoes"`
	Setor        *string `gorm:"size:100;index" json:"setor"`
}

func (Motorista) TableName() string { return "motoristas" }

type MotoristaRequest struct {
	NomeCompleto string `json:"nomeCompleto" validate:"required,max=150"`
	Documento    string `json:"documento" validate:"required,max=30"`
	Observacoes  string `json:"observacoes"`
	Setor        string `json:"setor" validate:"max=100"`
}
