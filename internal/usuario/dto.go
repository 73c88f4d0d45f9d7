package usuario

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type RecuperarSenhaRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AlterarSenhaRequest struct {
	SenhaAtual string `json:"senhaAtual" validate:"required"`
	NovaSenha  string `json:"novaSenha" validate:"required,min=6"`
}

// UsuarioRequest serve para criar e editar. Na edição senha vazia mantém a atual.
type UsuarioRequest struct {
	Nome  string `json:"nome" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"omitempty,min=6"`
	Tipo  string `json:"tipo" validate:"required,oneof=admin departamento"`
	Setor string `json:"setor"`
}
