package usuario

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/testutil"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRemetente struct {
	para, senha string
}

func (f *fakeRemetente) EnviarSenhaTemporaria(_ context.Context, para, _, senha string) error {
	f.para, f.senha = para, senha
	return nil
}

func novoHandler(t *testing.T) (*Handler, *fakeRemetente) {
	db := testutil.NovoBanco(t, &Usuario{}, &auth.RefreshToken{})
	rem := &fakeRemetente{}
	s := &auth.Sessoes{DB: db, Emissor: auth.NovoEmissor("segredo", time.Minute)}
	return NewHandler(db, s, rem), rem
}

func criarUsuario(t *testing.T, db *gorm.DB, email, senha, tipo, setor string) *Usuario {
	hash, err := utils.HashSenha(senha)
	require.NoError(t, err)
	u := &Usuario{Nome: "Teste " + email, Email: email, SenhaHash: hash, Tipo: tipo}
	if setor != "" {
		u.Setor = &setor
	}
	require.NoError(t, NewRepository().Salvar(db, u))
	return u
}

func post(h http.HandlerFunc, corpo string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(corpo)))
	return w
}

func TestLogin(t *testing.T) {
	h, _ := novoHandler(t)
	criarUsuario(t, h.DB, "ana@prefeitura.gov.br", "senha123", TipoDepartamento, "Saúde")

	w := post(h.Login, `{"email":"ANA@prefeitura.gov.br","senha":"senha123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp auth.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	quem, err := h.Sessoes.Emissor.ValidarToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Saúde", quem.Setor)
	assert.False(t, quem.Admin)

	w = post(h.Login, `{"email":"ana@prefeitura.gov.br","senha":"errada"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(h.Login, `{"email":"nao-e-email","senha":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRecuperarSenha(t *testing.T) {
	h, rem := novoHandler(t)
	criarUsuario(t, h.DB, "bia@prefeitura.gov.br", "antiga", TipoAdmin, "")

	w := post(h.RecuperarSenha, `{"email":"bia@prefeitura.gov.br"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, rem.senha, 12)
	assert.Equal(t, "bia@prefeitura.gov.br", rem.para)

	u, err := h.Repository.BuscarPorEmail(h.DB, "bia@prefeitura.gov.br")
	require.NoError(t, err)
	assert.True(t, u.PrecisaRedefinirSenha)
	assert.True(t, utils.CheckSenha(u.SenhaHash, rem.senha))

	// e-mail desconhecido responde igual
	w = post(h.RecuperarSenha, `{"email":"ninguem@prefeitura.gov.br"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestCriarUsuario(t *testing.T) {
	h, _ := novoHandler(t)

	w := post(h.Criar, `{"nome":"Carlos","email":"carlos@x.com","senha":"123456","tipo":"departamento"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "setor")

	w = post(h.Criar, `{"nome":"Carlos","email":"Carlos@X.com","senha":"123456","tipo":"departamento","setor":"Obras"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var u Usuario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "carlos@x.com", u.Email)
	assert.Equal(t, "Obras", u.SetorOuVazio())
	assert.NotContains(t, w.Body.String(), "senha")

	w = post(h.Criar, `{"nome":"Outro","email":"carlos@x.com","senha":"123456","tipo":"admin"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(h.Criar, `{"nome":"Sem senha","email":"s@x.com","tipo":"admin"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAtualizarMantemSenha(t *testing.T) {
	h, _ := novoHandler(t)
	u := criarUsuario(t, h.DB, "d@x.com", "antiga123", TipoDepartamento, "Saúde")

	r := mux.NewRouter()
	r.HandleFunc("/usuarios/{id}", h.Atualizar).Methods("PUT")
	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"nome":"Dora","email":"d@x.com","tipo":"admin","setor":"Saúde"}`)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/usuarios/"+itoa(u.ID), body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	salvo, err := h.Repository.BuscarPorID(h.DB, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dora", salvo.Nome)
	assert.True(t, salvo.IsAdmin())
	assert.Nil(t, salvo.Setor, "admin não guarda setor")
	assert.True(t, utils.CheckSenha(salvo.SenhaHash, "antiga123"))
}

func TestListarSetores(t *testing.T) {
	h, _ := novoHandler(t)
	criarUsuario(t, h.DB, "a@x.com", "123456", TipoDepartamento, "Saúde")
	criarUsuario(t, h.DB, "b@x.com", "123456", TipoDepartamento, "Educação")
	criarUsuario(t, h.DB, "c@x.com", "123456", TipoDepartamento, "Saúde")
	criarUsuario(t, h.DB, "d@x.com", "123456", TipoAdmin, "")

	setores, err := h.Repository.ListarSetores(h.DB)
	require.NoError(t, err)
	assert.Equal(t, []string{"Educação", "Saúde"}, setores)
}

func TestDeletarProprioUsuario(t *testing.T) {
	h, _ := novoHandler(t)
	u := criarUsuario(t, h.DB, "a@x.com", "123456", TipoAdmin, "")

	r := mux.NewRouter()
	r.HandleFunc("/usuarios/{id}", h.Deletar).Methods("DELETE")
	req := httptest.NewRequest(http.MethodDelete, "/usuarios/"+itoa(u.ID), nil)
	req = req.WithContext(auth.ComSolicitante(req.Context(), auth.Solicitante{UsuarioID: u.ID, Admin: true}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/usuarios/999", nil)
	req = req.WithContext(auth.ComSolicitante(req.Context(), auth.Solicitante{UsuarioID: u.ID, Admin: true}))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestGarantirAdmin(t *testing.T) {
	h, _ := novoHandler(t)

	criado, err := GarantirAdmin(h.DB, "", "")
	require.NoError(t, err)
	assert.False(t, criado)

	criado, err = GarantirAdmin(h.DB, "Root@Frota.gov.br", "inicial123")
	require.NoError(t, err)
	assert.True(t, criado)

	u, err := h.Repository.BuscarPorEmail(h.DB, "root@frota.gov.br")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.True(t, utils.CheckSenha(u.SenhaHash, "inicial123"))

	criado, err = GarantirAdmin(h.DB, "outro@frota.gov.br", "inicial123")
	require.NoError(t, err)
	assert.False(t, criado)
}
