package motorista

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoRepo(t *testing.T) *Repository {
	db := testutil.NovoBanco(t, &Motorista{})
	require.NoError(t, db.Exec("CREATE TABLE veiculos (id integer primary key, tipo text)").Error)
	require.NoError(t, db.Exec("CREATE TABLE abastecimentos (id integer primary key, veiculo_id integer, motorista_id integer)").Error)
	return NewRepository(db)
}

func ptr(s string) *string { return &s }

func nomes(lista []Motorista) []string {
	out := []string{}
	for _, m := range lista {
		out = append(out, m.NomeCompleto)
	}
	return out
}

func TestListarDoSetor(t *testing.T) {
	repo := novoRepo(t)
	joao := &Motorista{NomeCompleto: "João", Documento: "1"}
	maria := &Motorista{NomeCompleto: "Maria", Documento: "2", Setor: ptr("Saúde")}
	pedro := &Motorista{NomeCompleto: "Pedro", Documento: "3", Setor: ptr("Obras")}
	for _, m := range []*Motorista{joao, maria, pedro} {
		require.NoError(t, repo.Salvar(m))
	}
	db := repo.DB
	require.NoError(t, db.Exec("INSERT INTO veiculos (id, tipo) VALUES (1, 'Saúde'), (2, 'Obras')").Error)
	// João abasteceu duas vezes um veículo da Saúde; Pedro só da Obras
	require.NoError(t, db.Exec("INSERT INTO abastecimentos (id, veiculo_id, motorista_id) VALUES (1, 1, ?), (2, 1, ?), (3, 2, ?)", joao.ID, joao.ID, pedro.ID).Error)

	lista, err := repo.ListarDoSetor("Saúde")
	require.NoError(t, err)
	assert.Equal(t, []string{"João", "Maria"}, nomes(lista))

	lista, err = repo.ListarTodos("Obras")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pedro"}, nomes(lista))

	ok, err := repo.AtendeSetor(joao, "Saúde")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.AtendeSetor(pedro, "Saúde")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocumentoUnico(t *testing.T) {
	repo := novoRepo(t)
	require.NoError(t, repo.Salvar(&Motorista{NomeCompleto: "A", Documento: "123"}))
	assert.ErrorIs(t, repo.Salvar(&Motorista{NomeCompleto: "B", Documento: " 123 "}), ErrDocumentoEmUso)
}

func TestDeletarMotoristaEmUso(t *testing.T) {
	repo := novoRepo(t)
	m := &Motorista{NomeCompleto: "A", Documento: "123"}
	require.NoError(t, repo.Salvar(m))
	require.NoError(t, repo.DB.Exec("INSERT INTO abastecimentos (id, veiculo_id, motorista_id) VALUES (1, 1, ?)", m.ID).Error)

	assert.ErrorIs(t, repo.Deletar(m.ID), ErrMotoristaEmUso)
}

func TestCriarMotoristaUsaSetorDoSolicitante(t *testing.T) {
	repo := novoRepo(t)
	h := NewHandler(repo)
	r := mux.NewRouter()
	r.HandleFunc("/motoristas", h.Criar).Methods("POST")
	r.HandleFunc("/motoristas/{id:[0-9]+}", h.BuscarPorID).Methods("GET")

	req := httptest.NewRequest(http.MethodPost, "/motoristas", strings.NewReader(`{"nomeCompleto":"Ana","documento":"999","setor":"Obras"}`))
	req = req.WithContext(auth.ComSolicitante(req.Context(), auth.Solicitante{UsuarioID: 2, Setor: "Saúde"}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	lista, err := repo.ListarTodos("Saúde")
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "Ana", lista[0].NomeCompleto)

	// outro departamento não enxerga
	req = httptest.NewRequest(http.MethodGet, "/motoristas/"+strconv.Itoa(int(lista[0].ID)), nil)
	req = req.WithContext(auth.ComSolicitante(req.Context(), auth.Solicitante{UsuarioID: 3, Setor: "Obras"}))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
