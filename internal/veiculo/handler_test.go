package veiculo

import (
	"encoding/json"
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

var (
	admin = auth.Solicitante{UsuarioID: 1, Admin: true}
	saude = auth.Solicitante{UsuarioID: 2, Setor: "Saúde"}
)

func novoRouter(t *testing.T) (*mux.Router, *Repository) {
	db := testutil.NovoBanco(t, &Veiculo{})
	require.NoError(t, db.Exec("CREATE TABLE abastecimentos (id integer primary key, veiculo_id integer)").Error)
	repo := NewRepository(db)
	h := NewHandler(repo)

	r := mux.NewRouter()
	r.HandleFunc("/veiculos", h.Listar).Methods("GET")
	r.HandleFunc("/veiculos", h.Criar).Methods("POST")
	r.HandleFunc("/veiculos/{id:[0-9]+}", h.BuscarPorID).Methods("GET")
	r.HandleFunc("/veiculos/{id:[0-9]+}", h.Atualizar).Methods("PUT")
	r.HandleFunc("/veiculos/{id:[0-9]+}", h.Deletar).Methods("DELETE")
	return r, repo
}

func chamar(r http.Handler, quem auth.Solicitante, metodo, path, corpo string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(metodo, path, strings.NewReader(corpo))
	req = req.WithContext(auth.ComSolicitante(req.Context(), quem))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCriarVeiculoForcaSetorDoDepartamento(t *testing.T) {
	r, repo := novoRouter(t)

	w := chamar(r, saude, "POST", "/veiculos", `{"placa":"abc1d23","tipo":"Obras","combustivel":"Diesel"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var v Veiculo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "ABC1D23", v.Placa)
	assert.Equal(t, "Saúde", v.Tipo)

	w = chamar(r, admin, "POST", "/veiculos", `{"placa":"XYZ9A88","tipo":"Obras","combustivel":"Flex"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	n, err := repo.Contar("")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCriarVeiculoValidacao(t *testing.T) {
	r, _ := novoRouter(t)

	w := chamar(r, admin, "POST", "/veiculos", `{"placa":"ABC1D23","tipo":"Obras","combustivel":"Querosene"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = chamar(r, admin, "POST", "/veiculos", `{"placa":"ABC1D23","combustivel":"Diesel"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = chamar(r, admin, "POST", "/veiculos", `{"placa":"ABC1D23","tipo":"Obras","combustivel":"Diesel"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = chamar(r, admin, "POST", "/veiculos", `{"placa":"abc1d23","tipo":"Obras","combustivel":"Diesel"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListarRespeitaSetor(t *testing.T) {
	r, repo := novoRouter(t)
	require.NoError(t, repo.Criar(&Veiculo{Placa: "BBB2222", Tipo: "Saúde", Combustivel: "Diesel"}))
	require.NoError(t, repo.Criar(&Veiculo{Placa: "AAA1111", Tipo: "Obras", Combustivel: "Flex"}))
	require.NoError(t, repo.Criar(&Veiculo{Placa: "CCC3333", Tipo: "Saúde", Combustivel: "Gasolina"}))

	placas := func(w *httptest.ResponseRecorder) []string {
		var lista []Veiculo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
		out := []string{}
		for _, v := range lista {
			out = append(out, v.Placa)
		}
		return out
	}

	assert.Equal(t, []string{"AAA1111", "BBB2222", "CCC3333"}, placas(chamar(r, admin, "GET", "/veiculos", "")))
	assert.Equal(t, []string{"AAA1111"}, placas(chamar(r, admin, "GET", "/veiculos?setor=Obras", "")))
	// departamento ignora o filtro e vê só o próprio setor
	assert.Equal(t, []string{"BBB2222", "CCC3333"}, placas(chamar(r, saude, "GET", "/veiculos?setor=Obras", "")))
}

func TestVeiculoDeOutroSetorNaoAparece(t *testing.T) {
	r, repo := novoRouter(t)
	v := &Veiculo{Placa: "AAA1111", Tipo: "Obras", Combustivel: "Flex"}
	require.NoError(t, repo.Criar(v))
	path := "/veiculos/" + strconv.Itoa(int(v.ID))

	assert.Equal(t, http.StatusNotFound, chamar(r, saude, "GET", path, "").Code)
	assert.Equal(t, http.StatusNotFound, chamar(r, saude, "DELETE", path, "").Code)
	assert.Equal(t, http.StatusOK, chamar(r, admin, "GET", path, "").Code)
}

func TestDeletarVeiculoEmUso(t *testing.T) {
	r, repo := novoRouter(t)
	v := &Veiculo{Placa: "AAA1111", Tipo: "Obras", Combustivel: "Flex"}
	require.NoError(t, repo.Criar(v))
	require.NoError(t, repo.DB.Exec("INSERT INTO abastecimentos (id, veiculo_id) VALUES (1, ?)", v.ID).Error)
	path := "/veiculos/" + strconv.Itoa(int(v.ID))

	assert.Equal(t, http.StatusConflict, chamar(r, admin, "DELETE", path, "").Code)

	require.NoError(t, repo.DB.Exec("DELETE FROM abastecimentos").Error)
	assert.Equal(t, http.StatusNoContent, chamar(r, admin, "DELETE", path, "").Code)
	assert.Equal(t, http.StatusNotFound, chamar(r, admin, "GET", path, "").Code)
}
