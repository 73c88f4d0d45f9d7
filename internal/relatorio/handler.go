package relatorio

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/abastecimento"
	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/consumo"
	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type ListadorAbastecimentos interface {
	Listar(ctx context.Context, f abastecimento.Filtro) ([]abastecimento.Abastecimento, error)
}

type ContadorVeiculos interface {
	Contar(setor string) (int64, error)
}

type ConsumoContratos interface {
	Relatorio(ctx context.Context, quem auth.Solicitante, filtroSetor string, ordem contrato.Ordenacao) (*consumo.Resultado, error)
}

type Handler struct {
	Eventos ListadorAbastecimentos
	Frota   ContadorVeiculos
	Consumo ConsumoContratos
	Agora   func() time.Time
}

func NewHandler(a ListadorAbastecimentos, v ContadorVeiculos, c ConsumoContratos) *Handler {
	return &Handler{Eventos: a, Frota: v, Consumo: c, Agora: time.Now}
}

// listar aplica o filtro da query com o setor restrito ao que o solicitante pode ver.
func (h *Handler) listar(r *http.Request) ([]abastecimento.Abastecimento, abastecimento.Filtro, error) {
	f := abastecimento.ParseFiltro(r.URL.Query())
	f.Setor = auth.SolicitanteDe(r).SetorVisivel(f.Setor)
	lista, err := h.Eventos.Listar(r.Context(), f)
	return lista, f, err
}

func falhaRelatorio(w http.ResponseWriter, err error, nome string) {
	log.Error().Err(err).Str("relatorio", nome).Msg("falha ao gerar relatório")
	http.Error(w, "Erro ao gerar relatório", http.StatusInternalServerError)
}

// responder devolve JSON ou, quando a rota traz {formato}, o documento exportado.
func (h *Handler) responder(w http.ResponseWriter, r *http.Request, v any, filtros []string, montar func() Documento) {
	formato := mux.Vars(r)["formato"]
	if formato == "" {
		utils.ResponderJSON(w, http.StatusOK, v)
		return
	}

	d := montar()
	d.GeradoEm = h.Agora()
	d.Usuario = auth.SolicitanteDe(r).Nome
	d.Filtros = filtros

	var buf bytes.Buffer
	var err error
	contentType := "text/csv; charset=utf-8"
	switch formato {
	case "csv":
		err = EscreverCSV(&buf, d)
	case "pdf":
		contentType = "application/pdf"
		err = EscreverPDF(&buf, d)
	default:
		http.Error(w, "Formato não suportado", http.StatusBadRequest)
		return
	}
	if err != nil {
		falhaRelatorio(w, err, d.Arquivo)
		return
	}

	nome := fmt.Sprintf("%s_%s.%s", d.Arquivo, d.GeradoEm.Format("20060102_150405"), formato)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+nome)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GET /dashboard?agrupamento=dia|semana|mes&data_inicio=&data_fim=&...
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	lista, f, err := h.listar(r)
	if err != nil {
		falhaRelatorio(w, err, "dashboard")
		return
	}
	total, err := h.Frota.Contar(f.Setor)
	if err != nil {
		falhaRelatorio(w, err, "dashboard")
		return
	}
	utils.ResponderJSON(w, http.StatusOK, MontarDashboard(lista, r.URL.Query().Get("agrupamento"), total))
}

// GET /relatorios/veiculos[/{formato}]
func (h *Handler) Veiculos(w http.ResponseWriter, r *http.Request) {
	lista, f, err := h.listar(r)
	if err != nil {
		falhaRelatorio(w, err, "veiculos")
		return
	}
	dados := PorVeiculo(lista)
	h.responder(w, r, dados, f.Descricao(), func() Documento { return DocumentoVeiculos(dados) })
}

// GET /relatorios/motoristas[/{formato}]
func (h *Handler) Motoristas(w http.ResponseWriter, r *http.Request) {
	lista, f, err := h.listar(r)
	if err != nil {
		falhaRelatorio(w, err, "motoristas")
		return
	}
	dados := PorMotorista(lista)
	h.responder(w, r, dados, f.Descricao(), func() Documento { return DocumentoMotoristas(dados) })
}

// GET /relatorios/abastecimentos[/{formato}]
func (h *Handler) Abastecimentos(w http.ResponseWriter, r *http.Request) {
	lista, f, err := h.listar(r)
	if err != nil {
		falhaRelatorio(w, err, "abastecimentos")
		return
	}
	if lista == nil {
		lista = []abastecimento.Abastecimento{}
	}
	dados := Resumir(lista)
	h.responder(w, r, dados, f.Descricao(), func() Documento { return DocumentoAbastecimentos(dados) })
}

// GET /relatorios/contratos[/{formato}]?setor=&ordem=
func (h *Handler) Contratos(w http.ResponseWriter, r *http.Request) {
	quem := auth.SolicitanteDe(r)
	q := r.URL.Query()
	ordem := contrato.ParseOrdenacao(q.Get("ordem"))
	res, err := h.Consumo.Relatorio(r.Context(), quem, q.Get("setor"), ordem)
	if err != nil {
		falhaRelatorio(w, err, "contratos")
		return
	}
	var filtros []string
	if setor := quem.SetorVisivel(q.Get("setor")); setor != "" {
		filtros = append(filtros, "Setor: "+setor)
	}
	h.responder(w, r, res, filtros, func() Documento { return DocumentoContratos(res) })
}
