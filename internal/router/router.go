package router

import (
	"net/http"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/abastecimento"
	"github.com/gestaofrota/api-combustivel/internal/aditivo"
	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/config"
	"github.com/gestaofrota/api-combustivel/internal/consumo"
	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/gestaofrota/api-combustivel/internal/health"
	"github.com/gestaofrota/api-combustivel/internal/middleware"
	"github.com/gestaofrota/api-combustivel/internal/motorista"
	"github.com/gestaofrota/api-combustivel/internal/notificacao"
	"github.com/gestaofrota/api-combustivel/internal/relatorio"
	"github.com/gestaofrota/api-combustivel/internal/usuario"
	"github.com/gestaofrota/api-combustivel/internal/veiculo"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Externos são as dependências que saem do processo: webhook de alertas e SMTP.
type Externos struct {
	Notificador notificacao.Notificador
	Remetente   notificacao.Remetente
}

// New monta repositórios, handlers e rotas. O handler devolvido já vem com
// request id, log, recovery e CORS.
func New(db *gorm.DB, cfg *config.Config, ext Externos) http.Handler {
	emissor := auth.NovoEmissor(cfg.JWTSecret, time.Duration(cfg.JWTExpirationMinutes)*time.Minute)
	sessoes := &auth.Sessoes{DB: db, Emissor: emissor, CookieSecure: cfg.CookieSecure}
	limitador := auth.NovoLimitadorLogin(cfg.LoginRatePerMinute)

	veiculoRepo := veiculo.NewRepository(db)
	motoristaRepo := motorista.NewRepository(db)
	contratoRepo := contrato.NewRepository(db)
	abastecimentoRepo := abastecimento.NewRepository(db)
	consumoServico := consumo.NovoServico(contratoRepo, abastecimentoRepo)

	usuarioHandler := usuario.NewHandler(db, sessoes, ext.Remetente)
	veiculoHandler := veiculo.NewHandler(veiculoRepo)
	motoristaHandler := motorista.NewHandler(motoristaRepo)
	contratoHandler := contrato.NewHandler(contratoRepo)
	aditivoHandler := aditivo.NewHandler(aditivo.NewRepository(db), contratoHandler)
	abastecimentoHandler := abastecimento.NewHandler(abastecimentoRepo, veiculoRepo, motoristaRepo, contratoRepo)
	consumoHandler := consumo.NewHandler(consumoServico, ext.Notificador, cfg.AlertaPercentual)
	relatorioHandler := relatorio.NewHandler(abastecimentoRepo, veiculoRepo, consumoServico)

	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/health", health.Handler(db)).Methods("GET")
	r.Handle("/auth/login", limitador.Middleware(http.HandlerFunc(usuarioHandler.Login))).Methods("POST")
	r.HandleFunc("/auth/refresh", sessoes.RefreshHTTPHandler).Methods("POST")
	r.HandleFunc("/auth/logout", sessoes.LogoutHTTPHandler).Methods("POST")
	r.HandleFunc("/auth/recuperar-senha", usuarioHandler.RecuperarSenha).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(emissor.MiddlewareAutenticacao)

	api.HandleFunc("/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/me/senha", usuarioHandler.AlterarSenha).Methods("PUT")

	// Usuários (admin)
	api.Handle("/usuarios", auth.RequireAdminFunc(usuarioHandler.Listar)).Methods("GET")
	api.Handle("/usuarios", auth.RequireAdminFunc(usuarioHandler.Criar)).Methods("POST")
	api.Handle("/usuarios/{id:[0-9]+}", auth.RequireAdminFunc(usuarioHandler.BuscarPorID)).Methods("GET")
	api.Handle("/usuarios/{id:[0-9]+}", auth.RequireAdminFunc(usuarioHandler.Atualizar)).Methods("PUT")
	api.Handle("/usuarios/{id:[0-9]+}", auth.RequireAdminFunc(usuarioHandler.Deletar)).Methods("DELETE")
	api.Handle("/setores", auth.RequireAdminFunc(usuarioHandler.ListarSetores)).Methods("GET")

	// Veículos
	api.HandleFunc("/veiculos", veiculoHandler.Listar).Methods("GET")
	api.HandleFunc("/veiculos", veiculoHandler.Criar).Methods("POST")
	api.HandleFunc("/veiculos/{id:[0-9]+}", veiculoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/veiculos/{id:[0-9]+}", veiculoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/veiculos/{id:[0-9]+}", veiculoHandler.Deletar).Methods("DELETE")

	// Motoristas
	api.HandleFunc("/motoristas", motoristaHandler.Listar).Methods("GET")
	api.HandleFunc("/motoristas", motoristaHandler.Criar).Methods("POST")
	api.HandleFunc("/motoristas/{id:[0-9]+}", motoristaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/motoristas/{id:[0-9]+}", motoristaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/motoristas/{id:[0-9]+}", motoristaHandler.Deletar).Methods("DELETE")

	// Abastecimentos
	api.HandleFunc("/abastecimentos", abastecimentoHandler.Listar).Methods("GET")
	api.HandleFunc("/abastecimentos", abastecimentoHandler.Criar).Methods("POST")
	api.HandleFunc("/abastecimentos/{id:[0-9]+}", abastecimentoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/abastecimentos/{id:[0-9]+}", abastecimentoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/abastecimentos/{id:[0-9]+}", abastecimentoHandler.Deletar).Methods("DELETE")

	// Contratos de combustível. consumo e alertas antes de {id}.
	api.HandleFunc("/contratos-combustivel/consumo", consumoHandler.Consumo).Methods("GET")
	api.Handle("/contratos-combustivel/alertas", auth.RequireAdminFunc(consumoHandler.Alertas)).Methods("POST")
	api.HandleFunc("/contratos-combustivel", contratoHandler.Listar).Methods("GET")
	api.HandleFunc("/contratos-combustivel", contratoHandler.Criar).Methods("POST")
	api.HandleFunc("/contratos-combustivel/{id:[0-9]+}", contratoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contratos-combustivel/{id:[0-9]+}", contratoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/contratos-combustivel/{id:[0-9]+}", contratoHandler.Deletar).Methods("DELETE")

	// Aditivos
	api.HandleFunc("/contratos-combustivel/{id:[0-9]+}/aditivos", aditivoHandler.Listar).Methods("GET")
	api.HandleFunc("/contratos-combustivel/{id:[0-9]+}/aditivos", aditivoHandler.Criar).Methods("POST")
	api.HandleFunc("/contratos-combustivel/{id:[0-9]+}/aditivos/{aid:[0-9]+}", aditivoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/contratos-combustivel/{id:[0-9]+}/aditivos/{aid:[0-9]+}", aditivoHandler.Deletar).Methods("DELETE")

	// Dashboard e relatórios
	api.HandleFunc("/dashboard", relatorioHandler.Dashboard).Methods("GET")
	api.HandleFunc("/relatorios/veiculos", relatorioHandler.Veiculos).Methods("GET")
	api.HandleFunc("/relatorios/veiculos/{formato:csv|pdf}", relatorioHandler.Veiculos).Methods("GET")
	api.HandleFunc("/relatorios/motoristas", relatorioHandler.Motoristas).Methods("GET")
	api.HandleFunc("/relatorios/motoristas/{formato:csv|pdf}", relatorioHandler.Motoristas).Methods("GET")
	api.HandleFunc("/relatorios/abastecimentos", relatorioHandler.Abastecimentos).Methods("GET")
	api.HandleFunc("/relatorios/abastecimentos/{formato:csv|pdf}", relatorioHandler.Abastecimentos).Methods("GET")
	api.HandleFunc("/relatorios/contratos", relatorioHandler.Contratos).Methods("GET")
	api.HandleFunc("/relatorios/contratos/{formato:csv|pdf}", relatorioHandler.Contratos).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{"Content-Disposition", middleware.HeaderRequestID},
	})
	return middleware.RequestID(middleware.Logger(middleware.Recovery(c.Handler(r))))
}
