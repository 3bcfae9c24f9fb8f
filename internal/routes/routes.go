package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/auth"
	"github.com/picineiros/pool-manager/internal/cache"
	"github.com/picineiros/pool-manager/internal/config"
	"github.com/picineiros/pool-manager/internal/handlers"
	infraRepo "github.com/picineiros/pool-manager/internal/infra/repository"
	"github.com/picineiros/pool-manager/internal/mailer"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/notify"
	ucNotification "github.com/picineiros/pool-manager/internal/usecase/notification"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, cacheClient cache.Client, log *zap.Logger) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	notificationRepo := infraRepo.NewNotificationGormRepository(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	stateTokens := auth.NewStateTokenGenerator(cfg.JWTSecret, cfg.StateTokenTTL)
	mail := mailer.New(cfg, log)

	// ======================================================
	// 🧠 USE CASES — NOTIFICAÇÕES
	// ======================================================
	agendamentoCriadoUC := ucNotification.NewAgendamentoCriado(notificationRepo)

	notifyDispatcher := notify.NewDispatcher(agendamentoCriadoUC, log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, tokens, stateTokens, mail, log)

	clienteHandler := handlers.NewClienteHandler(db)
	agendamentoHandler := handlers.NewAgendamentoHandler(db, notifyDispatcher)
	financeiroHandler := handlers.NewFinanceiroHandler(db)
	notificacaoHandler := handlers.NewNotificacaoHandler(db)

	dashboardHandler := handlers.NewDashboardHandler(db)
	relatorioHandler := handlers.NewRelatorioHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.GET("/auth/csrf/", authHandler.CSRF)

		api.POST("/auth/register/", authHandler.Register)
		api.POST("/auth/email-verify/", authHandler.EmailVerify)
		api.POST("/auth/password-reset/", authHandler.PasswordResetRequest)
		api.POST("/auth/password-reset/confirm/", authHandler.PasswordResetConfirm)

		api.POST("/auth/login/",
			middleware.CSRFProtect(),
			middleware.RateLimit(cacheClient, "login", cfg.LoginRateLimit, cfg.LoginRateWindow, log),
			authHandler.Login,
		)
		api.POST("/auth/refresh/", middleware.CSRFProtect(), authHandler.Refresh)
		api.POST("/auth/logout/", middleware.CSRFProtect(), authHandler.Logout)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/auth/me/", authHandler.Me)
			secured.POST("/auth/password-change/", authHandler.PasswordChange)

			// ------------------------------
			// CLIENTES
			// ------------------------------
			secured.GET("/clientes/", clienteHandler.List)
			secured.POST("/clientes/", clienteHandler.Create)
			secured.GET("/clientes/:id/", clienteHandler.Get)
			secured.PUT("/clientes/:id/", clienteHandler.Update)
			secured.PATCH("/clientes/:id/", clienteHandler.Update)
			secured.DELETE("/clientes/:id/", clienteHandler.SoftDelete)
			secured.DELETE("/clientes/:id/hard-delete/", clienteHandler.HardDelete)

			// ------------------------------
			// AGENDAMENTOS
			// ------------------------------
			secured.GET("/agendamentos/", agendamentoHandler.List)
			secured.POST("/agendamentos/", agendamentoHandler.Create)
			secured.GET("/agendamentos/:id/", agendamentoHandler.Get)
			secured.PUT("/agendamentos/:id/", agendamentoHandler.Update)
			secured.PATCH("/agendamentos/:id/", agendamentoHandler.Update)
			secured.DELETE("/agendamentos/:id/", agendamentoHandler.SoftDelete)
			secured.DELETE("/agendamentos/:id/hard-delete/", agendamentoHandler.HardDelete)

			// ------------------------------
			// FINANCEIRO
			// ------------------------------
			secured.GET("/financeiro/", financeiroHandler.List)
			secured.POST("/financeiro/", financeiroHandler.Create)
			secured.GET("/financeiro/:id/", financeiroHandler.Get)
			secured.PUT("/financeiro/:id/", financeiroHandler.Update)
			secured.PATCH("/financeiro/:id/", financeiroHandler.Update)
			secured.DELETE("/financeiro/:id/", financeiroHandler.SoftDelete)
			secured.DELETE("/financeiro/:id/hard-delete/", financeiroHandler.HardDelete)

			// ------------------------------
			// NOTIFICAÇÕES
			// ------------------------------
			secured.GET("/notificacoes/", notificacaoHandler.List)
			secured.POST("/notificacoes/:id/marcar-lida/", notificacaoHandler.MarcarLida)
			secured.POST("/notificacoes/marcar-todas-lidas/", notificacaoHandler.MarcarTodasLidas)

			// ------------------------------
			// DASHBOARD & RELATÓRIOS
			// ------------------------------
			secured.GET("/dashboard/", dashboardHandler.Stats)

			secured.GET("/relatorios/clientes/:formato/", relatorioHandler.Clientes)
			secured.GET("/relatorios/agendamentos/:formato/", relatorioHandler.Agendamentos)
			secured.GET("/relatorios/financeiro/:formato/", relatorioHandler.Financeiro)
		}
	}
}
