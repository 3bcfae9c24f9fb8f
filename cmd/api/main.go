package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/picineiros/pool-manager/internal/cache"
	"github.com/picineiros/pool-manager/internal/config"
	dbpkg "github.com/picineiros/pool-manager/internal/db"
	infraRepo "github.com/picineiros/pool-manager/internal/infra/repository"
	"github.com/picineiros/pool-manager/internal/logger"
	"github.com/picineiros/pool-manager/internal/metrics"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/routes"
	"github.com/picineiros/pool-manager/internal/scheduler"
	ucNotification "github.com/picineiros/pool-manager/internal/usecase/notification"
)

func main() {

	cfg := config.Load()

	log, err := logger.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	// Redis é opcional: sem ele o throttle de login vira no-op.
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Warn("redis indisponível, seguindo sem throttle de login", zap.Error(err))
		} else {
			cacheClient = redisClient
		}
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigin))
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	routes.RegisterRoutes(r, db, cfg, cacheClient, log)

	// ======================================================
	// ⏰ VARREDURAS DIÁRIAS (lembretes + vencimentos)
	// ======================================================
	notificationRepo := infraRepo.NewNotificationGormRepository(db)
	sched := scheduler.New(
		ucNotification.NewLembreteSweep(notificationRepo),
		ucNotification.NewVencimentoSweep(notificationRepo),
		log,
	)
	sched.Start()
	defer sched.Stop()

	log.Info("servidor iniciado", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("falha ao subir o servidor", zap.Error(err))
	}
}
