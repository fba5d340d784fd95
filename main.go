package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkslot/config"
	"parkslot/cron"
	"parkslot/database"
	parkingRepo "parkslot/database/repository/parking"
	"parkslot/handlers"
	"parkslot/metrics"
	"parkslot/middleware"
	"parkslot/routes"
	"parkslot/services/booking"
	"parkslot/services/tasks"
	"parkslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitSessionCache()
	metrics.Register()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	parking := parkingRepo.NewMongoParkingRepo()
	if err := parking.EnsureIndexes(rootCtx); err != nil {
		logger.Fatal("main: failed to ensure indexes", zap.Error(err))
	}

	// background work.
	reconciler := tasks.NewAsynqEnqueuer(cron.RedisOpt(), config.AppConfig.ReconcileMaxRetry)
	defer reconciler.Close()
	worker := cron.InitReconcileWorker(parking)
	utils.StartHealthMonitor(rootCtx, utils.GetSessionCacheClient(), database.MongoClient, 15*time.Second)

	// services.
	store := booking.NewRedisSessionStore(utils.GetSessionCacheClient(), config.AppConfig.WizardSessionTTL, config.AppConfig.SubmitLockTTL)
	sessionService := booking.NewBookingSessionService(parking, store, reconciler)
	historyService := booking.NewBookingHistoryService(parking)

	handlerBundle := handlers.NewHandlerBundle(
		middleware.JWTAuthUserMiddleware(),
		handlers.NewBookingHandler(sessionService),
		handlers.NewHistoryHandler(historyService),
	)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	if err := utils.GetSessionCacheClient().Close(); err != nil {
		logger.Warn("main: redis close failed", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
