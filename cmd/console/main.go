package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/supervisor-console/internal/api/http"
	"github.com/spec-kit/supervisor-console/internal/api/http/handlers"
	"github.com/spec-kit/supervisor-console/internal/backend"
	"github.com/spec-kit/supervisor-console/internal/config"
	"github.com/spec-kit/supervisor-console/internal/draft"
	"github.com/spec-kit/supervisor-console/internal/events"
	"github.com/spec-kit/supervisor-console/internal/observability"
	"github.com/spec-kit/supervisor-console/internal/service"
	"github.com/spec-kit/supervisor-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	client := backend.NewHTTPClient(cfg.Backend)
	drafts := draft.NewStore()

	queueService := service.NewPendingQueueService(service.PendingQueueDependencies{
		Backend:    client,
		Drafts:     drafts,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
		Strategy:   cfg.Queue.SubmitStrategy,
	})
	historyService := service.NewHistoryService(client, dispatcher, logger, metrics)
	noticeService := service.NewNoticeService(dispatcher, logger, cfg.Queue.MaxNotices)
	worker.StartNoticeWorker(noticeService)

	// Populate both views on activation; failures surface as notices and the
	// supervisor can refresh on demand.
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.Backend.Timeout()+time.Second)
	if err := queueService.LoadPending(loadCtx); err != nil {
		logger.Warn("initial pending load failed", zap.Error(err))
	}
	if err := historyService.LoadResolved(loadCtx); err != nil {
		logger.Warn("initial resolved load failed", zap.Error(err))
	}
	loadCancel()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, client),
		Queue:   handlers.NewQueueHandler(queueService),
		History: handlers.NewHistoryHandler(historyService),
		Notices: handlers.NewNoticesHandler(noticeService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
