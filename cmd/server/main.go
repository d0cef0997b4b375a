package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/studyzen/backend/api/handler"
	"github.com/studyzen/backend/internal/clock"
	"github.com/studyzen/backend/internal/config"
	"github.com/studyzen/backend/internal/infrastructure/buffer"
	"github.com/studyzen/backend/internal/infrastructure/monitor"
	pgInfra "github.com/studyzen/backend/internal/infrastructure/postgres"
	redisInfra "github.com/studyzen/backend/internal/infrastructure/redis"
	"github.com/studyzen/backend/internal/middleware"
	"github.com/studyzen/backend/internal/router"
	"github.com/studyzen/backend/internal/services"
	"github.com/studyzen/backend/internal/services/lifecycle"
	"github.com/studyzen/backend/pkg/httpcontext"
	"github.com/studyzen/backend/pkg/logger"
	"github.com/studyzen/backend/repository/postgres"
	redisRepo "github.com/studyzen/backend/repository/redis"
	analyticsUC "github.com/studyzen/backend/usecase/analytics"
	authUC "github.com/studyzen/backend/usecase/auth"
	profileUC "github.com/studyzen/backend/usecase/profile"
	sessionUC "github.com/studyzen/backend/usecase/studysession"
	subjectUC "github.com/studyzen/backend/usecase/subject"
	taskUC "github.com/studyzen/backend/usecase/task"
	topicUC "github.com/studyzen/backend/usecase/topic"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	subjectRepo := postgres.NewSubjectRepository(pool)
	topicRepo := postgres.NewTopicRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	studySessionRepo := postgres.NewStudySessionRepository(pool)
	authSessionRepo := redisRepo.NewAuthSessionRepository(redisClient, 24*time.Hour)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		taskRepo,
		topicRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)
	appClock := clock.System{}

	authUseCase := authUC.New(userRepo, authSessionRepo, zapLogger)
	profileUseCase := profileUC.New(userRepo, bufferBridge, zapLogger)
	subjectUseCase := subjectUC.New(subjectRepo, zapLogger)
	topicUseCase := topicUC.New(topicRepo, subjectRepo, bufferBridge, zapLogger)
	taskUseCase := taskUC.New(taskRepo, topicRepo, bufferBridge, zapLogger)
	sessionUseCase := sessionUC.New(studySessionRepo, taskRepo, topicRepo, appClock, zapLogger)
	analyticsUseCase := analyticsUC.New(
		studySessionRepo,
		taskRepo,
		topicRepo,
		appClock,
		zapLogger,
		analyticsUC.Config{DueSoonLimit: cfg.Analytics.DueSoonLimit},
	)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Subject: apiHandler.NewSubjectHandler(subjectUseCase, ctxAdapter, zapLogger),
		Topic:   apiHandler.NewTopicHandler(topicUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Session: apiHandler.NewSessionHandler(sessionUseCase, ctxAdapter, zapLogger),
		Me: apiHandler.NewMeHandler(analyticsUseCase, ctxAdapter, zapLogger, apiHandler.MeLimits{
			WindowDefault:    cfg.Analytics.WindowDefaultDays,
			WindowMax:        cfg.Analytics.WindowMaxDays,
			BlueprintDefault: cfg.Analytics.BlueprintDefault,
			BlueprintMax:     cfg.Analytics.BlueprintMax,
		}),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
