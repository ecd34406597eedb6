package app

import (
	"budaya_backend/internal/config"
	"budaya_backend/internal/controller"
	"budaya_backend/internal/repository"
	"budaya_backend/internal/service"
	"budaya_backend/internal/util"
	"budaya_backend/pkg/configwatcher"
	"budaya_backend/pkg/database"
	"budaya_backend/pkg/logger"
	"budaya_backend/pkg/monitoring"
	"budaya_backend/pkg/security"
	"budaya_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	quiz        *repository.QuizRepository
	quizAttempt *repository.QuizAttemptRepository
}

type services struct {
	storage      *service.StorageService
	questionBank *service.QuestionBank
	quizAttempt  *service.QuizAttemptService
}

type controllers struct {
	quiz   *controller.QuizController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		quiz:        repository.NewQuizRepository(db),
		quizAttempt: repository.NewQuizAttemptRepository(db),
	}
}

func newAttemptLocker(cfg *config.Config, rdb *redis.Client) service.AttemptLocker {
	if cfg.Quiz.LockBackend == util.LockBackendRedis && rdb != nil {
		return service.NewRedisAttemptLocker(rdb)
	}
	return service.NewLocalAttemptLocker()
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	s.storage = storage
	s.questionBank = service.NewQuestionBank(repos.quiz, rdb, cfg.Quiz.CacheTTL)
	s.quizAttempt = service.NewQuizAttemptService(
		db,
		s.questionBank,
		repos.quizAttempt,
		s.storage,
		newAttemptLocker(cfg, rdb),
		cfg.Quiz,
	)

	// 热更新仅影响答题参数，锁后端需重启生效
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		if newCfg.Quiz.LockBackend != cfg.Quiz.LockBackend {
			logger.Log.Warn("quiz.lock_backend change requires restart",
				zap.String("current", cfg.Quiz.LockBackend),
				zap.String("requested", newCfg.Quiz.LockBackend),
			)
		}
		s.quizAttempt.UpdateSettings(newCfg.Quiz)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		quiz:   controller.NewQuizController(s.quizAttempt),
		health: controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("budaya-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// watchConfig 配置文件变更时依次执行已注册的回调
func (a *App) watchConfig(ctx context.Context) {
	path := filepath.Join(configDir, "config.yaml")
	err := configwatcher.WatchConfig(ctx, path, func(newCfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
	if err != nil {
		logger.Log.Error("Config watcher stopped", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	go a.watchConfig(watchCtx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stopWatch()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 释放数据库、Redis 与追踪资源
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			logger.Log.Error("Failed to close database", zap.Error(err))
		}
	}
}
