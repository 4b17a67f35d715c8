package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gcse_prep_backend/internal/bank"
	"gcse_prep_backend/internal/config"
	"gcse_prep_backend/internal/controller"
	"gcse_prep_backend/internal/repository"
	"gcse_prep_backend/internal/service"
	"gcse_prep_backend/pkg/configwatcher"
	"gcse_prep_backend/pkg/database"
	"gcse_prep_backend/pkg/logger"
	"gcse_prep_backend/pkg/monitoring"
	"gcse_prep_backend/pkg/security"
	"gcse_prep_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Bank            *bank.Store
	configCallbacks []func(*config.Config)
}

type repositories struct {
	attempt    *repository.QuestionAttemptRepository
	session    *repository.PracticeSessionRepository
	progress   *repository.LessonProgressRepository
	enrollment *repository.EnrollmentRepository
	activity   *repository.StudyActivityRepository
}

type services struct {
	sampler    *service.SamplerService
	session    *service.SessionService
	progress   *service.ProgressService
	prediction *service.PredictionService
}

type controllers struct {
	practice   *controller.PracticeController
	progress   *controller.ProgressController
	prediction *controller.PredictionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// WatchConfig hot-reloads the config file and fans each reload out to
// the registered callbacks.
func (a *App) WatchConfig(configFile string) {
	go configwatcher.WatchConfig(configFile, func(cfg *config.Config) {
		a.Config = cfg
		for _, callback := range a.configCallbacks {
			callback(cfg)
		}
		logger.Log.Info("Configuration reloaded", zap.String("file", configFile))
	})
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		attempt:    repository.NewQuestionAttemptRepository(db),
		session:    repository.NewPracticeSessionRepository(db),
		progress:   repository.NewLessonProgressRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		activity:   repository.NewStudyActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, rdb *redis.Client, bankStore *bank.Store) *services {
	s := &services{}

	s.sampler = service.NewSamplerService(bankStore, repos.attempt)
	s.progress = service.NewProgressService(repos.attempt, repos.session, repos.progress, repos.enrollment, repos.activity, rdb)
	s.session = service.NewSessionService(repos.session, repos.attempt, repos.activity, s.sampler, bankStore, s.progress)
	s.prediction = service.NewPredictionService(repos.enrollment, repos.session)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		practice:   controller.NewPracticeController(s.session, s.sampler),
		progress:   controller.NewProgressController(s.progress),
		prediction: controller.NewPredictionController(s.prediction),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	bankStore, err := bank.NewStore(&cfg.Bank)
	if err != nil {
		logger.Log.Fatal("Failed to initialize question bank store", zap.Error(err))
		log.Fatalf("Failed to initialize question bank store: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Bank:   bankStore,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, rdb, bankStore)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("practice-engine", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
