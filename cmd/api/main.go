// @title QuizVerse API
// @version 1.0
// @description Backend API for the QuizVerse quiz application.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Swayamo/quizverse/internal/adapter"
	"github.com/Swayamo/quizverse/internal/adapter/doctext"
	"github.com/Swayamo/quizverse/internal/adapter/quizgen"
	"github.com/Swayamo/quizverse/internal/cache"
	"github.com/Swayamo/quizverse/internal/config"
	"github.com/Swayamo/quizverse/internal/database"
	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/handler"
	"github.com/Swayamo/quizverse/internal/logger"
	"github.com/Swayamo/quizverse/internal/middleware"
	"github.com/Swayamo/quizverse/internal/repository"
	"github.com/Swayamo/quizverse/internal/service"
	"github.com/Swayamo/quizverse/internal/validation"

	_ "github.com/Swayamo/quizverse/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with its outcome and duration.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func newLLM(cfg *config.Config) (llms.Model, error) {
	switch cfg.LLM.Provider {
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.LLM.Model)}
		if cfg.LLM.ServerURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.LLM.ServerURL))
		}
		return ollama.New(opts...)
	case "openai":
		return openai.New(
			openai.WithToken(cfg.LLM.APIKey),
			openai.WithModel(cfg.LLM.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger.Level, cfg.Logger.Env); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	llm, err := newLLM(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL")

	quizRepository := repository.NewSQLXQuizRepository(db)
	resultRepository := repository.NewSQLXResultRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Redis is optional: without it the stats dashboard computes fresh on
	// every request.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Connected to Redis")
	} else {
		appLogger.Warn("Redis address not configured; stats caching disabled")
	}

	generator := quizgen.NewGenerator(llm, cfg.LLM.Timeout, appLogger)
	pdfExtractor := doctext.NewPDFExtractor()

	quizService := service.NewQuizService(generator, quizRepository, resultRepository, pdfExtractor)
	statsService := service.NewStatsService(resultRepository, cacheAdapter)
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	validator := validation.NewValidator()
	quizHandler := handler.NewQuizHandler(quizService, statsService, validator)
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(authService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Upload.MaxFileSizeMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)

	userGroup := api.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMe)

	quizGroup := api.Group("/quizzes", middleware.Protected(authService))
	quizGroup.Get("/history", quizHandler.GetQuizHistory)
	quizGroup.Get("/user/stats", quizHandler.GetUserStats)
	quizGroup.Post("/generate", quizHandler.GenerateQuiz)
	quizGroup.Post("/generate-from-pdf", quizHandler.GenerateQuizFromPDF)
	quizGroup.Get("/:id", quizHandler.GetQuiz)
	quizGroup.Post("/:id/submit", quizHandler.SubmitQuiz)
	quizGroup.Get("/:id/results", quizHandler.GetQuizResults)

	// Graceful shutdown on SIGINT/SIGTERM.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		appLogger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		appLogger.Fatal("Server stopped unexpectedly", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
