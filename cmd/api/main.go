// @title Quizard API
// @version 1.0
// @description AI quiz generation backend: conversational quiz creation, sharing and attempt analytics.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizard/internal/adapter"
	"quizard/internal/adapter/textgen"
	"quizard/internal/cache"
	"quizard/internal/config"
	"quizard/internal/database"
	"quizard/internal/handler"
	"quizard/internal/logger"
	"quizard/internal/middleware"
	"quizard/internal/repository"
	"quizard/internal/service"
	"quizard/internal/validation"

	_ "quizard/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("RedisCacheAdapter initialized")

	// Text generation model
	generator, err := textgen.NewGeminiGenerator(context.Background(), cfg.Gemini, cfg.Generation)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini generator", zap.Error(err))
	}
	appLogger.Info("Gemini generator initialized", zap.String("model", cfg.Gemini.Model))

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	chatRepository := repository.NewSQLXChatRepository(db)
	quizSetRepository := repository.NewSQLXQuizSetRepository(db)
	attemptRepository := repository.NewSQLXQuizAttemptRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	generationService := service.NewGenerationService(
		userRepository,
		generator,
		service.NewPromptCompiler(),
		service.NewResponseValidator(),
		cfg.Generation,
	)
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository)
	chatService := service.NewChatService(chatRepository, txManager, cacheAdapter)
	quizService := service.NewQuizService(quizSetRepository, attemptRepository)
	analyticsService := service.NewAnalyticsService(quizSetRepository, attemptRepository)

	// Handlers
	validator := validation.NewValidator(cfg.Generation.AllowedQuestionCounts)
	validationMiddleware := middleware.NewValidationMiddleware(validator)
	generationHandler := handler.NewGenerationHandler(generationService, chatService, validator)
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(chatService, validator)
	quizHandler := handler.NewQuizHandler(quizService, analyticsService, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// User routes
	apiGroup.Get("/users/me", middleware.Protected(authService), userHandler.GetMyProfile)
	apiGroup.Patch("/users/me", middleware.Protected(authService), userHandler.UpdateMyProfile)
	apiGroup.Get("/users/me/balance", middleware.Protected(authService), userHandler.GetMyBalance)

	// Generation
	apiGroup.Post("/generate", middleware.Protected(authService), generationHandler.Generate)

	// Chat routes (all protected)
	chatGroup := apiGroup.Group("/chats", middleware.Protected(authService))
	chatGroup.Post("/", chatHandler.SaveChat)
	chatGroup.Get("/", chatHandler.GetChats)
	chatGroup.Get("/:id", validationMiddleware.ValidateIDParam("id"), chatHandler.GetChat)
	chatGroup.Delete("/:id", validationMiddleware.ValidateIDParam("id"), chatHandler.DeleteChat)

	// Quiz routes
	quizGroup := apiGroup.Group("/quizzes")
	quizGroup.Post("/", middleware.Protected(authService), quizHandler.SaveQuiz)
	quizGroup.Get("/", middleware.Protected(authService), quizHandler.GetMyQuizzes)
	quizGroup.Get("/:id", validationMiddleware.ValidateIDParam("id"), middleware.OptionalAuth(authService), quizHandler.GetQuiz)
	quizGroup.Put("/:id", validationMiddleware.ValidateIDParam("id"), middleware.Protected(authService), quizHandler.UpdateQuiz)
	quizGroup.Delete("/:id", validationMiddleware.ValidateIDParam("id"), middleware.Protected(authService), quizHandler.DeleteQuiz)
	quizGroup.Patch("/:id/settings", validationMiddleware.ValidateIDParam("id"), middleware.Protected(authService), quizHandler.UpdateSettings)
	quizGroup.Post("/:id/attempts", validationMiddleware.ValidateIDParam("id"), middleware.OptionalAuth(authService), quizHandler.SubmitAttempt)
	quizGroup.Get("/:id/analytics", validationMiddleware.ValidateIDParam("id"), middleware.Protected(authService), quizHandler.GetQuizAnalytics)

	// Analytics
	apiGroup.Get("/analytics/overview", middleware.Protected(authService), quizHandler.GetOverview)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
