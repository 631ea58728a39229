package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusconnect/campusconnect-api/config"
	"github.com/campusconnect/campusconnect-api/internal/cache"
	"github.com/campusconnect/campusconnect-api/internal/handlers"
	"github.com/campusconnect/campusconnect-api/internal/middleware"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/repository"
	"github.com/campusconnect/campusconnect-api/internal/services"
	"github.com/campusconnect/campusconnect-api/pkg/db"
	"github.com/campusconnect/campusconnect-api/pkg/httpclient"
	"github.com/campusconnect/campusconnect-api/pkg/jwt"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"github.com/campusconnect/campusconnect-api/pkg/metrics"
	"github.com/campusconnect/campusconnect-api/pkg/storage"
	"github.com/campusconnect/campusconnect-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// dbCandidateSource reads the candidate pool straight from Postgres. Used
// when the profile cache is disabled.
type dbCandidateSource struct {
	profileRepo *repository.ProfileRepository
}

func (s *dbCandidateSource) Get() ([]*models.Profile, error) {
	return s.profileRepo.ListCandidates(context.Background(), 0)
}

// registerStudentRoutes registers the authenticated student-facing API
func registerStudentRoutes(
	v1 *gin.RouterGroup,
	tokenManager *jwt.TokenManager,
	generalRateLimiter, profileRateLimiter *middleware.RateLimiter,
	profileHandler *handlers.ProfileHandler,
	matchHandler *handlers.MatchHandler,
	friendHandler *handlers.FriendHandler,
	confessionHandler *handlers.ConfessionHandler,
) {
	profile := v1.Group("/profile")
	profile.Use(middleware.RequireAuth(tokenManager))
	profile.GET("", generalRateLimiter.Middleware(), profileHandler.GetProfile)
	profile.POST("", profileRateLimiter.Middleware(), profileHandler.UpdateProfile)
	profile.POST("/picture", profileRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), profileHandler.UploadPicture)

	v1.GET("/match", generalRateLimiter.Middleware(), middleware.RequireAuth(tokenManager), matchHandler.FindMatches)

	friends := v1.Group("/friends")
	friends.Use(middleware.RequireAuth(tokenManager))
	friends.GET("", generalRateLimiter.Middleware(), friendHandler.ListFriends)
	friends.GET("/requests", generalRateLimiter.Middleware(), friendHandler.ListPendingRequests)
	friends.POST("/request/:userId", generalRateLimiter.Middleware(), friendHandler.SendRequest)
	friends.POST("/accept/:requestId", generalRateLimiter.Middleware(), friendHandler.AcceptRequest)
	friends.DELETE("/:userId", generalRateLimiter.Middleware(), friendHandler.RemoveFriend)

	confessions := v1.Group("/confessions")
	// The feed is readable anonymously; posting and voting require a session
	confessions.GET("", generalRateLimiter.Middleware(), middleware.CurrentIdentity(tokenManager), confessionHandler.List)
	confessions.POST("", generalRateLimiter.Middleware(), middleware.RequireAuth(tokenManager), middleware.BodySizeLimitMiddleware(100*1024), confessionHandler.Create)
	confessions.POST("/:id/upvote", generalRateLimiter.Middleware(), middleware.RequireAuth(tokenManager), confessionHandler.Upvote)
	confessions.POST("/:id/downvote", generalRateLimiter.Middleware(), middleware.RequireAuth(tokenManager), confessionHandler.Downvote)
	confessions.POST("/:id/report", generalRateLimiter.Middleware(), middleware.RequireAuth(tokenManager), middleware.BodySizeLimitMiddleware(100*1024), confessionHandler.Report)
}

// registerAdminRoutes registers moderation and reporting routes
func registerAdminRoutes(
	v1 *gin.RouterGroup,
	tokenManager *jwt.TokenManager,
	generalRateLimiter *middleware.RateLimiter,
	adminHandler *handlers.AdminHandler,
) {
	admin := v1.Group("/admin")
	admin.Use(generalRateLimiter.Middleware(), middleware.RequireAuth(tokenManager), middleware.RequireAdmin())
	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/confessions/pending", adminHandler.ListPendingConfessions)
	admin.POST("/confessions/:id/approve", adminHandler.ApproveConfession)
	admin.DELETE("/confessions/:id", adminHandler.DeleteConfession)
	admin.GET("/announcements", adminHandler.ListAnnouncements)
	admin.POST("/announcements", middleware.BodySizeLimitMiddleware(100*1024), adminHandler.CreateAnnouncement)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting CampusConnect API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize metrics
	metrics.Init()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command
	// before starting the app: ./migrate or docker-compose run migrate

	// Initialize object storage client for profile pictures
	var storageClient *storage.Client
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		storageClient, err = storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize storage client", zap.Error(err))
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	friendRepo := repository.NewFriendRepository(pool)
	confessionRepo := repository.NewConfessionRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	// Initialize candidate profile cache synchronously before accepting
	// requests so the container is only marked healthy with data loaded
	profileCache := cache.NewProfileCache(profileRepo, cfg.Cache.ProfileTTLSeconds)
	var candidates services.CandidateSource = profileCache
	cacheReadyFunc := profileCache.IsReady
	if cfg.Cache.DisableProfilesCache {
		logger.Warn("Profile cache is DISABLED - reading from database on every match request")
		candidates = &dbCandidateSource{profileRepo: profileRepo}
		cacheReadyFunc = func() bool { return true }
	} else {
		if err := profileCache.Initialize(); err != nil {
			logger.Fatal("Failed to initialize profile cache", zap.Error(err))
		}
	}

	// Initialize HTTP client for event trigger calls
	httpClient := httpclient.NewStandardClient()

	// Initialize token manager and services
	tokenManager := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTLHours)

	authService := services.NewAuthService(userRepo, profileRepo, tokenManager)
	// Box the storage client into the interface only when it exists so the
	// service sees a nil ImageStore when uploads are unconfigured.
	var imageStore services.ImageStore
	if storageClient != nil {
		imageStore = storageClient
	}

	profileService := services.NewProfileService(profileRepo, userRepo, profileCache, imageStore)
	matchService := services.NewMatchService(profileRepo, friendRepo, candidates)
	friendService := services.NewFriendService(friendRepo, userRepo)
	confessionService := services.NewConfessionService(confessionRepo, cfg, httpClient)
	adminService := services.NewAdminService(statsRepo, confessionRepo, announcementRepo, cfg, httpClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	matchHandler := handlers.NewMatchHandler(matchService)
	friendHandler := handlers.NewFriendHandler(friendService)
	confessionHandler := handlers.NewConfessionHandler(confessionService)
	adminHandler := handlers.NewAdminHandler(adminService)
	healthHandler := handlers.NewHealthHandler(cacheReadyFunc)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(1, 5)        // 1 req/sec, burst of 5 (credential abuse prevention)
	profileRateLimiter := middleware.NewRateLimiter(10, 20)   // 10 req/sec, burst of 20

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// API v1 routes
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), authHandler.Register)
	auth.POST("/login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), authHandler.Login)
	auth.POST("/logout", generalRateLimiter.Middleware(), authHandler.Logout)
	auth.GET("/me", generalRateLimiter.Middleware(), middleware.RequireAuth(tokenManager), authHandler.Me)

	registerStudentRoutes(v1, tokenManager, generalRateLimiter, profileRateLimiter,
		profileHandler, matchHandler, friendHandler, confessionHandler)
	registerAdminRoutes(v1, tokenManager, generalRateLimiter, adminHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
