package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"homefinder/docs"
	"homefinder/internal/auth"
	"homefinder/internal/cache"
	"homefinder/internal/config"
	"homefinder/internal/db"
	"homefinder/internal/handler"
	"homefinder/internal/logger"
	"homefinder/internal/oauth"
	"homefinder/internal/repository"
	"homefinder/internal/router"
	"homefinder/internal/service"
	"homefinder/internal/storage"
)

// @title Homefinder API
// @version 1.0
// @description Real-estate listings API with password and Google sign-in, JWT identity and admin property management.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.InsecureJWTSecret {
		log.Warn("JWT_SECRET is not set, using an insecure development secret", zap.String("app_env", cfg.AppEnv))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(ctx, db.Options{
		Driver:     cfg.DBDriver,
		DSN:        dsnFor(cfg),
		Logger:     log,
		LogLevel:   gormLevel(cfg.LogLevel),
		MaxRetries: 5,
	})
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal("reset database", zap.Error(err))
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	provider, err := newStorage(cfg)
	if err != nil {
		log.Fatal("storage init", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	propertyRepo := repository.NewPropertyRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)
	inquiryRepo := repository.NewInquiryRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	userService := service.NewUserService(userRepo)

	var roleLookup auth.RoleLookup
	if cfg.RecheckAdminRole {
		roleLookup = userService.RoleOf
	}
	gate := auth.NewGate(jwtService, roleLookup)

	var (
		bridge oauth.Bridge
		states auth.StateStoreInterface
	)
	if cfg.OAuthEnabled() {
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cacheClient.Close()
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn("redis unreachable, google sign-in will fail until it recovers", zap.Error(err))
		}
		bridge = oauth.NewGoogleBridge(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
		states = auth.NewStateStore(cacheClient)
	} else {
		log.Info("google sign-in disabled: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, auth.NewBcryptHasher(), bridge, states, log)
	propertyService := service.NewPropertyService(propertyRepo)
	likeService := service.NewLikeService(likeRepo, propertyRepo)
	inquiryService := service.NewInquiryService(inquiryRepo, propertyRepo)
	imageService := service.NewImageService(provider, cfg.PublicBaseURL, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, cfg, gate, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, cfg.FrontendURL),
		Property: handler.NewPropertyHandler(propertyService),
		Upload:   handler.NewUploadHandler(imageService),
		Like:     handler.NewLikeHandler(likeService),
		Inquiry:  handler.NewInquiryHandler(inquiryService),
		User:     handler.NewUserHandler(userService),
	}, log)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info("server listening", zap.String("addr", addr), zap.String("swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func dsnFor(cfg *config.Config) string {
	if cfg.DBDriver == config.DriverSQLite {
		return cfg.SQLitePath
	}
	return cfg.MySQLDSN
}

func gormLevel(level string) gormlogger.LogLevel {
	if level == "debug" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

func newStorage(cfg *config.Config) (storage.Provider, error) {
	if cfg.StorageProvider == config.StorageS3 {
		return storage.NewS3Provider(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	}
	return storage.NewLocalProvider(cfg.UploadDir), nil
}
