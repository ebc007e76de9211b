package router

import (
	"net/http"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"homefinder/internal/auth"
	"homefinder/internal/config"
	"homefinder/internal/handler"
	"homefinder/internal/metrics"
	"homefinder/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Property *handler.PropertyHandler
	Upload   *handler.UploadHandler
	Like     *handler.LikeHandler
	Inquiry  *handler.InquiryHandler
	User     *handler.UserHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, gate *auth.Gate, h Handlers, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(corsConfig(cfg.CORSOrigins)))

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.StorageProvider == config.StorageLocal {
		// Object keys carry the uploads/ prefix, so stored files sit one level below UploadDir.
		e.Static("/uploads", filepath.Join(cfg.UploadDir, "uploads"))
	}

	authenticated := middleware.Authenticated(gate, log)
	adminOnly := middleware.RequireAdmin(gate)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/oauth/login", h.Auth.OAuthLogin)
	api.GET("/auth/oauth/callback", h.Auth.OAuthCallback)
	api.GET("/properties", h.Property.List)
	api.GET("/properties/:id", h.Property.Get)
	api.GET("/stats", h.Property.Stats)
	api.POST("/inquiries", h.Inquiry.Submit)

	// Secured routes
	secured := api.Group("", authenticated)
	secured.GET("/auth/me", h.Auth.Me)
	secured.GET("/likes", h.Like.List)
	secured.POST("/likes", h.Like.Like)
	secured.DELETE("/likes/:propertyId", h.Like.Unlike)

	// Admin routes
	admin := api.Group("/admin", authenticated, adminOnly)
	admin.GET("/properties", h.Property.List)
	admin.POST("/properties", h.Property.Create)
	admin.GET("/properties/:id", h.Property.Get)
	admin.PUT("/properties/:id", h.Property.Update)
	admin.DELETE("/properties/:id", h.Property.Delete)
	admin.POST("/upload-image", h.Upload.UploadImage)
	admin.GET("/inquiries", h.Inquiry.List)
	admin.GET("/users", h.User.ListUsers)
	admin.GET("/users/:id", h.User.GetUser)
}

func corsConfig(origins []string) echomw.CORSConfig {
	cfg := echomw.DefaultCORSConfig
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	return cfg
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
