package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// devJWTSecret is only ever used outside production, and its use is reported
// through Config.InsecureJWTSecret.
const devJWTSecret = "dev-only-insecure-secret"

// Storage providers.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	ServerPort      string        `mapstructure:"SERVER_PORT" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DBDriver   string `mapstructure:"DB_DRIVER" validate:"required,oneof=mysql sqlite"`
	MySQLDSN   string `mapstructure:"MYSQL_DSN" validate:"required_if=DBDriver mysql"`
	SQLitePath string `mapstructure:"SQLITE_PATH" validate:"required_if=DBDriver sqlite"`
	ResetDB    bool   `mapstructure:"RESET_DB"`

	RedisAddr string `mapstructure:"REDIS_ADDR" validate:"required,hostname_port"`
	RedisPass string `mapstructure:"REDIS_PASSWORD"`
	RedisDB   int    `mapstructure:"REDIS_DB" validate:"gte=0"`

	JWTSecret          string        `mapstructure:"JWT_SECRET"`
	JWTTTL             time.Duration `mapstructure:"JWT_TTL" validate:"required"`
	RecheckAdminRole   bool          `mapstructure:"AUTH_RECHECK_ADMIN_ROLE"`
	InsecureJWTSecret  bool          `mapstructure:"-"`
	GoogleClientID     string        `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string        `mapstructure:"GOOGLE_REDIRECT_URL" validate:"required,url"`
	FrontendURL        string        `mapstructure:"FRONTEND_URL" validate:"required,url"`
	CORSOrigins        []string      `mapstructure:"-"`
	StorageProvider    string        `mapstructure:"STORAGE_PROVIDER" validate:"required,oneof=local s3"`
	UploadDir          string        `mapstructure:"UPLOAD_DIR" validate:"required_if=StorageProvider local"`
	PublicBaseURL      string        `mapstructure:"PUBLIC_BASE_URL" validate:"required,url"`
	S3Bucket           string        `mapstructure:"S3_BUCKET" validate:"required_if=StorageProvider s3"`
	S3Region           string        `mapstructure:"S3_REGION"`
	S3Endpoint         string        `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID      string        `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey  string        `mapstructure:"S3_SECRET_ACCESS_KEY"`
	SwaggerHost        string        `mapstructure:"SWAGGER_HOST"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrMissingJWTSecret is returned when production runs without a signing key.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when APP_ENV=production")

var keys = []string{
	"APP_ENV", "SERVER_PORT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	"DB_DRIVER", "MYSQL_DSN", "SQLITE_PATH", "RESET_DB",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "JWT_TTL", "AUTH_RECHECK_ADMIN_ROLE",
	"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URL", "FRONTEND_URL", "CORS_ORIGINS",
	"STORAGE_PROVIDER", "UPLOAD_DIR", "PUBLIC_BASE_URL",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	"SWAGGER_HOST",
}

// Load builds Config from .env files and the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/homefinder?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("SQLITE_PATH", "homefinder.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/oauth/callback")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("UPLOAD_DIR", "storage")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Durations may arrive as plain strings from the environment.
	for key, dst := range map[string]*time.Duration{
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
		"JWT_TTL":          &c.JWTTTL,
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
	}

	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			c.CORSOrigins = append(c.CORSOrigins, origin)
		}
	}
	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")
	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")

	if c.JWTSecret == "" {
		if c.AppEnv == "production" {
			return nil, ErrMissingJWTSecret
		}
		c.JWTSecret = devJWTSecret
		c.InsecureJWTSecret = true
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

// OAuthEnabled reports whether Google sign-in credentials are configured.
func (c *Config) OAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
