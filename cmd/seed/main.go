package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"homefinder/internal/auth"
	"homefinder/internal/config"
	"homefinder/internal/db"
	"homefinder/internal/logger"
	"homefinder/internal/repository"
	"homefinder/internal/service"
)

func main() {
	adminEmail := flag.String("admin-email", "", "email of the admin account to create or promote")
	adminName := flag.String("admin-name", "Administrator", "display name for a newly created admin")
	adminPassword := flag.String("admin-password", "", "password for the admin account")
	samples := flag.Bool("sample-properties", false, "insert demo property listings")
	flag.Parse()

	if *adminEmail == "" && !*samples {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.Init(cfg.LogLevel, "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	dsn := cfg.MySQLDSN
	if cfg.DBDriver == config.DriverSQLite {
		dsn = cfg.SQLitePath
	}
	gormDB, err := db.Open(ctx, db.Options{Driver: cfg.DBDriver, DSN: dsn, Logger: log, LogLevel: gormlogger.Warn, MaxRetries: 5})
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(gormDB)
	propertyRepo := repository.NewPropertyRepository(gormDB)

	if *adminEmail != "" {
		// Token issuing is never used by EnsureAdmin; OAuth is not needed here.
		authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL), auth.NewBcryptHasher(), nil, nil, log)
		user, created, err := authService.EnsureAdmin(ctx, *adminName, *adminEmail, *adminPassword)
		if err != nil {
			log.Fatal("create admin", zap.Error(err))
		}
		if created {
			log.Info("admin created", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
		} else {
			log.Info("existing user promoted to admin", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
		}
	}

	if *samples {
		propertyService := service.NewPropertyService(propertyRepo)
		count := 0
		for _, input := range sampleProperties() {
			if _, err := propertyService.Create(ctx, input); err != nil {
				log.Fatal("create sample property", zap.Error(err))
			}
			count++
		}
		log.Info("sample properties inserted", zap.Int("count", count))
	}
}

func sampleProperties() []service.PropertyInput {
	type sample struct {
		title, description, location string
		price                        int64
		bedrooms, bathrooms          int
		area                         float64
		amenities                    []string
	}
	samples := []sample{
		{"Modern Downtown Apartment", "Bright two bedroom apartment close to transit and shops.", "Downtown", 350000, 2, 1, 85, []string{"Elevator", "Balcony"}},
		{"Family House with Garden", "Spacious four bedroom house with a large garden and garage.", "Suburbs", 620000, 4, 3, 210, []string{"Garden", "Garage", "Fireplace"}},
		{"Seaside Studio", "Compact studio a short walk from the beach.", "Coastline", 180000, 1, 1, 38, []string{"Sea view"}},
	}

	inputs := make([]service.PropertyInput, 0, len(samples))
	for _, s := range samples {
		s := s
		price := decimal.NewFromInt(s.price)
		inputs = append(inputs, service.PropertyInput{
			Title:       &s.title,
			Description: &s.description,
			Price:       &price,
			Location:    &s.location,
			Bedrooms:    &s.bedrooms,
			Bathrooms:   &s.bathrooms,
			Area:        &s.area,
			Amenities:   s.amenities,
		})
	}
	return inputs
}
