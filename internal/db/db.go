package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"homefinder/internal/model"
)

// Models lists every table owned by the application, in drop-safe order.
var Models = []interface{}{
	&model.Like{},
	&model.Inquiry{},
	&model.Property{},
	&model.User{},
}

// Options selects and tunes the database connection.
type Options struct {
	Driver     string // mysql or sqlite
	DSN        string // MySQL DSN or SQLite file path
	Logger     *zap.Logger
	LogLevel   gormlogger.LogLevel
	MaxRetries int
}

// Open returns a connected GORM DB instance. MySQL connections are retried
// with exponential backoff while the server comes up.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "mysql":
		dialector = mysql.Open(opts.DSN)
	case "sqlite":
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := &gorm.Config{
		Logger:         zapGormLogger{zap: log, level: opts.LogLevel},
		TranslateError: true,
	}

	b := backoff{maxRetries: opts.MaxRetries, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}

	var gdb *gorm.DB
	var err error
	for attempt := 0; ; attempt++ {
		gdb, err = gorm.Open(dialector, cfg)
		if err == nil {
			break
		}
		if attempt >= b.maxRetries {
			return nil, fmt.Errorf("connect %s: %w", opts.Driver, err)
		}
		log.Warn("database connect failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect %s canceled: %w", opts.Driver, ctx.Err())
		case <-time.After(b.nextDelay(attempt)):
		}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	if opts.Driver == "sqlite" {
		// SQLite allows a single writer; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return gdb, nil
}

// Migrate creates or updates all application tables.
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate wants parents before children.
	for i := len(Models) - 1; i >= 0; i-- {
		if err := gdb.AutoMigrate(Models[i]); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// Reset drops all application tables.
func Reset(gdb *gorm.DB) error {
	for _, table := range Models {
		if err := gdb.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}

type zapGormLogger struct {
	zap   *zap.Logger
	level gormlogger.LogLevel
}

func (l zapGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.level = level
	return l
}

func (l zapGormLogger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.zap.Sugar().Infof(s, args...)
	}
}

func (l zapGormLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.zap.Sugar().Warnf(s, args...)
	}
}

func (l zapGormLogger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.zap.Sugar().Errorf(s, args...)
	}
}

func (l zapGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	sql, rows := fc()
	dur := time.Since(begin)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error {
		l.zap.Error("gorm query error", zap.Duration("duration", dur), zap.Int64("rows", rows), zap.String("sql", sql), zap.Error(err))
		return
	}
	if l.level >= gormlogger.Info {
		l.zap.Debug("gorm query", zap.Duration("duration", dur), zap.Int64("rows", rows), zap.String("sql", sql))
	}
}

type backoff struct {
	maxRetries int
	delay      time.Duration
	maxDelay   time.Duration
}

func (b backoff) nextDelay(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay {
		return b.maxDelay
	}
	return d
}
