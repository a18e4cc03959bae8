package db

import (
	"fmt"
	"time"

	"catalog/config"
	"catalog/models"
	"catalog/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table owned by the application, parents first.
func Models() []any {
	return []any{
		&models.User{},
		&models.Product{},
		&models.ProductReview{},
		&models.Store{},
		&models.ProductCertificate{},
	}
}

type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}

// NewLogger routes gorm's SQL logging through zerolog.
func NewLogger(level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(zerologWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Open opens a gorm connection with error translation enabled so unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, level gormlogger.LogLevel) (*gorm.DB, error) {
	database, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.Dsn()), gormlogger.Warn)
}

func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
