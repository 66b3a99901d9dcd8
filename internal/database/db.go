package database

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"project-records/internal/config"
	"project-records/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open подключается к базе, делая до maxAttempts попыток.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel(cfg.LogLevel))}

	var db *gorm.DB
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d, driver=%s)...", i, maxAttempts, cfg.DBDriver)

		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			if err = Ping(db); err == nil {
				log.Println("connected to DB successfully")
				return db, nil
			}
		}

		log.Printf("failed to connect to DB: %v", err)
		if i < maxAttempts {
			time.Sleep(retryBackoff)
		}
	}
	return nil, fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DBDSN), nil
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.DBDSN)), nil
	}
	return nil, fmt.Errorf("unsupported DB driver %q", cfg.DBDriver)
}

// без foreign_keys sqlite не проверяет ссылки и не делает каскад
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_pragma=foreign_keys(1)"
	}
	return dsn + "?_pragma=foreign_keys(1)"
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Migrate создаёт таблицы и внешние ключи
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// EnsureAdmin создаёт администратора, если в базе нет ни одного
func EnsureAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if username == "" || password == "" {
		return errors.New("admin username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	log.Printf("created default admin user: %s", username)
	return nil
}
