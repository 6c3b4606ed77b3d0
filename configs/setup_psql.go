package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func PostgresDSN(cfg Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)
}

// ConnectUsersDB opens the relational database holding user accounts.
func ConnectUsersDB(cfg Config) (*gorm.DB, error) {
	log := LogWithContext("database", "users-connect")
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.UsersDBDriver {
	case UsersDriverSQLite:
		if dir := filepath.Dir(cfg.UsersDBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		dialector = sqlite.Open(cfg.UsersDBPath)
	case UsersDriverPostgres:
		dialector = postgres.Open(PostgresDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported users database driver %q", cfg.UsersDBDriver)
	}

	database, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.UsersDBDriver).Error("Failed to connect to users database")
		return nil, fmt.Errorf("open %s users database: %w", cfg.UsersDBDriver, err)
	}

	log.WithField("driver", cfg.UsersDBDriver).Info("Connected to users database")
	return database, nil
}
