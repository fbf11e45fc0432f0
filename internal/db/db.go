package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// Open connects to the configured database and applies pool settings.
func Open(cfg config.Database, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.URL))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Gorm(log)})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// One connection keeps in-memory databases alive and serializes writers.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}

	log.WithField("driver", cfg.Driver).Info("Database connection established")
	return conn, nil
}

// sqliteDSN turns a path (or ":memory:") into a DSN with foreign keys and
// case-sensitive LIKE enabled, so search behaves the same as on Postgres.
func sqliteDSN(url string) string {
	if url == "" {
		url = "inkwell.db"
	}
	if url == ":memory:" {
		url = "file::memory:"
	} else if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_foreign_keys=on&_cslike=true&_busy_timeout=5000"
}

// AutoMigrate creates or updates the schema from the models.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.PostCategory{},
	)
}

var defaultCategories = []struct {
	Name        string
	Description string
}{
	{Name: "JavaScript", Description: "JS tips and tutorials"},
	{Name: "Web Dev", Description: "Frontend and backend guides"},
	{Name: "Databases", Description: "SQL and ORM topics"},
}

const (
	demoEmail    = "demo@blog.local"
	demoName     = "Demo Author"
	demoPassword = "password123"
	demoBio      = "Writes sample posts for the platform."
)

// Seed inserts the default categories and the demo author when missing.
// It is safe to run on every start.
func Seed(ctx context.Context, conn *gorm.DB, log *logrus.Logger) error {
	conn = conn.WithContext(ctx)

	for _, c := range defaultCategories {
		description := c.Description
		category := models.Category{Name: c.Name, Slug: slug.Make(c.Name), Description: &description}
		result := conn.Where(models.Category{Slug: category.Slug}).FirstOrCreate(&category)
		if result.Error != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, result.Error)
		}
		if result.RowsAffected > 0 {
			log.WithField("slug", category.Slug).Info("Seeded category")
		}
	}

	var existing models.User
	err := conn.Where("email = ?", demoEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up demo user: %w", err)
	}

	hash, err := utils.HashPassword(demoPassword)
	if err != nil {
		return err
	}
	bio := demoBio
	demo := models.User{Name: demoName, Email: demoEmail, Password: hash, Bio: &bio}
	if err := conn.Create(&demo).Error; err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	log.WithField("email", demoEmail).Info("Seeded demo user")
	return nil
}

// Ping checks the underlying connection.
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
