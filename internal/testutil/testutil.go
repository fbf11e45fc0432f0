// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// Logger discards output.
func Logger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

// NewDB opens a private in-memory SQLite database with the schema applied.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(config.Database{Driver: "sqlite", URL: ":memory:"}, Logger())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

// NewSeededDB is NewDB plus the default categories and demo author.
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn := NewDB(t)
	if err := db.Seed(context.Background(), conn, Logger()); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	return conn
}

// CreateUser inserts a user with the given password.
func CreateUser(t *testing.T, conn *gorm.DB, name, email, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Name: name, Email: email, Password: hash}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CategoryID looks up a seeded category by slug.
func CategoryID(t *testing.T, conn *gorm.DB, slug string) uint {
	t.Helper()
	var c models.Category
	if err := conn.Where("slug = ?", slug).First(&c).Error; err != nil {
		t.Fatalf("category %s: %v", slug, err)
	}
	return c.ID
}
