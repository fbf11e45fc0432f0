package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// Migrator runs the versioned SQL migrations in a directory against a
// Postgres URL. AutoMigrate covers development; production schemas go
// through here.
type Migrator struct {
	m *migrate.Migrate
}

func NewMigrator(path, databaseURL string, log *logrus.Logger) (*Migrator, error) {
	m, err := migrate.New("file://"+path, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration init failed: %w", err)
	}
	m.Log = &migrateLogger{entry: log.WithField("component", "migrate")}
	return &Migrator{m: m}, nil
}

func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (mg *Migrator) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("invalid steps %d", steps)
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Version returns the applied version; 0 means none.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

type migrateLogger struct {
	entry *logrus.Entry
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}
