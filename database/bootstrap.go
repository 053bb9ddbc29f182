// database/bootstrap.go
package database

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"genreport/config"
	"genreport/entities"
)

// Params are the connection parameters a report request may carry.
type Params struct {
	DBName   string
	User     string
	Password string
	Host     string
	Port     int
}

func (p Params) Empty() bool {
	return p.DBName == "" && p.User == "" && p.Host == ""
}

// DSN renders p as a postgres URL.
func (p Params) DSN() string {
	port := p.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   p.Host + ":" + strconv.Itoa(port),
		Path:   "/" + p.DBName,
	}
	return u.String()
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

// OpenSQLite opens (and creates if needed) the local report store.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenPostgres connects to an existing production database. Tables are
// expected to exist already; nothing is migrated.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Open picks the driver configured for the server's default database.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return OpenSQLite(cfg.DBPath)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for DB_DRIVER=postgres")
		}
		return OpenPostgres(cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

// Migrate creates the three report tables when missing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.Field{},
		&entities.DailyProd{},
		&entities.PlanProd{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
