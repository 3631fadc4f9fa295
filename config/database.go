package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const (
	BackendMemory   = "memory"
	BackendMySQL    = "mysql"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type DatabaseConfig struct {
	Host       string
	Port       string
	Database   string
	User       string
	Password   string
	SSLMode    string
	SQLitePath string
}

func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:       getenv("DB_HOST", "localhost"),
		Port:       getenv("DB_PORT", ""),
		Database:   getenv("DB_NAME", "phonebook_db"),
		User:       getenv("DB_USER", "phonebook"),
		Password:   getenv("DB_PASSWORD", ""),
		SSLMode:    getenv("DB_SSLMODE", "disable"),
		SQLitePath: getenv("SQLITE_PATH", "phonebook.db"),
	}
}

// MySQLDSN reports matched rather than changed rows, so an update that
// rewrites identical values still finds its row.
func (c *DatabaseConfig) MySQLDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Host + ":" + defaultPort(c.Port, "3306")
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Timeout = 5 * time.Second
	return cfg.FormatDSN()
}

func (c *DatabaseConfig) SQLiteDSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", c.SQLitePath)
}

func (c *DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s connect_timeout=5",
		c.Host, c.User, c.Password, c.Database, defaultPort(c.Port, "5432"), c.SSLMode)
}

func defaultPort(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}

// ConnectDatabase opens a database/sql pool for the mysql or sqlite backend.
func ConnectDatabase(ctx context.Context, backend string, c *DatabaseConfig) (*sql.DB, error) {
	var driver, dsn string
	switch backend {
	case BackendMySQL:
		driver, dsn = "mysql", c.MySQLDSN()
	case BackendSQLite:
		driver, dsn = "sqlite", c.SQLiteDSN()
	default:
		return nil, fmt.Errorf("backend %q is not served by database/sql", backend)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if backend == BackendSQLite {
		// sqlite has a single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	return db, nil
}

// ConnectGorm opens the postgres backend.
func ConnectGorm(c *DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.PostgresDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}
