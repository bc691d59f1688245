// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/irislab/irismapper-admin/internal/config"
)

// MySQL builds the MySQL Data Source Name from the configuration.
func MySQL(cfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.Extras,
	)

	return out
}

// Postgres builds the PostgreSQL Data Source Name from the configuration.
func Postgres(cfg *config.Config) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Extras,
	)

	return out
}

// SQLite returns the SQLite database file from the configuration.
func SQLite(cfg *config.Config) string {
	if cfg.DB.File == "" {
		return "irismapper-admin.db"
	}

	return cfg.DB.File
}
