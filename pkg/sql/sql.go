// Package sql contains helper functions for opening postgres connections.
package sql

import (
	"database/sql"
	"fmt"

	"github.com/glimpsesocial/glimpse/pkg/conf"
)

// Open opens a new postgres connection using the config.
func Open(config conf.PostgresConf) (*sql.DB, error) {
	return sql.Open(
		"postgres",
		fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			config.Host,
			config.Port,
			config.User,
			config.Password,
			config.Database,
			config.SSL,
		),
	)
}
