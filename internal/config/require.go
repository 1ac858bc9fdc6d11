package config

import (
	"fmt"
	"log"
)

// Validate reports the first missing setting the chosen driver needs.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("missing required env DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}

	if c.DBDriver != DriverMemory {
		if len(c.JWTAccessSecret) == 0 {
			return fmt.Errorf("missing required env JWT_SECRET")
		}
		if len(c.JWTRefreshSecret) == 0 {
			return fmt.Errorf("missing required env JWT_REFRESH_SECRET")
		}
	}
	return nil
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
