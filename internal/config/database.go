package config

import "os"

const (
	sqlitePathEnv     = "SQLITE_PATH"
	defaultSQLitePath = "alarms.db"
)

type DatabaseConfig struct {
	SQLitePath string
}

func LoadDatabaseConfig() *DatabaseConfig {
	path := os.Getenv(sqlitePathEnv)
	if path == "" {
		path = defaultSQLitePath
	}

	return &DatabaseConfig{
		SQLitePath: path,
	}
}
