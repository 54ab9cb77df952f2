package database

// Config holds embedded database settings shared across bots.
type Config struct {
	// Path is the sqlite database file; empty disables the SQL layer.
	Path           string `yaml:"path" envconfig:"DB_PATH"`
	BusyTimeoutMS  int    `yaml:"busy_timeout_ms" envconfig:"DB_BUSY_TIMEOUT_MS"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}
