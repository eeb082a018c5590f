package config

// Default configuration values.
const (
	DefaultConnectionType = "sqlite"
	DefaultSQLitePath     = "orso.db"
	DefaultPostgresPort   = 5432
)

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c == nil {
		return
	}
	c.Connection.ApplyDefaults()
}

// ApplyDefaults applies type-specific defaults to a connection block.
func (c *ConnectionConfig) ApplyDefaults() {
	if c == nil {
		return
	}
	if c.Type == "" {
		c.Type = DefaultConnectionType
	}

	switch c.Type {
	case "sqlite":
		if c.Path == "" {
			c.Path = DefaultSQLitePath
		}
	case "postgres":
		if c.Port == 0 {
			c.Port = DefaultPostgresPort
		}
		if c.Host == "" {
			c.Host = "localhost"
		}
	}
}
