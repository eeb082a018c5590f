// Package config loads project configuration from orso.yaml and the
// ORSO_-prefixed environment. It is decoupled from CLI concerns so any
// embedding tool can reuse it.
package config

import (
	"fmt"
	"strings"

	"github.com/orso-db/orso/pkg/adapter"
	"github.com/orso-db/orso/pkg/core"
	"github.com/orso-db/orso/pkg/migrate"
	"github.com/orso-db/orso/pkg/model"
)

// ConnectionConfig holds database connection configuration.
type ConnectionConfig struct {
	Type string `koanf:"type"` // sqlite, postgres

	// File-based databases (SQLite)
	Path string `koanf:"path"`

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// Validate checks if the connection configuration is valid.
// It uses the adapter registry to determine which types are available.
func (c *ConnectionConfig) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("connection type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(c.Type)) {
		return fmt.Errorf("unknown connection type %q (available: %s)",
			c.Type, strings.Join(adapter.ListAdapters(), ", "))
	}
	return nil
}

// AdapterConfig converts the connection block to an adapter.Config.
func (c *ConnectionConfig) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     strings.ToLower(c.Type),
		Path:     c.Path,
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Database,
		Username: c.User,
		Password: c.Password,
		Options:  c.Options,
	}
}

// MigrationConfig holds backup retention configuration.
type MigrationConfig struct {
	MaxBackups    int    `koanf:"max_backups"`
	RetentionDays int    `koanf:"retention_days"`
	Suffix        string `koanf:"suffix"`
}

// MigrateConfig converts the migration block to a migrate.Config.
func (m *MigrationConfig) MigrateConfig() migrate.Config {
	if m == nil {
		return migrate.DefaultConfig()
	}
	return migrate.Config{
		MaxBackups:    m.MaxBackups,
		RetentionDays: m.RetentionDays,
		Suffix:        m.Suffix,
	}
}

// FieldConfig declares one column of a model in the config file.
type FieldConfig struct {
	Name       string `koanf:"name"`
	Type       string `koanf:"type"`
	Nullable   bool   `koanf:"nullable"`
	Unique     bool   `koanf:"unique"`
	PrimaryKey bool   `koanf:"primary_key"`
	Compressed bool   `koanf:"compressed"`
	// References holds a "table.column" foreign key target.
	References string `koanf:"references"`
}

// ModelConfig declares one model in the config file.
type ModelConfig struct {
	Table  string        `koanf:"table"`
	Fields []FieldConfig `koanf:"fields"`
}

// Definition converts a declared model to a model.Definition.
func (m *ModelConfig) Definition() (model.Definition, error) {
	fields := make([]model.Field, len(m.Fields))
	for i, f := range m.Fields {
		ft, err := core.ParseFieldType(f.Type)
		if err != nil {
			return model.Definition{}, fmt.Errorf("model %s field %s: %w", m.Table, f.Name, err)
		}
		fields[i] = model.Field{
			Name:       f.Name,
			Type:       ft,
			Nullable:   f.Nullable,
			Unique:     f.Unique,
			PrimaryKey: f.PrimaryKey,
			ForeignKey: f.References,
			Compressed: f.Compressed,
		}
	}

	def := model.New(m.Table, fields...)
	if err := def.Validate(); err != nil {
		return model.Definition{}, err
	}
	return def, nil
}

// Config is the full project configuration.
type Config struct {
	Connection ConnectionConfig `koanf:"connection"`
	Migration  *MigrationConfig `koanf:"migration"`
	Models     []ModelConfig    `koanf:"models"`
}

// Definitions converts every declared model, preserving file order.
func (c *Config) Definitions() ([]model.Definition, error) {
	defs := make([]model.Definition, 0, len(c.Models))
	for i := range c.Models {
		def, err := c.Models[i].Definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
