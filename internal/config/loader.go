package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "orso.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "orso.yml"

// EnvPrefix is the prefix for environment variable overrides. A double
// underscore separates nesting levels, so ORSO_CONNECTION__PASSWORD
// overrides connection.password.
const EnvPrefix = "ORSO_"

// LoadFromDir loads a Config from the given directory. It looks for
// orso.yaml or orso.yml, then overlays ORSO_-prefixed environment
// variables. Returns nil, nil if no config file is found (not an error
// condition).
func LoadFromDir(dir string) (*Config, error) {
	configPath := findConfigFile(dir)
	if configPath == "" {
		return nil, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads a Config from an explicit file path.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// findConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}

// FindProjectRoot walks up from the given directory to find a directory
// containing orso.yaml or orso.yml.
// Returns empty string if not found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if findConfigFile(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
