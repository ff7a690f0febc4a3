// Package config reads the server configuration file: the listen address,
// the PostgreSQL catalogs to expose, statically declared catalogs, and
// access control grants.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Listen    string     `mapstructure:"listen"`
	Port      string     `mapstructure:"port"`
	Databases []Database `mapstructure:"databases"`
	Catalogs  []Catalog  `mapstructure:"catalogs"`
	Grants    []Grant    `mapstructure:"grants"`
}

// Database exposes a live PostgreSQL database as one engine catalog.
type Database struct {
	Catalog string `mapstructure:"catalog"`
	URI     string `mapstructure:"uri"`
}

// Catalog declares a static catalog in the configuration file, used for
// engines whose metadata is pushed rather than queried.
type Catalog struct {
	Name   string  `mapstructure:"name"`
	Tables []Table `mapstructure:"tables"`
}

type Table struct {
	Schema  string   `mapstructure:"schema"`
	Name    string   `mapstructure:"name"`
	Columns []Column `mapstructure:"columns"`
}

type Column struct {
	Name    string `mapstructure:"name"`
	Type    string `mapstructure:"type"`
	Hidden  bool   `mapstructure:"hidden"`
	Comment string `mapstructure:"comment"`
}

// Grant authorizes a user for catalogs and schemas matching the given
// regular expressions. No grants in the file means all access is allowed.
type Grant struct {
	User    string `mapstructure:"user"`
	Catalog string `mapstructure:"catalog"`
	Schema  string `mapstructure:"schema"`
}

// Load reads the configuration file. A missing file yields defaults, so
// the server can start with catalogs registered later.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("metaview")
		v.AddConfigPath("/etc/metaview")
		v.AddConfigPath(".")
	}
	v.SetDefault("listen", "")
	v.SetDefault("port", "8550")

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			cfg.Port = "8550"
			return cfg, nil
		}
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}
