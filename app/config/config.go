package config

import (
	"fmt"
	"os"

	kconfig "github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	_ "github.com/go-kratos/kratos/v2/encoding/yaml"
)

const (
	DriverSQLite = "sqlite"
	DriverNeo4j  = "neo4j"
)

type Config struct {
	HTTP  HTTP  `json:"http" yaml:"http"`
	Log   Log   `json:"log" yaml:"log"`
	Store Store `json:"store" yaml:"store"`
}

type HTTP struct {
	Addr string `json:"addr" yaml:"addr"`
}

type Log struct {
	Level string `json:"level" yaml:"level"`
}

type Store struct {
	Driver string `json:"driver" yaml:"driver"` // "sqlite" or "neo4j"
	Path   string `json:"path" yaml:"path"`
	Neo4j  Neo4j  `json:"neo4j" yaml:"neo4j"`
}

type Neo4j struct {
	URI      string `json:"uri" yaml:"uri"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		HTTP: HTTP{Addr: "0.0.0.0:8080"},
		Log:  Log{Level: "info"},
		Store: Store{
			Driver: DriverSQLite,
			Path:   "tasks.db",
			Neo4j: Neo4j{
				URI:      "neo4j://localhost:7687",
				Username: "neo4j",
				Password: "password",
			},
		},
	}
}

// Load builds the configuration from defaults, then the optional YAML file
// at path, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		c := kconfig.New(kconfig.WithSource(file.NewSource(path)))
		defer c.Close()

		if err := c.Load(); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := c.Scan(cfg); err != nil {
			return nil, fmt.Errorf("scan config %s: %w", path, err)
		}
	}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Store.Driver = getEnv("DB_DRIVER", cfg.Store.Driver)
	cfg.Store.Path = getEnv("DB_PATH", cfg.Store.Path)
	cfg.Store.Neo4j.URI = getEnv("NEO4J_URI", cfg.Store.Neo4j.URI)
	cfg.Store.Neo4j.Username = getEnv("NEO4J_USER", cfg.Store.Neo4j.Username)
	cfg.Store.Neo4j.Password = getEnv("NEO4J_PASSWORD", cfg.Store.Neo4j.Password)

	switch cfg.Store.Driver {
	case DriverSQLite, DriverNeo4j:
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Store.Driver)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
