package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// REPAIRDESK_SERVER_JWTSECRET overrides server.jwtSecret.
const EnvPrefix = "REPAIRDESK"

var ErrMissingJWTSecret = errors.New("jwtSecret must be set in config")

type Config struct {
	Server struct {
		Host      string
		Port      int
		Subpath   string
		JWTSecret string
	}
	Postgres struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
}

// LoadConfig reads the JSON config at path (skipped when path is empty) and
// applies REPAIRDESK_* environment overrides on top.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	c.Server.Host = v.GetString("server.host")
	c.Server.Port = v.GetInt("server.port")
	c.Server.Subpath = normalizeSubpath(v.GetString("server.subpath"))
	c.Server.JWTSecret = v.GetString("server.jwtsecret")
	c.Postgres.DSN = v.GetString("postgres.dsn")
	c.Redis.Addr = v.GetString("redis.addr")
	c.Redis.Password = v.GetString("redis.password")
	c.Redis.DB = v.GetInt("redis.db")
	c.Log.Level = v.GetString("log.level")
	c.Log.Format = v.GetString("log.format")

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn must be set in config")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.subpath", "")
	v.SetDefault("server.jwtsecret", "")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func normalizeSubpath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(p, "/")
}
