package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
)

const (
	debugHost = "127.0.0.1"

	defaultPort          = 8080
	defaultSecretFile    = "secret_key"
	defaultTemplates     = "templates"
	defaultAssets        = "assets"
	defaultMaxUploadSize = "10M"
	defaultSessionMaxAge = 7 * 24 * time.Hour
)

type Config struct {
	Database pg.Options
	App      App
}

type App struct {
	Host string
	Port int

	// Production enables HTML minification and hides error details. It is
	// on unless the file turns it off, and the -debug flag always turns it off.
	Production bool

	SecretFile    string
	Templates     string
	Assets        string
	MaxUploadSize string
	SessionMaxAge string
	SanitizeBody  bool
	LogQueries    bool
	BcryptCost    int
}

// Load decodes the TOML file at path and fills defaults. In debug mode the
// server binds to loopback only and production features are disabled.
func Load(path string, debug bool) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.setDefaults()
	if !md.IsDefined("App", "Production") {
		cfg.App.Production = true
	}

	if debug {
		cfg.App.Host = debugHost
		cfg.App.Production = false
	}

	if _, err := cfg.App.SessionTTL(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.App.Port == 0 {
		c.App.Port = defaultPort
	}
	if c.App.SecretFile == "" {
		c.App.SecretFile = defaultSecretFile
	}
	if c.App.Templates == "" {
		c.App.Templates = defaultTemplates
	}
	if c.App.Assets == "" {
		c.App.Assets = defaultAssets
	}
	if c.App.MaxUploadSize == "" {
		c.App.MaxUploadSize = defaultMaxUploadSize
	}
}

// SessionTTL parses SessionMaxAge, falling back to one week.
func (a App) SessionTTL() (time.Duration, error) {
	if a.SessionMaxAge == "" {
		return defaultSessionMaxAge, nil
	}

	ttl, err := time.ParseDuration(a.SessionMaxAge)
	if err != nil {
		return 0, fmt.Errorf("failed to parse SessionMaxAge: %w", err)
	}

	return ttl, nil
}

// Addr is the listen address of the HTTP server.
func (a App) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// ReadSecret loads the session signing key. The key is read once at start-up.
func (a App) ReadSecret() ([]byte, error) {
	key, err := os.ReadFile(a.SecretFile)
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("secret file %s is empty", a.SecretFile)
	}

	return key, nil
}
