package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreREST     = "rest"
)

type Config struct {
	Port  string `mapstructure:"PORT"`
	Store string `mapstructure:"STORE"`

	DBDSN string `mapstructure:"DB_DSN"`

	BackendURL     string        `mapstructure:"BACKEND_URL"`
	BackendAPIKey  string        `mapstructure:"BACKEND_API_KEY"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`

	// SeedFile: fixture JSON para el store en memoria (solo dev)
	SeedFile string `mapstructure:"SEED_FILE"`

	OdinBaseURL string `mapstructure:"ODIN_BASE_URL"`
	OdinAPIKey  string `mapstructure:"ODIN_API_KEY"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	Locale         string        `mapstructure:"ROSTER_LOCALE"`
	SearchDebounce time.Duration `mapstructure:"SEARCH_DEBOUNCE"`
}

var keys = []string{
	"PORT", "STORE", "DB_DSN",
	"BACKEND_URL", "BACKEND_API_KEY", "BACKEND_TIMEOUT",
	"SEED_FILE", "ODIN_BASE_URL", "ODIN_API_KEY",
	"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	"ROSTER_LOCALE", "SEARCH_DEBOUNCE",
}

// Load lee .env (si existe) y variables de entorno; el entorno gana.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE", StoreMemory)
	v.SetDefault("BACKEND_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "pet-clinic-roster")
	v.SetDefault("ROSTER_LOCALE", "es")
	v.SetDefault("SEARCH_DEBOUNCE", "300ms")

	// sin BindEnv, Unmarshal no ve claves que solo están en el entorno
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("DB_DSN is required when STORE=%s", StorePostgres)
		}
	case StoreREST:
		if strings.TrimSpace(c.BackendURL) == "" {
			return fmt.Errorf("BACKEND_URL is required when STORE=%s", StoreREST)
		}
	default:
		return fmt.Errorf("STORE must be %q, %q or %q, got %q", StoreMemory, StorePostgres, StoreREST, c.Store)
	}

	if c.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive, got %s", c.BackendTimeout)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE must not be negative, got %s", c.SearchDebounce)
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	return nil
}

// Language parsea ROSTER_LOCALE (BCP 47).
func (c *Config) Language() (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(c.Locale))
	if err != nil {
		return language.Und, fmt.Errorf("ROSTER_LOCALE %q: %w", c.Locale, err)
	}
	return tag, nil
}

// AuthEnabled: con ODIN_BASE_URL se verifica el Bearer token; sin él, modo dev.
func (c *Config) AuthEnabled() bool {
	return strings.TrimSpace(c.OdinBaseURL) != ""
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
