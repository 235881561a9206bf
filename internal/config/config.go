package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cookies CookiesConfig `mapstructure:"cookies"`
	Page    PageConfig    `mapstructure:"page"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Retries    int           `mapstructure:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// CookiesConfig names the cookies the client reads tokens from.
type CookiesConfig struct {
	AuthToken string `mapstructure:"auth_token"`
	CSRFToken string `mapstructure:"csrf_token"`
}

type PageConfig struct {
	// Path to a rendered admin page the shell binds against.
	File string `mapstructure:"file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the YAML config at path, overlays environment variables, and
// returns Config. A missing file is not an error: every knob has a default,
// so the client works out of the box against a local backend.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Environment variable override: API_BASE_URL -> api.base_url
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api/")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retries", 3)
	v.SetDefault("api.retry_delay", time.Second)
	v.SetDefault("cookies.auth_token", "auth_token")
	v.SetDefault("cookies.csrf_token", "csrftoken")
	v.SetDefault("page.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}
