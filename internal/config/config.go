package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	Server struct {
		Addr           string   `mapstructure:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
		BodyLimit      string   `mapstructure:"body_limit"`
	} `mapstructure:"server"`
	HF struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
	} `mapstructure:"hf"`
	Catalog struct {
		File string `mapstructure:"file"`
	} `mapstructure:"catalog"`
	History struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
		DB     struct {
			Host     string `mapstructure:"host"`
			Port     int    `mapstructure:"port"`
			User     string `mapstructure:"user"`
			Password string `mapstructure:"password"`
			Name     string `mapstructure:"name"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"db"`
	} `mapstructure:"history"`
	TLS struct {
		Enable    bool     `mapstructure:"enable"`
		CertFile  string   `mapstructure:"cert_file"`
		KeyFile   string   `mapstructure:"key_file"`
		Hostnames []string `mapstructure:"hostnames"`
	} `mapstructure:"tls"`
}

// HistoryConnString builds the Postgres connection string for the history
// store. Only meaningful when History.Driver is "postgres".
func (c *Config) HistoryConnString() string {
	db := c.History.DB
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode,
	)
}

// LoadConfig loads the configuration from a file and the environment. When
// file is non-empty it names an explicit config file; otherwise config.yaml
// is searched for in . and ./config. A missing file is not an error: the
// defaults below describe a working local setup.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.body_limit", "1M")
	v.SetDefault("hf.base_url", "https://api-inference.huggingface.co")
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.path", "data/history.db")
	v.SetDefault("history.db.host", "localhost")
	v.SetDefault("history.db.port", 5432)
	v.SetDefault("history.db.user", "postgres")
	v.SetDefault("history.db.name", "methods_explorer")
	v.SetDefault("history.db.sslmode", "disable")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("AIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The inference token keeps its conventional name so existing
	// HF_API_KEY exports keep working.
	_ = v.BindEnv("hf.api_key", "HF_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.HF.BaseURL = normalizeBaseURL(config.HF.BaseURL)

	return &config, nil
}

// normalizeBaseURL ensures the inference base URL is in a predictable form.
// It removes any trailing slash and leaves the scheme and path intact, so
// users can paste the URL straight from the provider docs.
func normalizeBaseURL(input string) string {
	u := strings.TrimSpace(input)
	if strings.HasSuffix(u, "/") {
		u = strings.TrimRight(u, "/")
	}
	return u
}
