package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	GitHub struct {
		// Token auth and App auth are alternatives; App wins when both
		// are configured.
		Token             string `mapstructure:"token"`
		AppID             string `mapstructure:"app_id"`
		AppPrivateKey     string `mapstructure:"app_private_key"`
		AppPrivateKeyPath string `mapstructure:"app_private_key_path"`
		AppInstallationID string `mapstructure:"app_installation_id"`
		DefaultRepo       string `mapstructure:"default_repo"`
	} `mapstructure:"github"`

	Classifier struct {
		Provider string `mapstructure:"provider"` // "azure" or "gemini"

		Azure struct {
			Endpoint   string `mapstructure:"endpoint"`
			APIKey     string `mapstructure:"api_key"`
			APIVersion string `mapstructure:"api_version"`
			Deployment string `mapstructure:"deployment"`
		} `mapstructure:"azure"`

		Gemini struct {
			APIKey string `mapstructure:"api_key"`
			Model  string `mapstructure:"model"`
		} `mapstructure:"gemini"`

		// PromptTemplate optionally overrides the embedded prompt; path
		// resolution follows LoadPromptContent.
		PromptTemplate string `mapstructure:"prompt_template"`

		// MaxBodyRunes caps the discussion body fed to the prompt.
		MaxBodyRunes int `mapstructure:"max_body_runes"`
	} `mapstructure:"classifier"`

	Catalog struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"catalog"`

	Server struct {
		Addr      string `mapstructure:"addr"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"server"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	RequestTimeoutSeconds int `mapstructure:"request_timeout"`
	RunIntervalMinutes    int `mapstructure:"run_interval_minutes"`
}

// RequestTimeout returns the upstream call timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// RunInterval returns the periodic scan interval as a duration.
func (c *Config) RunInterval() time.Duration {
	return time.Duration(c.RunIntervalMinutes) * time.Minute
}

func LoadConfig() (*Config, error) {
	// Load .env first so the bindings below see its values. Missing
	// .env is not an error.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	// Bind the flat environment variable names the deployment exposes
	// to their nested config keys.
	viper.BindEnv("github.token", "TOKEN")
	viper.BindEnv("github.app_id", "APP_ID")
	viper.BindEnv("github.app_private_key", "APP_PRIVATE_KEY")
	viper.BindEnv("github.app_private_key_path", "APP_PRIVATE_KEY_PATH")
	viper.BindEnv("github.app_installation_id", "APP_INSTALLATION_ID")
	viper.BindEnv("github.default_repo", "DEFAULT_REPO")
	viper.BindEnv("classifier.azure.endpoint", "AZURE_OPENAI_ENDPOINT")
	viper.BindEnv("classifier.azure.api_key", "AZURE_OPENAI_KEY")
	viper.BindEnv("classifier.azure.api_version", "AZURE_OPENAI_API_VERSION")
	viper.BindEnv("classifier.azure.deployment", "AZURE_OPENAI_DEPLOYMENT")
	viper.BindEnv("classifier.gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("server.secret_key", "SECRET_KEY")
	viper.BindEnv("redis.address", "REDIS_ADDRESS")
	viper.BindEnv("request_timeout", "REQUEST_TIMEOUT")
	viper.BindEnv("run_interval_minutes", "RUN_INTERVAL_MINUTES")

	viper.SetDefault("github.default_repo", "azure-ai-foundry/discussions")
	viper.SetDefault("classifier.provider", "azure")
	viper.SetDefault("classifier.max_body_runes", 6000)
	viper.SetDefault("catalog.path", "tags.json")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("worker.concurrency", 5)
	viper.SetDefault("worker.queues", map[string]int{"default": 1})
	viper.SetDefault("request_timeout", 30)
	viper.SetDefault("run_interval_minutes", 1)

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; env vars alone are a valid setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
