package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	App    AppConfig
	Square SquareConfig
	LLM    LLMConfig
	Data   DataConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"120s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"store-insights-go"`
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// SquareConfig holds the commerce provider settings. The access token comes
// from the OAuth flow, which lives outside this service.
type SquareConfig struct {
	AccessToken string        `envconfig:"SQUARE_ACCESS_TOKEN" default:""`
	TestMode    bool          `envconfig:"SQUARE_TEST_MODE" default:"true"`
	Version     string        `envconfig:"SQUARE_VERSION" default:"2023-08-16"`
	Timeout     time.Duration `envconfig:"SQUARE_TIMEOUT" default:"12s"`
	MaxRetry    time.Duration `envconfig:"SQUARE_MAX_RETRY" default:"20s"`
}

// LLMConfig holds the assistant gateway settings.
type LLMConfig struct {
	GatewayURL string        `envconfig:"LLM_GATEWAY_URL" default:""`
	APIKey     string        `envconfig:"LLM_API_KEY" default:""`
	Model      string        `envconfig:"LLM_MODEL" default:""`
	Mock       bool          `envconfig:"USE_MOCK_LLM" default:"false"`
	Timeout    time.Duration `envconfig:"LLM_TIMEOUT" default:"12s"`
	MaxRetry   time.Duration `envconfig:"LLM_MAX_RETRY" default:"20s"`
}

// DataConfig holds offline snapshot settings for demo runs without provider
// credentials.
type DataConfig struct {
	SnapshotPath string `envconfig:"SNAPSHOT_PATH" default:""`
	MockSeed     int64  `envconfig:"MOCK_SEED" default:"1"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
