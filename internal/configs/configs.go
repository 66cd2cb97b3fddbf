package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"task-tracker.com/task-tracker/internal/logger"
)

type Config struct {
	AppURL                 string   `validate:"required,hostname_port"`
	DatabaseDSN            string   `validate:"required"`
	RateLimit              int      `validate:"gt=0"`
	RedisAddr              string   `validate:"omitempty,hostname_port"`
	RedisRateLimitKey      string   `validate:"required"`
	CORSAllowOrigins       []string `validate:"dive,required"`
	ShutdownTimeoutSeconds int      `validate:"gt=0"`

	WebURL string `validate:"required,hostname_port"`
	Client ClientConfig

	Log logger.Config
}

// ClientConfig is what the web and terminal clients need to reach the API.
type ClientConfig struct {
	APIBaseURL        string `validate:"required,url"`
	APITimeoutSeconds int    `validate:"gt=0"`
}

func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "5000")
	webHost := getEnv("WEB_HOST", "127.0.0.1")
	webPort := getEnv("WEB_PORT", "3000")

	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	clientCfg, err := LoadClient(ClientFilePath())
	if err != nil {
		return Config{}, err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = getEnv("LOG_LEVEL", logCfg.Level)
	logCfg.Format = getEnv("LOG_FORMAT", logCfg.Format)
	logCfg.Output = getEnv("LOG_OUTPUT", logCfg.Output)
	logCfg.FilePath = getEnv("LOG_FILE_PATH", logCfg.FilePath)

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RateLimit:              rateLimit,
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		RedisRateLimitKey:      getEnv("REDIS_RATE_LIMIT_KEY", "task_tracker_rate"),
		CORSAllowOrigins:       getEnvAsList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		ShutdownTimeoutSeconds: shutdownTimeout,
		WebURL:                 fmt.Sprintf("%s:%s", webHost, webPort),
		Client:                 clientCfg,
		Log:                    logCfg,
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var structValidator = validator.New()

func validate(cfg Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	switch cfg.Log.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid configuration: LOG_OUTPUT must be stdout, file or both, got %q", cfg.Log.Output)
	}
	return nil
}

// Validate checks client settings after callers override them.
func (c ClientConfig) Validate() error {
	return validateClient(c)
}

func validateClient(cfg ClientConfig) error {
	if err := structValidator.Struct(cfg); err != nil {
		return fmt.Errorf("invalid client configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
