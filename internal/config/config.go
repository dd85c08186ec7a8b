package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
	"github.com/Alwanly/ttn-storage-pull/internal/storage"
)

// PullConfig drives a single CLI pull.
type PullConfig struct {
	AppName        string
	AccessKey      string
	TimeWindow     string
	APIVersion     models.APIVersion
	OutputDir      string
	Format         string
	RequestTimeout time.Duration
	V3BaseURL      string
	LogFormat      string
	LogLevel       string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Channel  string
	// Startup connection retry
	ConnectMaxRetries     int
	ConnectInitialBackoff time.Duration
	ConnectMaxBackoff     time.Duration
}

type GatewayConfig struct {
	ServerAddr     string
	RequestTimeout time.Duration
	V3BaseURL      string
	V2Domain       string
	Username       string
	Password       string
	// Redis is nil when REDIS_HOST is unset; notifications are then skipped.
	Redis *RedisConfig
}

// Storage returns the storage client settings carried by c.
func (c *PullConfig) Storage() storage.Config {
	return storage.Config{Timeout: c.RequestTimeout, V3BaseURL: c.V3BaseURL}
}

// Request builds the pull request described by c.
func (c *PullConfig) Request() models.PullRequest {
	return models.PullRequest{
		AppName:    c.AppName,
		AccessKey:  c.AccessKey,
		TimeWindow: c.TimeWindow,
		APIVersion: c.APIVersion,
		OutputDir:  c.OutputDir,
	}
}

func (c *GatewayConfig) Storage() storage.Config {
	return storage.Config{Timeout: c.RequestTimeout, V3BaseURL: c.V3BaseURL, V2Domain: c.V2Domain}
}

// pullEnv maps viper keys to the environment variables they read.
var pullEnv = map[string]string{
	"app":             "TTN_APP",
	"access_key":      "TTN_ACCESS_KEY",
	"last":            "TTN_WINDOW",
	"api_version":     "TTN_API_VERSION",
	"output_dir":      "TTN_OUTPUT_DIR",
	"format":          "TTN_FORMAT",
	"v3_base_url":     "TTN_V3_BASE_URL",
	"request_timeout": "REQUEST_TIMEOUT",
	"log_format":      "LOG_FORMAT",
	"log_level":       "LOG_LEVEL",
}

// NewPullViper returns a viper instance with CLI defaults and env bindings.
// Flags are bound on top of it by the caller.
func NewPullViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("last", "1d")
	v.SetDefault("api_version", "3")
	v.SetDefault("format", "json")
	v.SetDefault("v3_base_url", storage.DefaultV3BaseURL)
	v.SetDefault("request_timeout", storage.DefaultTimeout.String())
	v.SetDefault("log_format", "console")
	v.SetDefault("log_level", "warn")

	for key, env := range pullEnv {
		_ = v.BindEnv(key, env)
	}
	return v
}

// LoadPullConfig reads an optional config file (set with v.SetConfigFile)
// and resolves the CLI configuration.
func LoadPullConfig(v *viper.Viper) (*PullConfig, error) {
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	version, err := models.ParseAPIVersion(v.GetString("api_version"))
	if err != nil {
		return nil, &storage.ConfigurationError{Field: "APIVersion", Value: v.GetString("api_version")}
	}

	timeout, err := durationOrSeconds(v.GetString("request_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid request_timeout: %w", err)
	}

	return &PullConfig{
		AppName:        v.GetString("app"),
		AccessKey:      v.GetString("access_key"),
		TimeWindow:     v.GetString("last"),
		APIVersion:     version,
		OutputDir:      v.GetString("output_dir"),
		Format:         strings.ToLower(v.GetString("format")),
		RequestTimeout: timeout,
		V3BaseURL:      v.GetString("v3_base_url"),
		LogFormat:      v.GetString("log_format"),
		LogLevel:       v.GetString("log_level"),
	}, nil
}

// LoadGatewayConfig reads gateway config from the environment and an
// optional YAML file, falling back to defaults.
func LoadGatewayConfig(configFile string) (*GatewayConfig, error) {
	v := viper.New()
	v.SetDefault("gateway_addr", ":8090")
	v.SetDefault("request_timeout", storage.DefaultTimeout.String())
	v.SetDefault("ttn_v3_base_url", storage.DefaultV3BaseURL)
	v.SetDefault("ttn_v2_domain", storage.DefaultV2Domain)
	v.SetDefault("gateway_user", "gateway")
	v.SetDefault("gateway_password", "gatewaypass")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_channel", "ttn.storage.pull.completed")
	v.SetDefault("redis_connect_max_retries", 5)
	v.SetDefault("redis_connect_initial_backoff", "1")
	v.SetDefault("redis_connect_max_backoff", "30")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := readConfigFile(v); err != nil {
			return nil, err
		}
	}

	reqTimeout, err := durationOrSeconds(v.GetString("request_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	cfg := &GatewayConfig{
		ServerAddr:     v.GetString("gateway_addr"),
		RequestTimeout: reqTimeout,
		V3BaseURL:      v.GetString("ttn_v3_base_url"),
		V2Domain:       v.GetString("ttn_v2_domain"),
		Username:       v.GetString("gateway_user"),
		Password:       v.GetString("gateway_password"),
	}

	if host := v.GetString("redis_host"); host != "" {
		initial, err := durationOrSeconds(v.GetString("redis_connect_initial_backoff"))
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_CONNECT_INITIAL_BACKOFF: %w", err)
		}
		maxBackoff, err := durationOrSeconds(v.GetString("redis_connect_max_backoff"))
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_CONNECT_MAX_BACKOFF: %w", err)
		}
		cfg.Redis = &RedisConfig{
			Host:                  host,
			Port:                  v.GetInt("redis_port"),
			Password:              v.GetString("redis_password"),
			DB:                    v.GetInt("redis_db"),
			Channel:               v.GetString("redis_channel"),
			ConnectMaxRetries:     v.GetInt("redis_connect_max_retries"),
			ConnectInitialBackoff: initial,
			ConnectMaxBackoff:     maxBackoff,
		}
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// durationOrSeconds accepts Go durations ("90s", "2m") and bare integers,
// which are read as seconds like the rest of the service env vars.
func durationOrSeconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		return time.Duration(i) * time.Second, nil
	}
	return time.ParseDuration(s)
}
