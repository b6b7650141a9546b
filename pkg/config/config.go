package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	// Required fields
	JWTSecretKey string `mapstructure:"jwt_secret_key"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional token settings
	JWTAlgorithm    string `mapstructure:"jwt_algorithm"`
	TokenTTLSeconds int    `mapstructure:"token_ttl_seconds"`

	// Optional password hashing settings
	BcryptCost int `mapstructure:"bcrypt_cost"`

	// Optional storage settings
	DBPath string `mapstructure:"db_path"`

	// Optional logging settings
	LogLevel string `mapstructure:"log_level"`

	// Static paths
	ConfigPath string
}

const (
	DefaultConfigPath   = "/etc/authgate/config.yml"
	DefaultDBPath       = "/var/lib/authgate/db.sqlite3"
	DefaultAPIHost      = "0.0.0.0"
	DefaultAPIPort      = 3001
	DefaultLogLevel     = "info"
	DefaultJWTAlgorithm = "HS256"
	DefaultTokenTTL     = 3600
	DefaultBcryptCost   = 10
)

func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("token_ttl_seconds", DefaultTokenTTL)
	v.SetDefault("bcrypt_cost", DefaultBcryptCost)

	// Allow environment variable overrides
	v.SetEnvPrefix("AUTHGATE")
	v.AutomaticEnv()
	for _, key := range []string{"jwt_secret_key", "api_host", "api_port", "db_path",
		"log_level", "jwt_algorithm", "token_ttl_seconds", "bcrypt_cost"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// The config file is optional unless explicitly requested; the service can
	// run on environment variables alone.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := os.IsNotExist(err) || errors.As(err, &notFound)
		if explicit || !missing {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	// The signing secret must come from the environment or a config file,
	// never from a default baked into the binary.
	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwt_secret_key is required")
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	if c.TokenTTLSeconds <= 0 {
		return fmt.Errorf("token_ttl_seconds must be positive")
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	return nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("AUTHGATE_DEV_MODE") == "1"
}
