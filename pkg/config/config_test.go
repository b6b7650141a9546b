package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnvOnly(t *testing.T) {
	t.Setenv("AUTHGATE_JWT_SECRET_KEY", "env-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.JWTSecretKey != "env-secret" {
		t.Fatalf("unexpected secret: %q", cfg.JWTSecretKey)
	}
	if cfg.APIPort != DefaultAPIPort {
		t.Fatalf("expected default port %d, got %d", DefaultAPIPort, cfg.APIPort)
	}
	if cfg.JWTAlgorithm != DefaultJWTAlgorithm {
		t.Fatalf("expected default algorithm, got %q", cfg.JWTAlgorithm)
	}
	if cfg.TokenTTL() != time.Duration(DefaultTokenTTL)*time.Second {
		t.Fatalf("unexpected token TTL: %v", cfg.TokenTTL())
	}
	if cfg.BcryptCost != DefaultBcryptCost {
		t.Fatalf("expected default bcrypt cost, got %d", cfg.BcryptCost)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
jwt_secret_key: file-secret
api_port: 4000
token_ttl_seconds: 600
bcrypt_cost: 12
cors_origins:
  - https://app.example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.JWTSecretKey != "file-secret" {
		t.Fatalf("unexpected secret: %q", cfg.JWTSecretKey)
	}
	if cfg.APIPort != 4000 {
		t.Fatalf("unexpected port: %d", cfg.APIPort)
	}
	if cfg.TokenTTL() != 10*time.Minute {
		t.Fatalf("unexpected token TTL: %v", cfg.TokenTTL())
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("unexpected bcrypt cost: %d", cfg.BcryptCost)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Setenv("AUTHGATE_JWT_SECRET_KEY", "env-secret")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Fatal("expected an error for an explicitly requested missing file")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("AUTHGATE_JWT_SECRET_KEY", "")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "jwt_secret_key") {
		t.Fatalf("expected a missing-secret error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			JWTSecretKey:    "secret",
			JWTAlgorithm:    "HS256",
			TokenTTLSeconds: 3600,
			BcryptCost:      10,
			DBPath:          "/tmp/db.sqlite3",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecretKey = "" }, wantErr: true},
		{name: "unknown algorithm", mutate: func(c *Config) { c.JWTAlgorithm = "none" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.TokenTTLSeconds = 0 }, wantErr: true},
		{name: "cost too high", mutate: func(c *Config) { c.BcryptCost = 99 }, wantErr: true},
		{name: "cost too low", mutate: func(c *Config) { c.BcryptCost = 2 }, wantErr: true},
		{name: "missing db path", mutate: func(c *Config) { c.DBPath = "" }, wantErr: true},
		{name: "HS512 accepted", mutate: func(c *Config) { c.JWTAlgorithm = "HS512" }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
