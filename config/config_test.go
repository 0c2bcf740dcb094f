package config

import (
	"testing"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		ServerPort:         8080,
		DatabaseDriver:     DriverSQLite,
		DatabaseSQLitePath: "test.db",
		JWTSecret:          "secret",
		JWTTTLHours:        24,
		AdminEmail:         DefaultAdminEmail,
	}
}

func TestValidateConfig(t *testing.T) {
	log := logger.New("config_test")

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{
			name:      "valid sqlite config",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name: "valid postgres config",
			mutate: func(c *Config) {
				c.DatabaseDriver = DriverPostgres
				c.DatabaseHost = "localhost"
				c.DatabaseName = "matchly"
				c.DatabaseUser = "matchly"
			},
			wantError: false,
		},
		{
			name:      "invalid port",
			mutate:    func(c *Config) { c.ServerPort = 0 },
			wantError: true,
		},
		{
			name:      "postgres without host",
			mutate:    func(c *Config) { c.DatabaseDriver = DriverPostgres },
			wantError: true,
		},
		{
			name:      "unknown driver",
			mutate:    func(c *Config) { c.DatabaseDriver = "oracle" },
			wantError: true,
		},
		{
			name:      "missing jwt secret",
			mutate:    func(c *Config) { c.JWTSecret = "" },
			wantError: true,
		},
		{
			name:      "missing admin email",
			mutate:    func(c *Config) { c.AdminEmail = "" },
			wantError: true,
		},
		{
			name: "smtp host without port",
			mutate: func(c *Config) {
				c.SMTPHost = "smtp.example.com"
				c.SMTPPort = 0
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)

			err := validateConfig(config, log)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, config, GetConfig())
			}
		})
	}
}
