package config

import (
	logger "github.com/Bparsons0904/goLogger"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultAdminEmail = "admin@example.com"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseDriver       string `mapstructure:"DB_DRIVER"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseSQLitePath   string `mapstructure:"DB_SQLITE_PATH"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTTTLHours          int    `mapstructure:"JWT_TTL_HOURS"`
	AdminEmail           string `mapstructure:"ADMIN_EMAIL"`
	MailFrom             string `mapstructure:"MAIL_FROM"`
	SMTPHost             string `mapstructure:"SMTP_HOST"`
	SMTPPort             int    `mapstructure:"SMTP_PORT"`
	SMTPUsername         string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword         string `mapstructure:"SMTP_PASSWORD"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
}

var ConfigInstance Config

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SQLITE_PATH",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
	"CORS_ALLOW_ORIGINS",
	"JWT_SECRET", "JWT_TTL_HOURS",
	"ADMIN_EMAIL", "MAIL_FROM", "SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
	"SCHEDULER_ENABLED",
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "production")
	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SQLITE_PATH", "matchly.db")
	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("JWT_TTL_HOURS", 24*30)
	viper.SetDefault("ADMIN_EMAIL", DefaultAdminEmail)
	viper.SetDefault("MAIL_FROM", "no-reply@matchly.local")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SCHEDULER_ENABLED", true)
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()
	setDefaults()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("JWT_SECRET")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"dbDriver", config.DatabaseDriver,
		"schedulerEnabled", config.SchedulerEnabled,
	)
	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	switch config.DatabaseDriver {
	case DriverPostgres:
		if config.DatabaseHost == "" || config.DatabaseName == "" || config.DatabaseUser == "" {
			return log.ErrMsg("Fatal error: DB_HOST, DB_NAME and DB_USER are required for postgres")
		}
	case DriverSQLite:
		if config.DatabaseSQLitePath == "" {
			return log.ErrMsg("Fatal error: DB_SQLITE_PATH is required for sqlite")
		}
	default:
		return log.Error("Fatal error: unsupported database driver", "driver", config.DatabaseDriver)
	}

	if config.JWTSecret == "" {
		return log.ErrMsg("Fatal error: JWT_SECRET is required")
	}

	if config.JWTTTLHours <= 0 {
		return log.Error("Fatal error: invalid JWT_TTL_HOURS", "hours", config.JWTTTLHours)
	}

	if config.AdminEmail == "" {
		return log.ErrMsg("Fatal error: ADMIN_EMAIL is required")
	}

	if config.SMTPHost != "" && config.SMTPPort <= 0 {
		return log.Error("Fatal error: invalid SMTP_PORT", "port", config.SMTPPort)
	}

	ConfigInstance = config
	return nil
}
