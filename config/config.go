package config

import (
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	Timezone             string `mapstructure:"TIMEZONE"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	GroqAPIKey           string `mapstructure:"GROQ_API_KEY"`
	GroqModel            string `mapstructure:"GROQ_MODEL"`
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
		"CORS_ALLOW_ORIGINS", "JWT_SECRET", "TIMEZONE", "SCHEDULER_ENABLED",
		"GROQ_API_KEY", "GROQ_MODEL",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetDefault("TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("GROQ_MODEL", "llama-3.1-8b-instant")

	// Env vars win; files are the local-development fallback
	if viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST") {
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

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

// Location resolves the configured timezone. Everything that asks "what day
// is it" (reset job, streaks, step upserts) must anchor on this location.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.JWTSecret == "" {
		return log.Error("Fatal error: JWT_SECRET is required")
	}

	if _, err := time.LoadLocation(config.Timezone); err != nil {
		return log.Err("Fatal error: invalid TIMEZONE", err, "timezone", config.Timezone)
	}

	if config.GroqAPIKey == "" {
		log.Warn("GROQ_API_KEY not set, chat assistant replies will be disabled")
	}

	ConfigInstance = config
	return nil
}
