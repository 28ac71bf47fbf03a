package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all the configuration for the application.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	SMTP         SMTPConfig
	App          AppConfig
	Verification VerificationConfig
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig holds the Redis configuration.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type SMTPConfig struct {
	From     string `mapstructure:"from"`
	Password string `mapstructure:"password"`
	Username string `mapstructure:"username"`
	Port     int    `mapstructure:"port"`
	Host     string `mapstructure:"host"`
}

// AppConfig holds application-level settings. Key is the server-side secret
// used to sign email verification links; it is injected into the signed-URL
// codec at construction and never read from global state by business logic.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Key         string `mapstructure:"key"`
	URL         string `mapstructure:"url"`
	FrontendURL string `mapstructure:"frontendurl"`
}

// VerificationConfig controls the lifetime of signed email verification links.
type VerificationConfig struct {
	ExpireMinutes int `mapstructure:"expireminutes"`
}

// Load creates a new Config object from environment variables.
func Load() *Config {
	// --- Set up Viper ---
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Load .env into process environment for BindEnv to work with file-based envs
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ godotenv could not load .env: %v", err)
	}

	// Bind structured keys to environment variables
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("database.url", "DATABASE_URL")
	_ = viper.BindEnv("redis.url", "REDIS_URL")
	_ = viper.BindEnv("smtp.host", "SMTP_HOST")
	_ = viper.BindEnv("smtp.port", "SMTP_PORT")
	_ = viper.BindEnv("smtp.username", "SMTP_USERNAME")
	_ = viper.BindEnv("smtp.password", "SMTP_PASSWORD")
	_ = viper.BindEnv("smtp.from", "SMTP_FROM")
	_ = viper.BindEnv("app.name", "APP_NAME")
	_ = viper.BindEnv("app.key", "APP_KEY")
	_ = viper.BindEnv("app.url", "APP_URL")
	_ = viper.BindEnv("app.frontendurl", "APP_FRONTEND_URL")
	_ = viper.BindEnv("verification.expireminutes", "VERIFICATION_EXPIRE_MINUTES")

	// --- Read Configuration ---
	if err := viper.ReadInConfig(); err != nil {
		// Only log a warning if the .env file is not found.
		// We can still proceed if all config is set via environment variables.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("❌ Error reading config file: %s", err)
		} else {
			log.Printf("⚠️ .env file not found, relying on environment variables")
		}
	}

	// --- Unmarshal configuration into our struct ---
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("❌ Unable to decode config into struct: %v", err)
	}

	// --- Set default values ---
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.App.Name == "" {
		cfg.App.Name = "LearnHub"
	}
	if cfg.App.URL == "" {
		cfg.App.URL = "http://localhost:" + cfg.Server.Port
	}
	if cfg.App.FrontendURL == "" {
		cfg.App.FrontendURL = "http://localhost:3000"
	}
	if cfg.Verification.ExpireMinutes <= 0 {
		cfg.Verification.ExpireMinutes = 60
	}
	if cfg.App.Key == "" {
		log.Fatal("❌ APP_KEY environment variable is not set")
	}

	log.Println("✅ Configuration loaded successfully")
	return &cfg
}
