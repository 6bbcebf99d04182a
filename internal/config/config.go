package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Stripe StripeConfig
	OpenAI OpenAIConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// Store backends. Airtable keeps the historical blind-append contract;
// Postgres provides a real conditional insert keyed by normalized email.
const (
	BackendAirtable = "airtable"
	BackendPostgres = "postgres"
)

type StoreConfig struct {
	Backend  string
	Airtable AirtableConfig
	Database DatabaseConfig
}

type AirtableConfig struct {
	BaseURL string
	BaseID  string
	APIKey  string
	Table   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type StripeConfig struct {
	WebhookSecret string
	Tolerance     time.Duration
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", BackendAirtable),
			Airtable: AirtableConfig{
				BaseURL: getEnv("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"),
				BaseID:  getEnv("AIRTABLE_BASE_ID", ""),
				APIKey:  getEnv("AIRTABLE_API_KEY", ""),
				Table:   getEnv("AIRTABLE_TABLE", "premium_users"),
			},
			Database: DatabaseConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", "postgres"),
				DBName:   getEnv("DB_NAME", "cvcoach"),
			},
		},
		Stripe: StripeConfig{
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			Tolerance:     getEnvAsDuration("STRIPE_TOLERANCE", "5m"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.2),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", "45s"),
		},
	}
}

// Validate runs once at process start. Components receive values from this
// struct and never read the environment themselves.
func (c *Config) Validate() error {
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}

	switch c.Store.Backend {
	case BackendAirtable:
		if c.Store.Airtable.BaseID == "" {
			return fmt.Errorf("AIRTABLE_BASE_ID is required for the airtable store backend")
		}
		if c.Store.Airtable.APIKey == "" {
			return fmt.Errorf("AIRTABLE_API_KEY is required for the airtable store backend")
		}
	case BackendPostgres:
		// DSN parts all have defaults.
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Store.Database.Host,
		c.Store.Database.Port,
		c.Store.Database.User,
		c.Store.Database.Password,
		c.Store.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
