package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Firebase configuration.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseDatabaseURL     string `mapstructure:"FIREBASE_DATABASE_URL"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisBookingDB   int    `mapstructure:"REDIS_BOOKING_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// MongoDB (booking activity records).
	MongoURL string `mapstructure:"MONGO_URL"`

	// Nylas scheduling provider.
	NylasAPIKey          string `mapstructure:"NYLAS_API_KEY"`
	NylasAPIURL          string `mapstructure:"NYLAS_API_URL"`
	NylasSchedulerAPIURL string `mapstructure:"NYLAS_SCHEDULER_API_URL"`

	// Stripe checkout.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Lifetimes, in seconds.
	SessionTokenTTL   int `mapstructure:"SESSION_TOKEN_TTL"`
	AuthCookieTTL     int `mapstructure:"AUTH_COOKIE_TTL"`
	PendingBookingTTL int `mapstructure:"PENDING_BOOKING_TTL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("FIREBASE_DATABASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_BOOKING_DB", 0)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 1)
	viper.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	viper.SetDefault("NYLAS_API_URL", "https://api.us.nylas.com")
	viper.SetDefault("NYLAS_SCHEDULER_API_URL", "https://elements-staging.us.nylas.com")
	viper.SetDefault("SESSION_TOKEN_TTL", 900)
	viper.SetDefault("AUTH_COOKIE_TTL", 60*60*24*5)
	viper.SetDefault("PENDING_BOOKING_TTL", 60*30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
