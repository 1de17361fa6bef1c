package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	DSN string
}

// PayMongoConfig holds the payment-link gateway settings. AuthKey is the
// pre-encoded value placed after "Basic " on outgoing requests.
type PayMongoConfig struct {
	BaseURL string
	AuthKey string
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// MinioConfig holds the object storage settings for store images.
type MinioConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	UseSSL        bool
}

// Config is the full application configuration.
type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	PayMongo       PayMongoConfig
	SMTP           SMTPConfig
	Minio          MinioConfig
	OperatorAPIKey string
	// OrderPrepTime is added to the order creation time to produce the
	// ready-by estimate quoted in the confirmation email.
	OrderPrepTime time.Duration
}

// Load reads configuration from the environment. Call godotenv.Load first if
// a .env file should be honored.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("PAYMONGO_API_URL", "https://api.paymongo.com/v1")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MINIO_BUCKET", "store-images")
	v.SetDefault("MINIO_USE_SSL", true)
	v.SetDefault("ORDER_PREP_TIME", "45m")

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			DSN: v.GetString("DATABASE_URL"),
		},
		PayMongo: PayMongoConfig{
			BaseURL: v.GetString("PAYMONGO_API_URL"),
			AuthKey: v.GetString("PAYMONGO_AUTH"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Minio: MinioConfig{
			Endpoint:      v.GetString("MINIO_ENDPOINT"),
			AccessKey:     v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:     v.GetString("MINIO_SECRET_KEY"),
			Bucket:        v.GetString("MINIO_BUCKET"),
			PublicBaseURL: v.GetString("MINIO_PUBLIC_URL"),
			UseSSL:        v.GetBool("MINIO_USE_SSL"),
		},
		OperatorAPIKey: v.GetString("OPERATOR_API_KEY"),
		OrderPrepTime:  v.GetDuration("ORDER_PREP_TIME"),
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.PayMongo.AuthKey == "" {
		return nil, fmt.Errorf("PAYMONGO_AUTH is required")
	}
	return cfg, nil
}
