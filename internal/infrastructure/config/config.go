package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Storage StorageConfig
	Auth    AuthConfig
	OTLP    OTLPConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver             string
	URI                string
	Database           string
	ProductsCollection string
	OffersCollection   string
	ConnectTimeout     time.Duration
}

// StorageConfig points at the bucket holding product and offer images.
// An empty Bucket selects the in-memory image store.
type StorageConfig struct {
	Bucket          string
	CredentialsFile string
}

type AuthConfig struct {
	JWTSecret string
	Disabled  bool
}

type OTLPConfig struct {
	Endpoint      string
	ServiceName   string
	Environment   string
	ExportEnabled bool
}

// LoadConfig loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", slog.String("error", err.Error()))
	}

	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8080"),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver:             getEnv("STORE_DRIVER", StoreDriverMongo),
			URI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:           getEnv("MONGO_DATABASE", "catalog"),
			ProductsCollection: getEnv("MONGO_PRODUCTS_COLLECTION", "products"),
			OffersCollection:   getEnv("MONGO_OFFERS_COLLECTION", "offers"),
			ConnectTimeout:     getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Bucket:          getEnv("STORAGE_BUCKET", ""),
			CredentialsFile: getEnv("STORAGE_CREDENTIALS_FILE", "serviceAccountKey.json"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			Disabled:  getEnvBool("AUTH_DISABLED", false),
		},
		OTLP: OTLPConfig{
			Endpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:   getEnv("OTEL_SERVICE_NAME", "catalog-api"),
			Environment:   getEnv("OTEL_ENVIRONMENT", "development"),
			ExportEnabled: getEnvBool("OTEL_EXPORT_ENABLED", true),
		},
	}
}

// Validate rejects combinations the server cannot start with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMongo, StoreDriverMemory:
	default:
		return errors.New("STORE_DRIVER must be \"mongo\" or \"memory\"")
	}
	if !c.Auth.Disabled && c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required unless AUTH_DISABLED=true")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
