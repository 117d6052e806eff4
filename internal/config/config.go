package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	CORS     CORSConfig
	Requests RequestsConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver  string        `envconfig:"STORE_DRIVER" default:"mongo"`
	Timeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
}

// MongoConfig holds MongoDB connection settings. URI wins when set;
// otherwise an SRV URI is built from the credential parts.
type MongoConfig struct {
	URI      string `envconfig:"MONGODB_URI"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASS"`
	Cluster  string `envconfig:"DB_CLUSTER"`
	AppName  string `envconfig:"DB_APP_NAME" default:"Cluster0"`
	Database string `envconfig:"DB_NAME" default:"share-db"`
}

// DatabaseConfig holds PostgreSQL settings for the JSONB backend.
type DatabaseConfig struct {
	Host            string `envconfig:"PG_HOST" default:"localhost"`
	Port            int    `envconfig:"PG_PORT" default:"5432"`
	User            string `envconfig:"PG_USER" default:"postgres"`
	Password        string `envconfig:"PG_PASSWORD"`
	Database        string `envconfig:"PG_NAME" default:"foodshare"`
	MaxConnections  int    `envconfig:"PG_MAX_CONNECTIONS" default:"25"`
	MinConnections  int    `envconfig:"PG_MIN_CONNECTIONS" default:"5"`
	MaxConnLifetime int    `envconfig:"PG_MAX_CONN_LIFETIME" default:"300"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"` // "json" or "console"
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// RequestsConfig tunes the request workflow.
type RequestsConfig struct {
	// ValidateFoodReference rejects requests whose food does not exist.
	ValidateFoodReference bool `envconfig:"VALIDATE_FOOD_REFERENCE" default:"false"`
}

// S3Config holds AWS S3 configuration for seed files.
type S3Config struct {
	Enabled bool   `envconfig:"SEED_S3_ENABLED" default:"false"`
	Bucket  string `envconfig:"SEED_S3_BUCKET"`
	Region  string `envconfig:"SEED_S3_REGION" default:"us-east-1"`
	Prefix  string `envconfig:"SEED_S3_PREFIX" default:"seed/"` // Path prefix within bucket
}

// Load reads an optional .env file, then loads configuration from
// environment variables.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store timeout must be positive")
	}

	switch c.Store.Driver {
	case DriverMongo:
		if err := c.Mongo.validate(); err != nil {
			return err
		}
	case DriverPostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be mongo or postgres)", c.Store.Driver)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin is required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

func (c *MongoConfig) validate() error {
	if c.URI == "" {
		if c.User == "" || c.Password == "" || c.Cluster == "" {
			return fmt.Errorf("mongo URI or user, password and cluster are required")
		}
	}

	if c.Database == "" {
		return fmt.Errorf("mongo database name is required")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionURI returns the MongoDB connection URI.
func (c *MongoConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Cluster,
		Path:     "/",
		RawQuery: url.Values{"appName": []string{c.AppName}}.Encode(),
	}
	return u.String()
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{"disable"}}.Encode(),
	}
	return u.String()
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
