package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageBadger   = "badger"
	StorageDynamoDB = "dynamodb"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"serverAddress"`
	Environment   string `yaml:"environment"`

	// Lambda configuration
	IsLambda bool `yaml:"isLambda"`

	// Logging
	LogLevel string `yaml:"logLevel"`
	LogFile  string `yaml:"logFile"`

	// Snapshot storage
	StorageBackend string        `yaml:"storageBackend"`
	StoragePath    string        `yaml:"storagePath"`
	PersistTimeout time.Duration `yaml:"persistTimeout"`
	SeedFile       string        `yaml:"seedFile"`

	// AWS configuration
	AWSRegion     string `yaml:"awsRegion"`
	DynamoDBTable string `yaml:"dynamodbTable"`
	EventBusName  string `yaml:"eventBusName"`

	// Authentication
	JWTSecret          string `yaml:"jwtSecret"`
	JWTIssuer          string `yaml:"jwtIssuer"`
	RateLimitPerMinute int    `yaml:"rateLimitPerMinute"`

	// Feature flags
	EnableEvents   bool     `yaml:"enableEvents"`
	EnableMetrics  bool     `yaml:"enableMetrics"`
	EnableCORS     bool     `yaml:"enableCors"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		ServerAddress:      ":8080",
		Environment:        "development",
		LogLevel:           "info",
		StorageBackend:     StorageMemory,
		StoragePath:        "./data",
		PersistTimeout:     5 * time.Second,
		AWSRegion:          "us-west-2",
		DynamoDBTable:      "journeybuilder",
		EventBusName:       "journeybuilder-events",
		JWTIssuer:          "journeybuilder",
		RateLimitPerMinute: 100,
		EnableMetrics:      true,
		EnableCORS:         true,
		AllowedOrigins:     []string{"*"},
	}
}

// LoadConfig loads configuration: defaults, then the YAML file named by
// CONFIG_FILE if set, then environment variables.
func LoadConfig() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}
	cfg.overlayEnv()

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) overlayEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.IsLambda = getEnvBool("IS_LAMBDA", c.IsLambda || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "")

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)

	c.StorageBackend = getEnv("STORAGE_BACKEND", c.StorageBackend)
	c.StoragePath = getEnv("STORAGE_PATH", c.StoragePath)
	c.PersistTimeout = getEnvDuration("PERSIST_TIMEOUT", c.PersistTimeout)
	c.SeedFile = getEnv("SEED_FILE", c.SeedFile)

	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", c.DynamoDBTable))
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)

	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)

	c.EnableEvents = getEnvBool("ENABLE_EVENTS", c.EnableEvents)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.AllowedOrigins)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StorageBadger:
		if c.StoragePath == "" {
			return fmt.Errorf("STORAGE_PATH is required for the badger backend")
		}
	case StorageDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the dynamodb backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.EnableEvents && c.EventBusName == "" {
		return fmt.Errorf("EVENT_BUS_NAME is required when events are enabled")
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("750ms") or whole milliseconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

// getEnvList splits a comma separated variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
