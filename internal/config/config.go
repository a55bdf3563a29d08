package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string
	Debug   bool

	AWSRegion       string
	AWSEndpointURL  string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID  string
	AWSSecretKey    string
	DynamoTables    DynamoTables
	DynamoBootstrap bool

	BaseURL            string
	VerificationMaxAge int // seconds; 0 falls back to the domain default
	BcryptCost         int

	SNSRegion               string
	SNSVerificationTopicARN string

	JWTPublicKeyPath string
	AllowedOrigins   []string // CORS allowed origins
	RateLimitRPS     float64
	RateLimitBurst   int
}

// DynamoTables holds the DynamoDB table name for each entity.
// An empty name means the table is not configured.
type DynamoTables struct {
	VerificationRequests string
	Users                string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		Debug:          getEnvBool("DEBUG", false),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			VerificationRequests: getEnv("DYNAMO_TABLE_VERIFICATION_REQUESTS", "verification_requests"),
			Users:                getEnv("DYNAMO_TABLE_USERS", ""),
		},
		DynamoBootstrap:         getEnvBool("DYNAMO_BOOTSTRAP", false),
		BaseURL:                 strings.TrimRight(getEnv("BASE_URL", "http://localhost:3000"), "/"),
		VerificationMaxAge:      getEnvInt("VERIFICATION_MAX_AGE_SECONDS", 0),
		BcryptCost:              getEnvInt("BCRYPT_COST", 10),
		SNSRegion:               getEnv("SNS_REGION", "us-east-1"),
		SNSVerificationTopicARN: getEnv("SNS_VERIFICATION_TOPIC_ARN", ""),
		JWTPublicKeyPath:        getEnv("JWT_PUBLIC_KEY_PATH", ""),
		AllowedOrigins:          strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		RateLimitRPS:            getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:          getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
