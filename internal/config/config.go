package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token types accepted by AUTH_TOKEN_TYPE
const (
	TokenTypeJWT    = "jwt"
	TokenTypePaseto = "paseto"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Email     EmailConfig
	Turnstile TurnstileConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string
	Env             string // development or production
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	TrustedOrigins  []string // CORS allowed origins, derived from FrontendURL
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ChannelBinding string // "require" for Neon DB, empty for local
	AutoMigrate    bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	TokenType     string
	JWTSecret     []byte
	PasetoKey     []byte // must be 32 bytes for v4.local
	TokenDuration time.Duration
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	FromName     string
	FromAddress  string
	AdminEmail   string // receives contact form notifications
}

type TurnstileConfig struct {
	SecretKey string // empty disables the bot check
	VerifyURL string
	Timeout   time.Duration
}

type StorageConfig struct {
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
	PublicBaseURL  string // public URL prefix for uploaded objects
	MaxUploadBytes int64
	DefaultFolder  string
}

type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
}

// Load reads configuration from environment variables
// Call godotenv.Load() before this if using .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	frontendURL := strings.TrimSuffix(getEnv("FRONTEND_URL", "http://localhost:5173"), "/")

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			Env:             getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			FrontendURL:     frontendURL,
			TrustedOrigins:  []string{frontendURL, frontendURL + "/"},
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "advisory"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ChannelBinding: getEnv("DB_CHANNEL_BINDING", ""),
			AutoMigrate:    getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			TokenType:     strings.ToLower(getEnv("AUTH_TOKEN_TYPE", TokenTypeJWT)),
			JWTSecret:     []byte(getEnv("JWT_SECRET", "")),
			PasetoKey:     []byte(getEnv("PASETO_KEY", "")),
			TokenDuration: getExpiryEnv("JWT_EXPIRE", 7*24*time.Hour),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("EMAIL_HOST", ""),
			SMTPPort:     getEnv("EMAIL_PORT", "587"),
			SMTPUser:     getEnv("EMAIL_USER", ""),
			SMTPPassword: getEnv("EMAIL_PASSWORD", ""),
			FromName:     getEnv("EMAIL_FROM_NAME", "89T Corporate Advisors"),
			FromAddress:  getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
			AdminEmail:   getEnv("ADMIN_EMAIL", ""),
		},
		Turnstile: TurnstileConfig{
			SecretKey: getEnv("CLOUDFLARE_SECRET_KEY", ""),
			VerifyURL: getEnv("TURNSTILE_VERIFY_URL", "https://challenges.cloudflare.com/turnstile/v0/siteverify"),
			Timeout:   getDurationEnv("TURNSTILE_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			S3Bucket:       getEnv("S3_BUCKET", ""),
			S3Region:       getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:     getEnv("S3_ENDPOINT", ""),
			S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
			S3UsePathStyle: getBoolEnv("S3_USE_PATH_STYLE", false),
			PublicBaseURL:  strings.TrimSuffix(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
			MaxUploadBytes: int64(getIntEnv("UPLOAD_MAX_MB", 20)) << 20,
			DefaultFolder:  getEnv("UPLOAD_DEFAULT_FOLDER", "business-ally"),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getBoolEnv("RATE_LIMIT_ENABLED", true),
			MaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 10),
			Window:      getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.TokenType {
	case TokenTypeJWT:
		if len(c.Auth.JWTSecret) == 0 {
			return fmt.Errorf("JWT_SECRET is required when AUTH_TOKEN_TYPE=%s", TokenTypeJWT)
		}
	case TokenTypePaseto:
		// Validate PASETO key length (must be 32 bytes for v4.local)
		if len(c.Auth.PasetoKey) != 32 {
			return fmt.Errorf("PASETO_KEY must be exactly 32 bytes, got %d", len(c.Auth.PasetoKey))
		}
	default:
		return fmt.Errorf("unsupported AUTH_TOKEN_TYPE %q", c.Auth.TokenType)
	}

	if c.Auth.TokenDuration <= 0 {
		return fmt.Errorf("JWT_EXPIRE must be a positive duration")
	}

	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)

	// Add channel_binding if configured (required for Neon DB)
	if c.ChannelBinding != "" {
		connStr += fmt.Sprintf(" channel_binding=%s", c.ChannelBinding)
	}

	return connStr
}

// Address returns Redis connection address (host:port)
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment returns true unless the environment is production
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env != "production"
}

// Configured reports whether SMTP credentials are present
func (c *EmailConfig) Configured() bool {
	return c.SMTPHost != ""
}

// Configured reports whether an upload bucket is set
func (c *StorageConfig) Configured() bool {
	return c.S3Bucket != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

// getExpiryEnv reads a token lifetime such as "7d", "12h", "90m" or bare seconds
func getExpiryEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := ParseExpiry(value)
	if err != nil {
		return defaultValue
	}

	return d
}

// ParseExpiry parses day-suffixed durations ("7d"), Go durations ("36h")
// and plain integers interpreted as seconds.
func ParseExpiry(value string) (time.Duration, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q: %w", value, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	return d, nil
}
