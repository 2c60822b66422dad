// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// SchedulerConfig provides Redis/asynq settings shared by the queue client and worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// EmailConfig provides SMTP settings for the email channel.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// SMSConfig provides settings for the SMS/telephony gateway.
type SMSConfig interface {
	GetSMSGatewayURL() string
	GetSMSGatewayKey() string
	GetSMSSenderID() string
	GetPhoneRegion() string
}

// PushConfig provides settings for the Redis-backed push channel.
type PushConfig interface {
	GetPushRedisURL() string
	GetPushChannelPrefix() string
}

// StorageConfig provides MinIO settings for the dispatch report archive.
type StorageConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOBucketDispatchReports() string
	IsMinIOEnabled() bool
}

// EngineConfig provides the tunables of the scoring and composition engine.
type EngineConfig interface {
	GetAppBaseURL() string
	GetClampEngagement() bool
	GetPhoneRegion() string
	GetAgencyProfile() AgencyProfile
}

// DispatchConfig provides settings for the notification dispatcher.
type DispatchConfig interface {
	GetDispatchChannelTimeout() time.Duration
	GetDispatchAsync() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                       string
	HTTPAddr                  string
	DatabaseURL               string
	JWTAccessSecret           string
	CORSAllowAll              bool
	CORSOrigins               []string
	CORSAllowCreds            bool
	RateLimitRPS              float64
	RateLimitBurst            int
	AppBaseURL                string
	RedisURL                  string
	RedisTLSInsecure          bool
	AsynqQueueName            string
	AsynqConcurrency          int
	EmailEnabled              bool
	SMTPHost                  string
	SMTPPort                  int
	SMTPUsername              string
	SMTPPassword              string
	EmailFromName             string
	EmailFromAddress          string
	SMSGatewayURL             string
	SMSGatewayKey             string
	SMSSenderID               string
	PhoneRegion               string
	PushRedisURL              string
	PushChannelPrefix         string
	MinIOEndpoint             string
	MinIOAccessKey            string
	MinIOSecretKey            string
	MinIOUseSSL               bool
	MinIOBucketDispatchReport string
	ClampEngagement           bool
	DispatchChannelTimeout    time.Duration
	DispatchAsync             bool
	AgencyProfile             AgencyProfile
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// SMSConfig implementation
func (c *Config) GetSMSGatewayURL() string { return c.SMSGatewayURL }
func (c *Config) GetSMSGatewayKey() string { return c.SMSGatewayKey }
func (c *Config) GetSMSSenderID() string   { return c.SMSSenderID }
func (c *Config) GetPhoneRegion() string   { return c.PhoneRegion }

// PushConfig implementation
func (c *Config) GetPushRedisURL() string {
	if c.PushRedisURL != "" {
		return c.PushRedisURL
	}
	return c.RedisURL
}
func (c *Config) GetPushChannelPrefix() string { return c.PushChannelPrefix }

// StorageConfig implementation
func (c *Config) GetMinIOEndpoint() string  { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool      { return c.MinIOUseSSL }
func (c *Config) GetMinIOBucketDispatchReports() string {
	return c.MinIOBucketDispatchReport
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// EngineConfig implementation
func (c *Config) GetAppBaseURL() string           { return c.AppBaseURL }
func (c *Config) GetClampEngagement() bool        { return c.ClampEngagement }
func (c *Config) GetAgencyProfile() AgencyProfile { return c.AgencyProfile }

// DispatchConfig implementation
func (c *Config) GetDispatchChannelTimeout() time.Duration { return c.DispatchChannelTimeout }
func (c *Config) GetDispatchAsync() bool                   { return c.DispatchAsync }

// Load reads configuration from environment variables (and a .env file when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := getBool("CORS_ALLOW_ALL", false) || containsWildcard(corsOrigins)

	profile, err := LoadAgencyProfile(getEnv("AGENCY_PROFILE_PATH", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                       getEnv("APP_ENV", "development"),
		HTTPAddr:                  getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		JWTAccessSecret:           getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:              corsAllowAll,
		CORSOrigins:               corsOrigins,
		CORSAllowCreds:            getBool("CORS_ALLOW_CREDENTIALS", true),
		RateLimitRPS:              mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:            mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		AppBaseURL:                strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:4200"), "/"),
		RedisURL:                  getEnv("REDIS_URL", ""),
		RedisTLSInsecure:          getBool("REDIS_TLS_INSECURE", false),
		AsynqQueueName:            getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:          mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		EmailEnabled:              getBool("EMAIL_ENABLED", false),
		SMTPHost:                  getEnv("SMTP_HOST", ""),
		SMTPPort:                  mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:              getEnv("SMTP_USERNAME", ""),
		SMTPPassword:              getEnv("SMTP_PASSWORD", ""),
		EmailFromName:             getEnv("EMAIL_FROM_NAME", profile.AgencyName),
		EmailFromAddress:          getEnv("EMAIL_FROM_ADDRESS", ""),
		SMSGatewayURL:             getEnv("SMS_GATEWAY_URL", ""),
		SMSGatewayKey:             getEnv("SMS_GATEWAY_KEY", ""),
		SMSSenderID:               getEnv("SMS_SENDER_ID", ""),
		PhoneRegion:               strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "GY")),
		PushRedisURL:              getEnv("PUSH_REDIS_URL", ""),
		PushChannelPrefix:         getEnv("PUSH_CHANNEL_PREFIX", "agents"),
		MinIOEndpoint:             getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:            getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:            getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:               getBool("MINIO_USE_SSL", false),
		MinIOBucketDispatchReport: getEnv("MINIO_BUCKET_DISPATCH_REPORTS", "dispatch-reports"),
		ClampEngagement:           getBool("SCORING_CLAMP_ENGAGEMENT", false),
		DispatchChannelTimeout:    mustDuration(getEnv("DISPATCH_CHANNEL_TIMEOUT", "10s")),
		DispatchAsync:             getBool("DISPATCH_ASYNC", false),
		AgencyProfile:             profile,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTAccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.EmailEnabled && (c.SMTPHost == "" || c.EmailFromAddress == "") {
		return fmt.Errorf("SMTP_HOST and EMAIL_FROM_ADDRESS are required when EMAIL_ENABLED is true")
	}
	if c.DispatchAsync && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when DISPATCH_ASYNC is true")
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
