package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig maps environment variables onto Config fields. Only variables
// that are actually set are applied.
type envConfig struct {
	EndpointAddr              string        `env:"ENDPOINT_ADDR"`
	DatabaseDSN               string        `env:"DATABASE_DSN"`
	SecretKey                 string        `env:"JWT_SECRET"`
	TokenValidityDuration     time.Duration `env:"JWT_EXPIRES_IN"`
	ResetTokenValidity        time.Duration `env:"RESET_TOKEN_VALIDITY"`
	VerificationTokenValidity time.Duration `env:"VERIFICATION_TOKEN_VALIDITY"`
	AllowedOrigins            []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimitWindow           time.Duration `env:"RATE_LIMIT_WINDOW"`
	RateLimitMax              int           `env:"RATE_LIMIT_MAX_REQUESTS"`
	FrontendURL               string        `env:"FRONTEND_URL"`
	DevMode                   *bool         `env:"DEV_MODE"`
	SMTPHost                  string        `env:"EMAIL_HOST"`
	SMTPPort                  int           `env:"EMAIL_PORT"`
	SMTPUsername              string        `env:"EMAIL_USERNAME"`
	SMTPPassword              string        `env:"EMAIL_PASSWORD"`
	SMTPFrom                  string        `env:"EMAIL_FROM"`
	S3AccessKey               string        `env:"S3_ACCESS_KEY"`
	S3SecretKey               string        `env:"S3_SECRET_KEY"`
	S3Bucket                  string        `env:"S3_BUCKET"`
	S3Region                  string        `env:"S3_REGION"`
	S3BaseEndpoint            string        `env:"S3_BASE_ENDPOINT"`
	S3PublicBaseURL           string        `env:"S3_PUBLIC_BASE_URL"`
}

// parseEnv overlays environment variables onto config.
func parseEnv(config *Config) {
	e := &envConfig{}
	if err := env.Parse(e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != "" {
		config.EndpointAddr = e.EndpointAddr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenValidityDuration != 0 {
		config.TokenValidityDuration = e.TokenValidityDuration
	}
	if e.ResetTokenValidity != 0 {
		config.ResetTokenValidity = e.ResetTokenValidity
	}
	if e.VerificationTokenValidity != 0 {
		config.VerificationTokenValidity = e.VerificationTokenValidity
	}
	if len(e.AllowedOrigins) > 0 {
		config.AllowedOrigins = e.AllowedOrigins
	}
	if e.RateLimitWindow != 0 {
		config.RateLimitWindow = e.RateLimitWindow
	}
	if e.RateLimitMax != 0 {
		config.RateLimitMax = e.RateLimitMax
	}
	if e.FrontendURL != "" {
		config.FrontendURL = e.FrontendURL
	}
	if e.DevMode != nil {
		config.DevMode = *e.DevMode
	}
	if e.SMTPHost != "" {
		config.SMTPHost = e.SMTPHost
	}
	if e.SMTPPort != 0 {
		config.SMTPPort = e.SMTPPort
	}
	if e.SMTPUsername != "" {
		config.SMTPUsername = e.SMTPUsername
	}
	if e.SMTPPassword != "" {
		config.SMTPPassword = e.SMTPPassword
	}
	if e.SMTPFrom != "" {
		config.SMTPFrom = e.SMTPFrom
	}
	if e.S3AccessKey != "" {
		config.S3AccessKey = e.S3AccessKey
	}
	if e.S3SecretKey != "" {
		config.S3SecretKey = e.S3SecretKey
	}
	if e.S3Bucket != "" {
		config.S3Bucket = e.S3Bucket
	}
	if e.S3Region != "" {
		config.S3Region = e.S3Region
	}
	if e.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = e.S3BaseEndpoint
	}
	if e.S3PublicBaseURL != "" {
		config.S3PublicBaseURL = e.S3PublicBaseURL
	}
}
