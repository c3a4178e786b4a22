package config

import (
	"encoding/json"
	"os"

	"github.com/orionapp/companion/internal/flagx"
	"github.com/orionapp/companion/internal/timex"
)

// JsonConfig is the JSON-file shape of Config. Duration fields use
// timex.Duration so both "15m" strings and integer nanoseconds parse.
// Only non-zero values are copied onto the runtime Config.
type JsonConfig struct {
	EndpointAddr              string         `json:"endpoint_addr"`
	DatabaseDSN               string         `json:"database_dsn"`
	SecretKey                 string         `json:"secret_key"`
	TokenValidityDuration     timex.Duration `json:"token_validity_duration"`
	ResetTokenValidity        timex.Duration `json:"reset_token_validity"`
	VerificationTokenValidity timex.Duration `json:"verification_token_validity"`
	AllowedOrigins            []string       `json:"allowed_origins"`
	RateLimitWindow           timex.Duration `json:"rate_limit_window"`
	RateLimitMax              int            `json:"rate_limit_max"`
	FrontendURL               string         `json:"frontend_url"`
	DevMode                   *bool          `json:"dev_mode"`
	SMTPHost                  string         `json:"smtp_host"`
	SMTPPort                  int            `json:"smtp_port"`
	SMTPUsername              string         `json:"smtp_username"`
	SMTPPassword              string         `json:"smtp_password"`
	SMTPFrom                  string         `json:"smtp_from"`
	S3AccessKey               string         `json:"s3_access_key"`
	S3SecretKey               string         `json:"s3_secret_key"`
	S3Bucket                  string         `json:"s3_bucket"`
	S3Region                  string         `json:"s3_region"`
	S3BaseEndpoint            string         `json:"s3_base_endpoint"`
	S3PublicBaseURL           string         `json:"s3_public_base_url"`
}

// parseJson overlays values from the JSON file named by the -c/-config flag.
// When no flag is given, nothing is loaded. An unreadable or malformed file
// panics: a half-applied config is worse than a crash at startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.ResetTokenValidity.Duration != 0 {
		config.ResetTokenValidity = c.ResetTokenValidity.Duration
	}
	if c.VerificationTokenValidity.Duration != 0 {
		config.VerificationTokenValidity = c.VerificationTokenValidity.Duration
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.RateLimitWindow.Duration != 0 {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.RateLimitMax != 0 {
		config.RateLimitMax = c.RateLimitMax
	}
	if c.FrontendURL != "" {
		config.FrontendURL = c.FrontendURL
	}
	if c.DevMode != nil {
		config.DevMode = *c.DevMode
	}
	if c.SMTPHost != "" {
		config.SMTPHost = c.SMTPHost
	}
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.SMTPUsername != "" {
		config.SMTPUsername = c.SMTPUsername
	}
	if c.SMTPPassword != "" {
		config.SMTPPassword = c.SMTPPassword
	}
	if c.SMTPFrom != "" {
		config.SMTPFrom = c.SMTPFrom
	}
	if c.S3AccessKey != "" {
		config.S3AccessKey = c.S3AccessKey
	}
	if c.S3SecretKey != "" {
		config.S3SecretKey = c.S3SecretKey
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.S3PublicBaseURL != "" {
		config.S3PublicBaseURL = c.S3PublicBaseURL
	}
}
