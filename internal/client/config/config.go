// Package config handles configuration for the CLI client. Values are
// resolved in order: built-in defaults, then an optional JSON file
// (-c/-config), then command-line flags.
package config

// Config holds runtime settings for the companion CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the companion backend (including /api).
//   - SessionDBPath: path of the local SQLite session database.
//   - JamendoClientID: Jamendo API client id; empty disables catalog calls.
//   - JamendoLimit: default number of tracks per catalog request.
//   - GeminiAPIKey: Google AI Studio key; empty disables the chatbot.
//   - GeminiModel: generative model name.
type Config struct {
	ServerBaseURL   string
	SessionDBPath   string
	JamendoClientID string
	JamendoLimit    int
	GeminiAPIKey    string
	GeminiModel     string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000/api"
	c.SessionDBPath = "orion.db"
	c.JamendoClientID = ""
	c.JamendoLimit = 20
	c.GeminiAPIKey = ""
	c.GeminiModel = "gemini-1.5-flash"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
