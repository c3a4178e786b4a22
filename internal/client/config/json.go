package config

import (
	"encoding/json"
	"os"

	"github.com/orionapp/companion/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// mean "not set" and leave the existing Config value untouched.
type JsonConfig struct {
	ServerBaseURL   string `json:"server_base_url"`
	SessionDBPath   string `json:"session_db_path"`
	JamendoClientID string `json:"jamendo_client_id"`
	JamendoLimit    int    `json:"jamendo_limit"`
	GeminiAPIKey    string `json:"gemini_api_key"`
	GeminiModel     string `json:"gemini_model"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flag; when absent, nothing is loaded.
// Read or unmarshal errors panic, matching the flag parsing behavior.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.JamendoClientID != "" {
		cfg.JamendoClientID = jc.JamendoClientID
	}
	if jc.JamendoLimit != 0 {
		cfg.JamendoLimit = jc.JamendoLimit
	}
	if jc.GeminiAPIKey != "" {
		cfg.GeminiAPIKey = jc.GeminiAPIKey
	}
	if jc.GeminiModel != "" {
		cfg.GeminiModel = jc.GeminiModel
	}
}
