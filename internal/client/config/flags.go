package config

import (
	"flag"
	"os"

	"github.com/orionapp/companion/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend API
//	-d string   path of the local session database
//	-j string   Jamendo client id
//	-g string   Gemini API key
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-j", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "path of the local session database")
	fs.StringVar(&cfg.JamendoClientID, "j", cfg.JamendoClientID, "Jamendo client id")
	fs.StringVar(&cfg.GeminiAPIKey, "g", cfg.GeminiAPIKey, "Gemini API key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
