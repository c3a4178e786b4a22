package httpapi

import (
	"net/http"
	"time"

	"github.com/orionapp/companion/internal/buildinfo"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "ORION Robot App Backend API is running!",
		Data: map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   buildinfo.Version,
		},
	})
}

// handleTest is the endpoint directory the mobile app uses to check
// connectivity.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Backend server is running!",
		Data: map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"endpoints": map[string]string{
				"auth":      "/api/auth",
				"users":     "/api/user",
				"profile":   "/api/profile",
				"reviews":   "/api/reviews",
				"todos":     "/api/todos",
				"chat":      "/api/chat",
				"reminders": "/api/reminders",
				"moods":     "/api/moods",
			},
		},
	})
}
