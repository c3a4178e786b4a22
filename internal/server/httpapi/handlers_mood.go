package httpapi

import (
	"net/http"
	"strconv"
)

func (s *Server) handleLogMood(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mood string `json:"mood"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "User and mood required")
		return
	}

	log, err := s.moods.Log(r.Context(), UserID(r.Context()), body.Mood)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusCreated, log)
}

func (s *Server) handleLatestMood(w http.ResponseWriter, r *http.Request) {
	log, err := s.moods.Latest(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	// null when the user has not logged a mood yet
	writeData(w, http.StatusOK, log)
}

func (s *Server) handleMoodHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := s.moods.History(r.Context(), UserID(r.Context()), limit)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	count := len(logs)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: logs})
}

func (s *Server) handleMoodRecommendations(w http.ResponseWriter, r *http.Request) {
	mood := r.URL.Query().Get("mood")
	writeData(w, http.StatusOK, map[string]any{
		"mood":            mood,
		"recommendations": s.moods.Recommendations(mood),
	})
}
