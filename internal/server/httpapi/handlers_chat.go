package httpapi

import (
	"net/http"
)

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := s.chat.History(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"messages": messages,
		"count":    len(messages),
	})
}

func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text  string `json:"text"`
		IsBot bool   `json:"isBot"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	msg, err := s.chat.SaveMessage(r.Context(), UserID(r.Context()), body.Text, body.IsBot)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusCreated, msg)
}

func (s *Server) handleClearChatHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.ClearHistory(r.Context(), UserID(r.Context())); err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeMessage(w, http.StatusOK, "Chat history cleared successfully")
}

func (s *Server) handleChatStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.chat.Stats(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, stats)
}
