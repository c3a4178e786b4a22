package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/orionapp/companion/internal/server/services"
)

type reminderBody struct {
	Title    string     `json:"title"`
	Notes    string     `json:"notes"`
	RemindAt *time.Time `json:"remindAt"`
	Repeat   string     `json:"repeat"`
	Done     bool       `json:"done"`
}

func (b reminderBody) toInput() services.ReminderInput {
	in := services.ReminderInput{
		Title:  b.Title,
		Notes:  b.Notes,
		Repeat: b.Repeat,
		Done:   b.Done,
	}
	if b.RemindAt != nil {
		in.RemindAt = *b.RemindAt
	}
	return in
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var body reminderBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reminder, err := s.reminders.Create(r.Context(), UserID(r.Context()), body.toInput())
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusCreated, reminder)
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	list, err := s.reminders.List(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, list)
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	var body reminderBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reminder, err := s.reminders.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], body.toInput())
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, reminder)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.reminders.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeMessage(w, http.StatusOK, "Reminder deleted successfully")
}
