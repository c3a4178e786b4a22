package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/orionapp/companion/internal/server/services"
)

type todoBody struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	Priority  *string `json:"priority"`
	DueDate   *string `json:"dueDate"`
	Category  *string `json:"category"`
}

func parseDueDate(s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todos.List(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	count := len(todos)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: todos})
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var body todoBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Todo text is required")
		return
	}

	in := services.TodoInput{}
	if body.Text != nil {
		in.Text = *body.Text
	}
	if body.Priority != nil {
		in.Priority = *body.Priority
	}
	if body.Category != nil {
		in.Category = *body.Category
	}
	due, ok := parseDueDate(body.DueDate)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid due date")
		return
	}
	in.DueDate = due

	todo, err := s.todos.Create(r.Context(), UserID(r.Context()), in)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Todo created successfully",
		Data:    todo,
	})
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := s.todos.Get(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, todo)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	var body todoBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := services.TodoUpdate{
		Text:      body.Text,
		Completed: body.Completed,
		Priority:  body.Priority,
		Category:  body.Category,
	}
	if body.DueDate != nil {
		due, ok := parseDueDate(body.DueDate)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid due date")
			return
		}
		upd.DueDate = due
	}

	todo, err := s.todos.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], upd)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Todo updated successfully",
		Data:    todo,
	})
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := s.todos.Toggle(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.todos.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeMessage(w, http.StatusOK, "Todo deleted successfully")
}

func (s *Server) handleDeleteCompletedTodos(w http.ResponseWriter, r *http.Request) {
	n, err := s.todos.DeleteCompleted(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    map[string]any{"deletedCount": n},
	})
}

func (s *Server) handleTodoStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.todos.Stats(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, stats)
}
