// Package httpapi exposes the REST surface of the companion backend. Every
// response uses the same JSON envelope: {"success": bool} plus either a
// data payload or a message.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orionapp/companion/internal/common"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Token   string `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: true, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// writeServiceError maps service-layer failures onto envelope responses.
// unauthorizedMsg supplies the message for ErrorUnauthorized, which differs
// per endpoint.
func writeServiceError(w http.ResponseWriter, err error, unauthorizedMsg string) {
	if ve, ok := common.AsValidation(err); ok {
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, unauthorizedMsg)
	case errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, common.ErrorConflict):
		writeError(w, http.StatusConflict, "Already exists")
	default:
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
