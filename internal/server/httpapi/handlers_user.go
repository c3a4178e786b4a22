package httpapi

import (
	"errors"
	"net/http"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/server/services"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.users.Me(r.Context(), UserID(r.Context()))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": profile})
}

type profileBody struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body profileBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := s.users.UpdateProfile(r.Context(), UserID(r.Context()), services.ProfileUpdate{
		Name: body.Name, Phone: body.Phone, Bio: body.Bio, Location: body.Location,
	})
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Profile updated successfully",
		Data:    map[string]any{"user": profile},
	})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide your password to confirm account deletion")
		return
	}

	if err := s.users.DeleteAccount(r.Context(), UserID(r.Context()), body.Password); err != nil {
		if ve, ok := common.AsValidation(err); ok && ve.Message == "Incorrect password" {
			writeError(w, http.StatusUnauthorized, ve.Message)
			return
		}
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeMessage(w, http.StatusOK, "Account deleted successfully")
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.users.Preferences(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"preferences": prefs})
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notifications *struct {
			Email *bool `json:"email"`
			Push  *bool `json:"push"`
		} `json:"notifications"`
		Theme *string `json:"theme"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := services.PreferencesUpdate{Theme: body.Theme}
	if body.Notifications != nil {
		upd.NotifyEmail = body.Notifications.Email
		upd.NotifyPush = body.Notifications.Push
	}

	prefs, err := s.users.UpdatePreferences(r.Context(), UserID(r.Context()), upd)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Preferences updated successfully",
		Data:    map[string]any{"preferences": prefs},
	})
}
