package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/server/services"
)

func writeAuthResult(w http.ResponseWriter, status int, res *services.AuthResult) {
	writeJSON(w, status, envelope{
		Success: true,
		Token:   res.Token,
		Data:    map[string]any{"user": res.Profile},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide name, email, and password")
		return
	}

	res, err := s.users.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeAuthResult(w, http.StatusCreated, res)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	res, err := s.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			writeError(w, http.StatusUnauthorized, "Your account has been deactivated. Please contact support.")
			return
		}
		writeServiceError(w, err, "Invalid email or password")
		return
	}
	writeAuthResult(w, http.StatusOK, res)
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide email address")
		return
	}

	if err := s.users.ForgotPassword(r.Context(), body.Email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "No user found with that email address")
			return
		}
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeMessage(w, http.StatusOK, "Password reset instructions sent to email")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide password and confirm password")
		return
	}

	res, err := s.users.ResetPassword(r.Context(), mux.Vars(r)["token"], body.Password, body.ConfirmPassword)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeAuthResult(w, http.StatusOK, res)
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := s.users.VerifyEmail(r.Context(), mux.Vars(r)["token"]); err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeMessage(w, http.StatusOK, "Email verified successfully")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, err := s.users.Me(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": profile})
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide current password, new password, and confirm password")
		return
	}

	res, err := s.users.UpdatePassword(r.Context(), UserID(r.Context()),
		body.CurrentPassword, body.NewPassword, body.ConfirmPassword)
	if err != nil {
		if ve, ok := common.AsValidation(err); ok && ve.Message == "Current password is incorrect" {
			writeError(w, http.StatusUnauthorized, ve.Message)
			return
		}
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeAuthResult(w, http.StatusOK, res)
}
