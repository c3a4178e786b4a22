package httpapi

import (
	"io"
	"net/http"

	"github.com/orionapp/companion/internal/server/services"
)

// readImageUpload pulls the profileImage file out of a multipart form.
func readImageUpload(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(services.MaxImageSize); err != nil {
		return nil, "", err
	}
	file, header, err := r.FormFile("profileImage")
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxImageSize+1))
	if err != nil {
		return nil, "", err
	}
	return data, header.Header.Get("Content-Type"), nil
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := readImageUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please upload an image file")
		return
	}

	profile, err := s.profiles.UploadImage(r.Context(), UserID(r.Context()), data, contentType)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Profile image updated successfully",
		Data:    map[string]any{"user": profile},
	})
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.DeleteImage(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Profile image deleted successfully",
		Data:    map[string]any{"user": profile},
	})
}

// handleProfileUpdate accepts profile fields and an optional image in one
// multipart request.
func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(services.MaxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := services.ProfileUpdate{}
	form := r.MultipartForm.Value
	if v, ok := form["name"]; ok && len(v) > 0 {
		upd.Name = &v[0]
	}
	if v, ok := form["phone"]; ok && len(v) > 0 {
		upd.Phone = &v[0]
	}
	if v, ok := form["bio"]; ok && len(v) > 0 {
		upd.Bio = &v[0]
	}
	if v, ok := form["location"]; ok && len(v) > 0 {
		upd.Location = &v[0]
	}

	userID := UserID(r.Context())
	profile, err := s.users.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}

	if file, header, err := r.FormFile("profileImage"); err == nil {
		data, readErr := io.ReadAll(io.LimitReader(file, services.MaxImageSize+1))
		file.Close()
		if readErr != nil {
			writeError(w, http.StatusBadRequest, "Please upload an image file")
			return
		}
		profile, err = s.profiles.UploadImage(r.Context(), userID, data, header.Header.Get("Content-Type"))
		if err != nil {
			writeServiceError(w, err, "Not authorized")
			return
		}
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Profile updated successfully",
		Data:    map[string]any{"user": profile},
	})
}
