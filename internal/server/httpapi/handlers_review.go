package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/server/repositories/reviews"
	"github.com/orionapp/companion/internal/server/services"
)

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	rating, _ := strconv.Atoi(q.Get("rating"))

	res, err := s.reviews.List(r.Context(), reviews.ListFilter{
		Category: q.Get("category"),
		Rating:   rating,
		Sort:     q.Get("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, res)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Rating   int    `json:"rating"`
		Category string `json:"category"`
		Author   string `json:"author"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide title, content, and rating")
		return
	}

	userID := UserID(r.Context())
	userName := ""
	if profile, err := s.users.Me(r.Context(), userID); err == nil {
		userName = profile.Name
	}

	review, err := s.reviews.Create(r.Context(), userID, userName, services.ReviewInput{
		Title:    body.Title,
		Content:  body.Content,
		Rating:   body.Rating,
		Category: body.Category,
		Author:   body.Author,
	})
	if err != nil {
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusCreated, review)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Rating   *int    `json:"rating"`
		Category *string `json:"category"`
		Author   *string `json:"author"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := s.reviews.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], services.ReviewUpdate{
		Title:    body.Title,
		Content:  body.Content,
		Rating:   body.Rating,
		Category: body.Category,
		Author:   body.Author,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Review not found")
			return
		}
		if errors.Is(err, common.ErrorForbidden) {
			writeError(w, http.StatusUnauthorized, "Not authorized to update this review")
			return
		}
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeData(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	err := s.reviews.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Review not found")
			return
		}
		if errors.Is(err, common.ErrorForbidden) {
			writeError(w, http.StatusUnauthorized, "Not authorized to delete this review")
			return
		}
		writeServiceError(w, err, "Not authorized")
		return
	}
	writeMessage(w, http.StatusOK, "Review deleted successfully")
}
