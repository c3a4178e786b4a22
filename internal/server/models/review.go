package models

import "time"

// Review categories.
var ReviewCategories = []string{"robot", "app", "feature", "support", "general"}

// Review is a rating-board entry owned by one user. Reviewer carries the
// owner's display name and profile image for list rendering.
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Rating       int       `json:"rating"`
	Author       string    `json:"author"`
	Category     string    `json:"category"`
	IsActive     bool      `json:"isActive"`
	IsApproved   bool      `json:"isApproved"`
	HelpfulVotes int       `json:"helpfulVotes"`
	Reviewer     *Reviewer `json:"user,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Reviewer is the embedded projection of the review owner.
type Reviewer struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ProfileImage *ProfileImage `json:"profileImage,omitempty"`
}

// Pagination describes a page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ValidReviewCategory reports whether c is a known review category.
func ValidReviewCategory(c string) bool {
	for _, known := range ReviewCategories {
		if c == known {
			return true
		}
	}
	return false
}
