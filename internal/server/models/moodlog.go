package models

import "time"

// MoodLog records a single mood selection.
type MoodLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      string    `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
}
