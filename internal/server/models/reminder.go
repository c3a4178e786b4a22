package models

import "time"

// Reminder repeat values.
const (
	RepeatNone   = "none"
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
)

// Reminder is a scheduled note owned by one user. The device is responsible
// for firing the notification; the server only stores the schedule.
type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	RemindAt  time.Time `json:"remindAt"`
	Repeat    string    `json:"repeat"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidRepeat reports whether r is a known repeat value.
func ValidRepeat(r string) bool {
	return r == RepeatNone || r == RepeatDaily || r == RepeatWeekly
}
