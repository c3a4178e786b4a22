// Package models defines the persisted entities of the companion backend.
package models

import "time"

// Theme values accepted for the user preference.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// User is a registered account. PasswordHash and the one-time secret hashes
// are never serialized to clients; handlers return a Profile instead.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string

	Phone    string
	Bio      string
	Location string

	// Profile image stored in the object store.
	ImageKey string
	ImageURL string

	IsActive        bool
	IsEmailVerified bool

	// One-time secrets, stored as SHA-256 digests with expiries.
	PasswordResetHash        string
	PasswordResetExpires     time.Time
	EmailVerificationHash    string
	EmailVerificationExpires time.Time

	LastLogin time.Time

	// Preferences.
	NotifyEmail bool
	NotifyPush  bool
	Theme       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileImage is the client-facing shape of the stored image reference.
type ProfileImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Profile is the client-facing projection of a User. It deliberately has no
// password or secret fields.
type Profile struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Bio             string        `json:"bio"`
	Location        string        `json:"location"`
	ProfileImage    *ProfileImage `json:"profileImage,omitempty"`
	JoinDate        time.Time     `json:"joinDate"`
	LastLogin       time.Time     `json:"lastLogin"`
	IsEmailVerified bool          `json:"isEmailVerified"`
}

// Preferences is the client-facing projection of the preference fields.
type Preferences struct {
	Notifications NotificationPrefs `json:"notifications"`
	Theme         string            `json:"theme"`
}

// NotificationPrefs groups the notification toggles.
type NotificationPrefs struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

// FullProfile builds the Profile projection for u.
func (u *User) FullProfile() *Profile {
	p := &Profile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Bio:             u.Bio,
		Location:        u.Location,
		JoinDate:        u.CreatedAt,
		LastLogin:       u.LastLogin,
		IsEmailVerified: u.IsEmailVerified,
	}
	if u.ImageKey != "" || u.ImageURL != "" {
		p.ProfileImage = &ProfileImage{PublicID: u.ImageKey, URL: u.ImageURL}
	}
	return p
}

// PreferencesView builds the Preferences projection for u.
func (u *User) PreferencesView() *Preferences {
	return &Preferences{
		Notifications: NotificationPrefs{Email: u.NotifyEmail, Push: u.NotifyPush},
		Theme:         u.Theme,
	}
}
