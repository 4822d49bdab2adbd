package model

import "time"

type UserStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
	Score     int `json:"score"`
	Level     int `json:"level"`
}

type User struct {
	ID           string     `json:"id"`
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash,omitempty"`
	Role         Role       `json:"role"`
	Title        string     `json:"title"`
	Subtitle     string     `json:"subtitle"`
	Avatar       string     `json:"avatar"`
	Banner       string     `json:"banner,omitempty"`
	Signature    string     `json:"signature"`
	BannedUntil  *time.Time `json:"bannedUntil,omitempty"`
	Stats        *UserStats `json:"stats,omitempty"`
}

func (u User) EntityID() string { return u.ID }

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// BannedAt reports whether the ban is still running at now.
func (u User) BannedAt(now time.Time) bool {
	return u.BannedUntil != nil && u.BannedUntil.After(now)
}

// Public returns a copy safe to hand out or keep in a session slot.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
