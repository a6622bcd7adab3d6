package domain

import "time"

// UnusablePassword marks accounts that cannot log in with a local password.
const UnusablePassword = "!"

// User is a local account, optionally linked to a Kakao identity.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	AvatarURL    string
	KakaoID      string
	PasswordHash string
	IsHost       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasUsablePassword reports whether password login is possible.
func (u User) HasUsablePassword() bool {
	return u.PasswordHash != "" && u.PasswordHash != UnusablePassword
}

// Summary returns the tiny public representation of the user.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		KakaoID:   u.KakaoID,
	}
}

// UserSummary is the embedded view of a user on stores and reviews.
type UserSummary struct {
	ID        string
	Username  string
	Name      string
	AvatarURL string
	KakaoID   string
}
