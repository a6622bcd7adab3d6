package domain

import "time"

// Notice is an announcement shown to every visitor.
type Notice struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
