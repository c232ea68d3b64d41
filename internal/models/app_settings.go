package models

import "time"

// AppSettings holds user preferences. ChatModelKey selects the
// conversational model from the catalog and applies from the next launch.
type AppSettings struct {
	Version      int       `json:"version"`
	Theme        string    `json:"theme"` // "light" | "dark" | "system"
	Locale       string    `json:"locale"`
	ChatModelKey string    `json:"chatModelKey,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
