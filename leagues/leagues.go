package leagues

import "time"

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

type League struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Platforms   []string   `json:"platforms,omitempty"`
	Timezone    string     `json:"timezone,omitempty"`
	Visibility  Visibility `json:"visibility,omitempty"`
	IsActive    bool       `json:"is_active"`
	DriverCount int        `json:"drivers_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Input struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Platforms   []string   `json:"platforms,omitempty"`
	Timezone    string     `json:"timezone,omitempty"`
	Visibility  Visibility `json:"visibility,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// Membership is a driver's entry in a league.
type Membership struct {
	DriverID     int    `json:"driver_id"`
	RacingNumber *int   `json:"racing_number,omitempty"`
	TeamName     string `json:"team_name,omitempty"`
}
