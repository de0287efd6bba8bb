package drivers

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBanned   Status = "banned"
)

// Driver is a league participant. PlatformIDs maps a sim platform (acc, iracing, gt7) to the driver's id there.
type Driver struct {
	ID           int               `json:"id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Nickname     string            `json:"nickname,omitempty"`
	Email        string            `json:"email,omitempty"`
	Nationality  string            `json:"nationality,omitempty"`
	RacingNumber *int              `json:"racing_number,omitempty"`
	DiscordID    string            `json:"discord_id,omitempty"`
	PlatformIDs  map[string]string `json:"platform_ids,omitempty"`
	Status       Status            `json:"status,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// FullName joins the first and last name, skipping empty parts.
func (d *Driver) FullName() string {
	return strings.TrimSpace(strings.Join([]string{d.FirstName, d.LastName}, " "))
}

// DisplayName is the name used in tables: the nickname when set, the full name otherwise.
func (d *Driver) DisplayName() string {
	if d.Nickname != "" {
		return d.Nickname
	}
	if name := d.FullName(); name != "" {
		return name
	}
	return d.Email
}

// Input is the create and update payload.
type Input struct {
	FirstName    string            `json:"first_name,omitempty"`
	LastName     string            `json:"last_name,omitempty"`
	Nickname     string            `json:"nickname,omitempty"`
	Email        string            `json:"email,omitempty"`
	Nationality  string            `json:"nationality,omitempty"`
	RacingNumber *int              `json:"racing_number,omitempty"`
	DiscordID    string            `json:"discord_id,omitempty"`
	PlatformIDs  map[string]string `json:"platform_ids,omitempty"`
	Status       Status            `json:"status,omitempty"`
}
