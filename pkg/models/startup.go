package models

import (
	"time"
)

// Startup is a founder-listed company profile. The matching engine reads it
// but never mutates it.
type Startup struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description,omitempty" db:"description"`
	Location     *string    `json:"location,omitempty" db:"location"`
	Industries   StringList `json:"industries" db:"industries"`
	Stage        *string    `json:"stage,omitempty" db:"stage"`
	TargetAmount *float64   `json:"target_amount,omitempty" db:"target_amount"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateStartupRequest is the request to create a startup
type CreateStartupRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  *string  `json:"description,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Industries   []string `json:"industries,omitempty"`
	Stage        *string  `json:"stage,omitempty"`
	TargetAmount *float64 `json:"target_amount,omitempty" validate:"omitempty,gte=0"`
}

// UpdateStartupRequest is the request to update a startup
type UpdateStartupRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Industries   []string `json:"industries,omitempty"`
	Stage        *string  `json:"stage,omitempty"`
	TargetAmount *float64 `json:"target_amount,omitempty" validate:"omitempty,gte=0"`
}
