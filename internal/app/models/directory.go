package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCountry is applied when a location is created without a country
const DefaultCountry = "India"

// Location represents a city/area an academy can operate in, based on the 'locations' table
type Location struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	Country   string    `json:"country" db:"country"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Skill represents an activity the platform offers, based on the 'skills' table
type Skill struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
