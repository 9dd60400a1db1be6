package models

import (
	"time"
)

// Company is a top-level tenant that owns employees and services.
// ID is assigned by the database; ExternalCode is the identifier callers
// use to address the company, distinct from the internal ID.
type Company struct {
	ID           int64     `json:"id"`
	ExternalCode int64     `json:"organization_code"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
