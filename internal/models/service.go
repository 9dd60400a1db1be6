package models

import (
	"time"
)

// Service is a priced, timed offering belonging to a company.
// The requester token that authorizes mutations is a transient
// credential and is never part of this record.
type Service struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Duration    int32     `json:"duration"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
