package models

import (
	"time"
)

// Employee is a staff member belonging to a company.
// Email is always set on a stored row; creation synthesizes a
// placeholder address when the caller supplies none.
type Employee struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
