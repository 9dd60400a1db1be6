package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

// EmployeeTools implements the staff tool operations. Staff mutations
// never require authorization; the asymmetry with offerings is a
// business rule, not an oversight.
type EmployeeTools struct {
	employees store.EmployeeStore
	defaults  ContactDefaults
}

// NewEmployeeTools creates the staff tool handlers. A nil defaults
// disables contact synthesis and makes email required on creation.
func NewEmployeeTools(employees store.EmployeeStore, defaults ContactDefaults) *EmployeeTools {
	return &EmployeeTools{employees: employees, defaults: defaults}
}

type listEmployeesArgs struct {
	OrganizationCode int64  `json:"organization_code" validate:"required,gt=0"`
	Name             string `json:"name" validate:"omitempty,max=255"`
	Email            string `json:"email" validate:"omitempty,email"`
}

// List returns the staff of one organization.
func (t *EmployeeTools) List(ctx context.Context, args json.RawMessage) *CallResult {
	var in listEmployeesArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	employees, err := t.employees.List(ctx, store.EmployeeFilter{
		CompanyCode: in.OrganizationCode,
		Name:        in.Name,
		Email:       in.Email,
	})
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return errorResult(notFoundf("organization with code %d not found", in.OrganizationCode))
		}
		return errorResult(&StoreError{Err: err})
	}
	if employees == nil {
		employees = []*models.Employee{}
	}

	return listResult(fmt.Sprintf("Found %d staff members", len(employees)), employees, len(employees))
}

type createEmployeeArgs struct {
	Name             string `json:"name" validate:"required,max=255"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone" validate:"omitempty,max=20"`
	OrganizationCode int64  `json:"organization_code" validate:"required,gt=0"`
}

// Create inserts a new staff member under the addressed organization.
// Contact synthesis runs before validation so the stored row always
// carries an email.
func (t *EmployeeTools) Create(ctx context.Context, args json.RawMessage) *CallResult {
	var in createEmployeeArgs
	if err := unmarshalArgs(args, &in); err != nil {
		return errorResult(err)
	}

	if in.Email == "" {
		if t.defaults == nil {
			return errorResult(&ValidationError{Violations: []FieldViolation{
				{Field: "email", Message: "is required"},
			}})
		}
		in.Email = t.defaults.Email()
	}
	if in.Phone == "" && t.defaults != nil {
		in.Phone = t.defaults.Phone()
	}

	if err := validateStruct(&in); err != nil {
		return errorResult(err)
	}

	employee := &models.Employee{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}

	if err := t.employees.Create(ctx, in.OrganizationCode, employee); err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return errorResult(notFoundf("organization with code %d not found", in.OrganizationCode))
		}
		return errorResult(&StoreError{Err: err})
	}

	return successResult(fmt.Sprintf("Staff member created with id %d", employee.ID), employee)
}

type updateEmployeeArgs struct {
	ID               int64   `json:"id" validate:"required,gt=0"`
	Name             *string `json:"name" validate:"omitempty,max=255"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone" validate:"omitempty,max=20"`
	OrganizationCode *int64  `json:"organization_code" validate:"omitempty,gt=0"`
}

// Update applies a partial update to an existing staff member.
func (t *EmployeeTools) Update(ctx context.Context, args json.RawMessage) *CallResult {
	var in updateEmployeeArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	if _, err := t.employees.GetByID(ctx, in.ID); err != nil {
		if errors.Is(err, store.ErrEmployeeNotFound) {
			return errorResult(notFoundf("staff member %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	employee, err := t.employees.Update(ctx, in.ID, store.EmployeePatch{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		CompanyCode: in.OrganizationCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmployeeNotFound):
			return errorResult(notFoundf("staff member %d not found", in.ID))
		case errors.Is(err, store.ErrCompanyNotFound):
			return errorResult(notFoundf("organization with code %d not found", *in.OrganizationCode))
		}
		return errorResult(&StoreError{Err: err})
	}

	return successResult(fmt.Sprintf("Staff member %d updated", employee.ID), employee)
}

type deleteEmployeeArgs struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// Delete removes a staff member by id.
func (t *EmployeeTools) Delete(ctx context.Context, args json.RawMessage) *CallResult {
	var in deleteEmployeeArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	employee, err := t.employees.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, store.ErrEmployeeNotFound) {
			return errorResult(notFoundf("staff member %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	if err := t.employees.Delete(ctx, in.ID); err != nil {
		if errors.Is(err, store.ErrEmployeeNotFound) {
			return errorResult(notFoundf("staff member %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	return successResult(
		fmt.Sprintf("Staff member %d (%s) deleted", employee.ID, employee.Name),
		deletedRecord{ID: employee.ID, Name: employee.Name},
	)
}
