package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

// CompanyTools implements the organization tool operations. No
// mutation on this entity requires authorization.
type CompanyTools struct {
	companies store.CompanyStore
}

// NewCompanyTools creates the organization tool handlers.
func NewCompanyTools(companies store.CompanyStore) *CompanyTools {
	return &CompanyTools{companies: companies}
}

type listCompaniesArgs struct {
	Name  string `json:"name" validate:"omitempty,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
}

// List returns all organizations matching the optional filters.
func (t *CompanyTools) List(ctx context.Context, args json.RawMessage) *CallResult {
	var in listCompaniesArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	companies, err := t.companies.List(ctx, store.CompanyFilter{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		return errorResult(&StoreError{Err: err})
	}
	if companies == nil {
		companies = []*models.Company{}
	}

	return listResult(fmt.Sprintf("Found %d organizations", len(companies)), companies, len(companies))
}

type createCompanyArgs struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Address     string `json:"address"`
}

// Create inserts a new organization.
func (t *CompanyTools) Create(ctx context.Context, args json.RawMessage) *CallResult {
	var in createCompanyArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	company := &models.Company{
		Name:        in.Name,
		Description: in.Description,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
	}

	if err := t.companies.Create(ctx, company); err != nil {
		return errorResult(&StoreError{Err: err})
	}

	return successResult(fmt.Sprintf("Organization created with id %d", company.ID), company)
}

type updateCompanyArgs struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Address     *string `json:"address"`
}

// Update applies a partial update to an existing organization.
func (t *CompanyTools) Update(ctx context.Context, args json.RawMessage) *CallResult {
	var in updateCompanyArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	if _, err := t.companies.GetByID(ctx, in.ID); err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return errorResult(notFoundf("organization %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	company, err := t.companies.Update(ctx, in.ID, store.CompanyPatch{
		Name:        in.Name,
		Description: in.Description,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
	})
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return errorResult(notFoundf("organization %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	return successResult(fmt.Sprintf("Organization %d updated", company.ID), company)
}

type deleteCompanyArgs struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type deletedRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Delete removes an organization by id.
func (t *CompanyTools) Delete(ctx context.Context, args json.RawMessage) *CallResult {
	var in deleteCompanyArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	company, err := t.companies.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return errorResult(notFoundf("organization %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	if err := t.companies.Delete(ctx, in.ID); err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return errorResult(notFoundf("organization %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	return successResult(
		fmt.Sprintf("Organization %d (%s) deleted", company.ID, company.Name),
		deletedRecord{ID: company.ID, Name: company.Name},
	)
}
