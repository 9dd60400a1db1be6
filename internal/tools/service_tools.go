package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

// ServiceTools implements the offering tool operations. Every mutation
// carries a requester token checked against the authorization table
// before any write; listing never requires authorization.
type ServiceTools struct {
	services store.ServiceStore
	auth     store.AuthorizationStore
}

// NewServiceTools creates the offering tool handlers.
func NewServiceTools(services store.ServiceStore, auth store.AuthorizationStore) *ServiceTools {
	return &ServiceTools{services: services, auth: auth}
}

type listServicesArgs struct {
	OrganizationCode int64    `json:"organization_code" validate:"required,gt=0"`
	Category         string   `json:"category" validate:"omitempty,max=100"`
	PriceMin         *float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax         *float64 `json:"price_max" validate:"omitempty,gte=0"`
}

// List returns the offerings of one organization, optionally narrowed
// by category and an inclusive price range.
func (t *ServiceTools) List(ctx context.Context, args json.RawMessage) *CallResult {
	var in listServicesArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	services, err := t.services.List(ctx, store.ServiceFilter{
		CompanyCode: in.OrganizationCode,
		Category:    in.Category,
		PriceMin:    in.PriceMin,
		PriceMax:    in.PriceMax,
	})
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return errorResult(notFoundf("organization with code %d not found", in.OrganizationCode))
		}
		return errorResult(&StoreError{Err: err})
	}
	if services == nil {
		services = []*models.Service{}
	}

	return listResult(fmt.Sprintf("Found %d offerings", len(services)), services, len(services))
}

type createServiceArgs struct {
	Name             string  `json:"name" validate:"required,max=255"`
	Description      string  `json:"description"`
	Price            float64 `json:"price" validate:"required,gt=0"`
	Duration         int32   `json:"duration" validate:"required,gt=0"`
	Category         string  `json:"category" validate:"omitempty,max=100"`
	OrganizationCode int64   `json:"organization_code" validate:"required,gt=0"`
	RequesterToken   string  `json:"requester_token" validate:"required"`
}

// Create checks authorization for the addressed organization, strips
// the requester token, and inserts the offering. The store resolves the
// external code before the insert and fails closed on an unknown code.
func (t *ServiceTools) Create(ctx context.Context, args json.RawMessage) *CallResult {
	var in createServiceArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	authorized, err := t.auth.CheckAuthorization(ctx, in.RequesterToken, in.OrganizationCode)
	if err != nil {
		return errorResult(&StoreError{Err: err})
	}
	if !authorized {
		return errorResult(notAuthorizedf("requester token is not authorized for organization %d", in.OrganizationCode))
	}

	// The token is a transient credential; it is not part of the record.
	service := &models.Service{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		Category:    in.Category,
	}

	if err := t.services.Create(ctx, in.OrganizationCode, service); err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return errorResult(notFoundf("organization with code %d not found", in.OrganizationCode))
		}
		return errorResult(&StoreError{Err: err})
	}

	return successResult(fmt.Sprintf("Offering created with id %d", service.ID), service)
}

type updateServiceArgs struct {
	ID               int64    `json:"id" validate:"required,gt=0"`
	Name             *string  `json:"name" validate:"omitempty,max=255"`
	Description      *string  `json:"description"`
	Price            *float64 `json:"price" validate:"omitempty,gt=0"`
	Duration         *int32   `json:"duration" validate:"omitempty,gt=0"`
	Category         *string  `json:"category" validate:"omitempty,max=100"`
	OrganizationCode *int64   `json:"organization_code" validate:"omitempty,gt=0"`
	RequesterToken   string   `json:"requester_token" validate:"required"`
}

// Update applies a partial update to an existing offering. The
// authorization scope is the payload's organization code when present,
// otherwise the organization of the existing row.
func (t *ServiceTools) Update(ctx context.Context, args json.RawMessage) *CallResult {
	var in updateServiceArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	existing, err := t.services.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, store.ErrServiceNotFound) {
			return errorResult(notFoundf("offering %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	var authorized bool
	if in.OrganizationCode != nil {
		authorized, err = t.auth.CheckAuthorization(ctx, in.RequesterToken, *in.OrganizationCode)
	} else {
		authorized, err = t.auth.CheckAuthorizationByID(ctx, in.RequesterToken, existing.CompanyID)
	}
	if err != nil {
		return errorResult(&StoreError{Err: err})
	}
	if !authorized {
		return errorResult(notAuthorizedf("requester token is not authorized for offering %d", in.ID))
	}

	service, err := t.services.Update(ctx, in.ID, store.ServicePatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		Category:    in.Category,
		CompanyCode: in.OrganizationCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrServiceNotFound):
			return errorResult(notFoundf("offering %d not found", in.ID))
		case errors.Is(err, store.ErrCompanyNotFound):
			return errorResult(notFoundf("organization with code %d not found", *in.OrganizationCode))
		}
		return errorResult(&StoreError{Err: err})
	}

	return successResult(fmt.Sprintf("Offering %d updated", service.ID), service)
}

type deleteServiceArgs struct {
	ID             int64  `json:"id" validate:"required,gt=0"`
	RequesterToken string `json:"requester_token" validate:"required"`
}

// Delete removes an offering by id after checking authorization
// against the existing row's organization.
func (t *ServiceTools) Delete(ctx context.Context, args json.RawMessage) *CallResult {
	var in deleteServiceArgs
	if err := decodeArgs(args, &in); err != nil {
		return errorResult(err)
	}

	existing, err := t.services.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, store.ErrServiceNotFound) {
			return errorResult(notFoundf("offering %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	authorized, err := t.auth.CheckAuthorizationByID(ctx, in.RequesterToken, existing.CompanyID)
	if err != nil {
		return errorResult(&StoreError{Err: err})
	}
	if !authorized {
		return errorResult(notAuthorizedf("requester token is not authorized for offering %d", in.ID))
	}

	if err := t.services.Delete(ctx, in.ID); err != nil {
		if errors.Is(err, store.ErrServiceNotFound) {
			return errorResult(notFoundf("offering %d not found", in.ID))
		}
		return errorResult(&StoreError{Err: err})
	}

	return successResult(
		fmt.Sprintf("Offering %d (%s) deleted", existing.ID, existing.Name),
		deletedRecord{ID: existing.ID, Name: existing.Name},
	)
}
