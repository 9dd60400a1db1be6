package store

import (
	"context"
	"errors"

	"github.com/appointly/booking-mcp/internal/models"
)

// Sentinel errors for common error conditions. A single-row fetch that
// matches no row returns the entity's not-found sentinel; every other
// backing-store failure is wrapped and carries the original message.
var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrServiceNotFound  = errors.New("service not found")
)

// CompanyFilter narrows company listings. All fields are optional.
type CompanyFilter struct {
	// Name matches case-insensitively on any substring.
	Name string
	// Email matches exactly.
	Email string
}

// EmployeeFilter narrows employee listings. CompanyCode is the external
// company code and is always required.
type EmployeeFilter struct {
	CompanyCode int64
	Name        string
	Email       string
}

// ServiceFilter narrows service listings. CompanyCode is required;
// PriceMin and PriceMax are inclusive bounds, each independently
// optional.
type ServiceFilter struct {
	CompanyCode int64
	Category    string
	PriceMin    *float64
	PriceMax    *float64
}

// CompanyPatch carries the fields of a partial company update.
// Nil fields are left unchanged.
type CompanyPatch struct {
	Name        *string
	Description *string
	Email       *string
	Phone       *string
	Address     *string
}

// EmployeePatch carries the fields of a partial employee update.
// CompanyCode, when set, is the external code and is resolved to the
// internal company ID before the row is written.
type EmployeePatch struct {
	Name        *string
	Email       *string
	Phone       *string
	CompanyCode *int64
}

// ServicePatch carries the fields of a partial service update.
type ServicePatch struct {
	Name        *string
	Description *string
	Price       *float64
	Duration    *int32
	Category    *string
	CompanyCode *int64
}

// CompanyStore defines storage operations for companies.
// List returns rows ordered by creation time, newest first.
type CompanyStore interface {
	List(ctx context.Context, filter CompanyFilter) ([]*models.Company, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, id int64, patch CompanyPatch) (*models.Company, error)
	Delete(ctx context.Context, id int64) error
}

// EmployeeStore defines storage operations for employees. Create and
// List address the owning company by its external code; the store
// resolves it to the internal ID and returns ErrCompanyNotFound when no
// company matches, before any write.
type EmployeeStore interface {
	List(ctx context.Context, filter EmployeeFilter) ([]*models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	Create(ctx context.Context, companyCode int64, employee *models.Employee) error
	Update(ctx context.Context, id int64, patch EmployeePatch) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

// ServiceStore defines storage operations for services, with the same
// external-code contract as EmployeeStore.
type ServiceStore interface {
	List(ctx context.Context, filter ServiceFilter) ([]*models.Service, error)
	GetByID(ctx context.Context, id int64) (*models.Service, error)
	Create(ctx context.Context, companyCode int64, service *models.Service) error
	Update(ctx context.Context, id int64, patch ServicePatch) (*models.Service, error)
	Delete(ctx context.Context, id int64) error
}

// AuthorizationStore reads the authorization table. The table is never
// written by this process.
type AuthorizationStore interface {
	// ResolveCompanyID maps an external company code to the internal
	// company ID, returning ErrCompanyNotFound when no company matches.
	ResolveCompanyID(ctx context.Context, externalCode int64) (int64, error)

	// CheckAuthorization reports whether the requester token is
	// permitted to mutate services scoped to the company addressed by
	// externalCode. An unknown code is not authorized.
	CheckAuthorization(ctx context.Context, token string, externalCode int64) (bool, error)

	// CheckAuthorizationByID is CheckAuthorization for an already
	// resolved internal company ID, used when the scope comes from an
	// existing row rather than a caller-supplied code.
	CheckAuthorizationByID(ctx context.Context, token string, companyID int64) (bool, error)
}

// Stores bundles the per-entity stores handed to the tool handlers.
type Stores struct {
	Companies CompanyStore
	Employees EmployeeStore
	Services  ServiceStore
	Auth      AuthorizationStore
}
