package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/appointly/booking-mcp/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthorizationStore implements store.AuthorizationStore using
// PostgreSQL. The authorized_phones table is read-only from this
// process; rows are provisioned out of band.
type AuthorizationStore struct {
	pool *pgxpool.Pool
}

// NewAuthorizationStore creates a new PostgreSQL-backed authorization store.
func NewAuthorizationStore(pool *pgxpool.Pool) *AuthorizationStore {
	return &AuthorizationStore{
		pool: pool,
	}
}

// ResolveCompanyID maps an external company code to the internal ID.
func (s *AuthorizationStore) ResolveCompanyID(ctx context.Context, externalCode int64) (int64, error) {
	return resolveCompanyID(ctx, s.pool, externalCode)
}

// CheckAuthorization reports whether the requester token is permitted
// for the company addressed by externalCode. An unknown code is not
// authorized; only genuine store failures surface as errors.
func (s *AuthorizationStore) CheckAuthorization(ctx context.Context, token string, externalCode int64) (bool, error) {
	companyID, err := resolveCompanyID(ctx, s.pool, externalCode)
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return false, nil
		}
		return false, err
	}

	return s.CheckAuthorizationByID(ctx, token, companyID)
}

// CheckAuthorizationByID checks a grant against an internal company ID.
func (s *AuthorizationStore) CheckAuthorizationByID(ctx context.Context, token string, companyID int64) (bool, error) {
	var authorized bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM authorized_phones
			WHERE phone = $1 AND company_id = $2
		)
	`, token, companyID).Scan(&authorized)

	if err != nil {
		return false, fmt.Errorf("failed to check authorization: %w", mapPostgresError(err))
	}

	return authorized, nil
}
