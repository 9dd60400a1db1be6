package memory

import (
	"context"
	"sync"
)

// AuthorizationStore implements store.AuthorizationStore using
// in-memory storage. Grants are seeded via Authorize, standing in for
// the rows an operator would provision in the real table.
type AuthorizationStore struct {
	mu sync.RWMutex

	companies *CompanyStore
	grants    map[string]map[int64]bool // phone -> set of internal company ids
	allowAll  bool
}

// NewAuthorizationStore creates a new in-memory authorization store.
func NewAuthorizationStore(companies *CompanyStore) *AuthorizationStore {
	return &AuthorizationStore{
		companies: companies,
		grants:    make(map[string]map[int64]bool),
	}
}

// AllowAll makes every authorization check succeed. Development only.
func (s *AuthorizationStore) AllowAll() *AuthorizationStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.allowAll = true
	return s
}

// Authorize grants the token access to the company addressed by
// externalCode. Used by dev mode and tests to seed the table.
func (s *AuthorizationStore) Authorize(token string, externalCode int64) error {
	companyID, err := s.companies.resolveCode(externalCode)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grants[token] == nil {
		s.grants[token] = make(map[int64]bool)
	}
	s.grants[token][companyID] = true
	return nil
}

// ResolveCompanyID maps an external company code to the internal ID.
func (s *AuthorizationStore) ResolveCompanyID(ctx context.Context, externalCode int64) (int64, error) {
	return s.companies.resolveCode(externalCode)
}

// CheckAuthorization reports whether the token is permitted for the
// company addressed by externalCode. An unknown code is not authorized.
func (s *AuthorizationStore) CheckAuthorization(ctx context.Context, token string, externalCode int64) (bool, error) {
	companyID, err := s.companies.resolveCode(externalCode)
	if err != nil {
		return false, nil
	}

	return s.CheckAuthorizationByID(ctx, token, companyID)
}

// CheckAuthorizationByID checks a grant against an internal company ID.
func (s *AuthorizationStore) CheckAuthorizationByID(ctx context.Context, token string, companyID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.allowAll {
		return true, nil
	}
	return s.grants[token][companyID], nil
}
