package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

// externalCodeOffset keeps external codes visibly distinct from row ids
// so code/id mixups fail fast in tests.
const externalCodeOffset = 1000

// CompanyStore implements store.CompanyStore using in-memory storage.
// This implementation is for development and testing - data is lost on
// restart.
type CompanyStore struct {
	mu sync.RWMutex

	companies map[int64]*models.Company // id -> Company
	byCode    map[int64]int64           // external_code -> id
	nextID    int64
}

// NewCompanyStore creates a new in-memory company store.
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{
		companies: make(map[int64]*models.Company),
		byCode:    make(map[int64]int64),
	}
}

// List returns companies ordered by creation time, newest first.
func (s *CompanyStore) List(ctx context.Context, filter store.CompanyFilter) ([]*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Company
	for _, c := range s.companies {
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Email != "" && c.Email != filter.Email {
			continue
		}

		clone := *c
		result = append(result, &clone)
	}

	sortNewestFirst(result, func(c *models.Company) (time.Time, int64) { return c.CreatedAt, c.ID })
	return result, nil
}

// GetByID retrieves a company by its internal ID.
func (s *CompanyStore) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, exists := s.companies[id]
	if !exists {
		return nil, store.ErrCompanyNotFound
	}

	clone := *company
	return &clone, nil
}

// Create assigns an ID, an external code, and timestamps, then stores
// the company.
func (s *CompanyStore) Create(ctx context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	company.ID = s.nextID
	company.ExternalCode = externalCodeOffset + s.nextID
	company.CreatedAt = now
	company.UpdatedAt = now

	clone := *company
	s.companies[company.ID] = &clone
	s.byCode[company.ExternalCode] = company.ID

	return nil
}

// Update applies a partial update and stamps a fresh UpdatedAt.
func (s *CompanyStore) Update(ctx context.Context, id int64, patch store.CompanyPatch) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, exists := s.companies[id]
	if !exists {
		return nil, store.ErrCompanyNotFound
	}

	if patch.Name != nil {
		company.Name = *patch.Name
	}
	if patch.Description != nil {
		company.Description = *patch.Description
	}
	if patch.Email != nil {
		company.Email = *patch.Email
	}
	if patch.Phone != nil {
		company.Phone = *patch.Phone
	}
	if patch.Address != nil {
		company.Address = *patch.Address
	}
	company.UpdatedAt = time.Now()

	clone := *company
	return &clone, nil
}

// Delete removes a company by its internal ID.
func (s *CompanyStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, exists := s.companies[id]
	if !exists {
		return store.ErrCompanyNotFound
	}

	delete(s.byCode, company.ExternalCode)
	delete(s.companies, id)
	return nil
}

// resolveCode maps an external code to the internal ID.
func (s *CompanyStore) resolveCode(externalCode int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byCode[externalCode]
	if !exists {
		return 0, store.ErrCompanyNotFound
	}
	return id, nil
}

// sortNewestFirst orders records by creation time descending, breaking
// ties by ID descending so freshly created rows keep insertion order.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, int64)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi > idj
		}
		return ti.After(tj)
	})
}
