package memory

import (
	"context"
	"sync"
	"time"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

// ServiceStore implements store.ServiceStore using in-memory storage.
type ServiceStore struct {
	mu sync.RWMutex

	companies *CompanyStore
	services  map[int64]*models.Service // id -> Service
	nextID    int64
}

// NewServiceStore creates a new in-memory service store.
func NewServiceStore(companies *CompanyStore) *ServiceStore {
	return &ServiceStore{
		companies: companies,
		services:  make(map[int64]*models.Service),
	}
}

// List returns services of the addressed company, newest first, with
// optional category equality and inclusive price bounds.
func (s *ServiceStore) List(ctx context.Context, filter store.ServiceFilter) ([]*models.Service, error) {
	companyID, err := s.companies.resolveCode(filter.CompanyCode)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Service
	for _, svc := range s.services {
		if svc.CompanyID != companyID {
			continue
		}
		if filter.Category != "" && svc.Category != filter.Category {
			continue
		}
		if filter.PriceMin != nil && svc.Price < *filter.PriceMin {
			continue
		}
		if filter.PriceMax != nil && svc.Price > *filter.PriceMax {
			continue
		}

		clone := *svc
		result = append(result, &clone)
	}

	sortNewestFirst(result, func(svc *models.Service) (time.Time, int64) { return svc.CreatedAt, svc.ID })
	return result, nil
}

// GetByID retrieves a service by ID.
func (s *ServiceStore) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	service, exists := s.services[id]
	if !exists {
		return nil, store.ErrServiceNotFound
	}

	clone := *service
	return &clone, nil
}

// Create resolves the external company code, then stores the service
// under the resolved company.
func (s *ServiceStore) Create(ctx context.Context, companyCode int64, service *models.Service) error {
	companyID, err := s.companies.resolveCode(companyCode)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	service.ID = s.nextID
	service.CompanyID = companyID
	service.CreatedAt = now
	service.UpdatedAt = now

	clone := *service
	s.services[service.ID] = &clone

	return nil
}

// Update applies a partial update and stamps a fresh UpdatedAt.
func (s *ServiceStore) Update(ctx context.Context, id int64, patch store.ServicePatch) (*models.Service, error) {
	var companyID *int64
	if patch.CompanyCode != nil {
		resolved, err := s.companies.resolveCode(*patch.CompanyCode)
		if err != nil {
			return nil, err
		}
		companyID = &resolved
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	service, exists := s.services[id]
	if !exists {
		return nil, store.ErrServiceNotFound
	}

	if patch.Name != nil {
		service.Name = *patch.Name
	}
	if patch.Description != nil {
		service.Description = *patch.Description
	}
	if patch.Price != nil {
		service.Price = *patch.Price
	}
	if patch.Duration != nil {
		service.Duration = *patch.Duration
	}
	if patch.Category != nil {
		service.Category = *patch.Category
	}
	if companyID != nil {
		service.CompanyID = *companyID
	}
	service.UpdatedAt = time.Now()

	clone := *service
	return &clone, nil
}

// Delete removes a service by ID.
func (s *ServiceStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.services[id]; !exists {
		return store.ErrServiceNotFound
	}

	delete(s.services, id)
	return nil
}
