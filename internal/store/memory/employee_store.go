package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

// EmployeeStore implements store.EmployeeStore using in-memory storage.
// It shares the company store for external-code resolution, the same
// way the postgres stores share a pool.
type EmployeeStore struct {
	mu sync.RWMutex

	companies *CompanyStore
	employees map[int64]*models.Employee // id -> Employee
	nextID    int64
}

// NewEmployeeStore creates a new in-memory employee store.
func NewEmployeeStore(companies *CompanyStore) *EmployeeStore {
	return &EmployeeStore{
		companies: companies,
		employees: make(map[int64]*models.Employee),
	}
}

// List returns employees of the addressed company, newest first.
func (s *EmployeeStore) List(ctx context.Context, filter store.EmployeeFilter) ([]*models.Employee, error) {
	companyID, err := s.companies.resolveCode(filter.CompanyCode)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Employee
	for _, e := range s.employees {
		if e.CompanyID != companyID {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Email != "" && e.Email != filter.Email {
			continue
		}

		clone := *e
		result = append(result, &clone)
	}

	sortNewestFirst(result, func(e *models.Employee) (time.Time, int64) { return e.CreatedAt, e.ID })
	return result, nil
}

// GetByID retrieves an employee by ID.
func (s *EmployeeStore) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, exists := s.employees[id]
	if !exists {
		return nil, store.ErrEmployeeNotFound
	}

	clone := *employee
	return &clone, nil
}

// Create resolves the external company code, then stores the employee
// under the resolved company.
func (s *EmployeeStore) Create(ctx context.Context, companyCode int64, employee *models.Employee) error {
	companyID, err := s.companies.resolveCode(companyCode)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	employee.ID = s.nextID
	employee.CompanyID = companyID
	employee.CreatedAt = now
	employee.UpdatedAt = now

	clone := *employee
	s.employees[employee.ID] = &clone

	return nil
}

// Update applies a partial update and stamps a fresh UpdatedAt.
func (s *EmployeeStore) Update(ctx context.Context, id int64, patch store.EmployeePatch) (*models.Employee, error) {
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

	employee, exists := s.employees[id]
	if !exists {
		return nil, store.ErrEmployeeNotFound
	}

	if patch.Name != nil {
		employee.Name = *patch.Name
	}
	if patch.Email != nil {
		employee.Email = *patch.Email
	}
	if patch.Phone != nil {
		employee.Phone = *patch.Phone
	}
	if companyID != nil {
		employee.CompanyID = *companyID
	}
	employee.UpdatedAt = time.Now()

	clone := *employee
	return &clone, nil
}

// Delete removes an employee by ID.
func (s *EmployeeStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employees[id]; !exists {
		return store.ErrEmployeeNotFound
	}

	delete(s.employees, id)
	return nil
}
