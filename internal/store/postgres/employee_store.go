package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// EmployeeStore implements store.EmployeeStore using PostgreSQL.
type EmployeeStore struct {
	pool *pgxpool.Pool
}

// NewEmployeeStore creates a new PostgreSQL-backed employee store.
func NewEmployeeStore(pool *pgxpool.Pool) *EmployeeStore {
	return &EmployeeStore{
		pool: pool,
	}
}

const employeeColumns = `id, company_id, name, email, phone, created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var employee models.Employee
	err := row.Scan(
		&employee.ID,
		&employee.CompanyID,
		&employee.Name,
		&employee.Email,
		&employee.Phone,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns employees of the company addressed by the filter's
// external code, ordered by creation time, newest first.
func (s *EmployeeStore) List(ctx context.Context, filter store.EmployeeFilter) ([]*models.Employee, error) {
	companyID, err := resolveCompanyID(ctx, s.pool, filter.CompanyCode)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1`
	args := []any{companyID}

	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND name ILIKE '%%' || $%d || '%%'", len(args))
	}
	if filter.Email != "" {
		args = append(args, filter.Email)
		query += fmt.Sprintf(" AND email = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", mapPostgresError(err))
	}

	return employees, nil
}

// GetByID retrieves an employee by ID.
func (s *EmployeeStore) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)

	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", mapPostgresError(err))
	}

	return employee, nil
}

// Create resolves the external company code and inserts the employee
// under the resolved company. Returns store.ErrCompanyNotFound before
// any write when no company matches the code.
func (s *EmployeeStore) Create(ctx context.Context, companyCode int64, employee *models.Employee) error {
	companyID, err := resolveCompanyID(ctx, s.pool, companyCode)
	if err != nil {
		return err
	}
	employee.CompanyID = companyID

	row := s.pool.QueryRow(ctx, `
		INSERT INTO employees (company_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`,
		employee.CompanyID,
		employee.Name,
		employee.Email,
		employee.Phone,
	)

	if err := row.Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create employee: %w", mapPostgresError(err))
	}

	log.Debug().
		Int64("id", employee.ID).
		Int64("company_id", employee.CompanyID).
		Str("name", employee.Name).
		Msg("Created employee")

	return nil
}

// Update applies a partial update, stamping a fresh updated_at. When
// the patch moves the employee to another company, the external code is
// resolved first.
func (s *EmployeeStore) Update(ctx context.Context, id int64, patch store.EmployeePatch) (*models.Employee, error) {
	var companyID *int64
	if patch.CompanyCode != nil {
		resolved, err := resolveCompanyID(ctx, s.pool, *patch.CompanyCode)
		if err != nil {
			return nil, err
		}
		companyID = &resolved
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE employees SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			company_id = COALESCE($5, company_id),
			updated_at = now()
		WHERE id = $1
		RETURNING `+employeeColumns,
		id,
		patch.Name,
		patch.Email,
		patch.Phone,
		companyID,
	)

	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update employee: %w", mapPostgresError(err))
	}

	log.Debug().
		Int64("id", employee.ID).
		Msg("Updated employee")

	return employee, nil
}

// Delete removes an employee by ID.
func (s *EmployeeStore) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrEmployeeNotFound
	}

	log.Info().
		Int64("id", id).
		Msg("Deleted employee")

	return nil
}
