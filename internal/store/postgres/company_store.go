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

// CompanyStore implements store.CompanyStore using PostgreSQL.
type CompanyStore struct {
	pool *pgxpool.Pool
}

// NewCompanyStore creates a new PostgreSQL-backed company store.
// It shares the connection pool with the other stores.
func NewCompanyStore(pool *pgxpool.Pool) *CompanyStore {
	return &CompanyStore{
		pool: pool,
	}
}

const companyColumns = `id, external_code, name, description, email, phone, address, created_at, updated_at`

func scanCompany(row pgx.Row) (*models.Company, error) {
	var company models.Company
	err := row.Scan(
		&company.ID,
		&company.ExternalCode,
		&company.Name,
		&company.Description,
		&company.Email,
		&company.Phone,
		&company.Address,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns companies ordered by creation time, newest first.
// The name filter is a case-insensitive substring match, the email
// filter an exact match.
func (s *CompanyStore) List(ctx context.Context, filter store.CompanyFilter) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`

	var (
		conditions []string
		args       []any
	)
	if filter.Name != "" {
		args = append(args, filter.Name)
		conditions = append(conditions, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Email != "" {
		args = append(args, filter.Email)
		conditions = append(conditions, fmt.Sprintf("email = $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", mapPostgresError(err))
	}

	return companies, nil
}

// GetByID retrieves a company by its internal ID.
func (s *CompanyStore) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)

	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", mapPostgresError(err))
	}

	return company, nil
}

// Create inserts a new company. The ID, external code, and timestamps
// are assigned by the database and written back into the record.
func (s *CompanyStore) Create(ctx context.Context, company *models.Company) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO companies (name, description, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, external_code, created_at, updated_at
	`,
		company.Name,
		company.Description,
		company.Email,
		company.Phone,
		company.Address,
	)

	err := row.Scan(&company.ID, &company.ExternalCode, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", mapPostgresError(err))
	}

	log.Debug().
		Int64("id", company.ID).
		Str("name", company.Name).
		Msg("Created company")

	return nil
}

// Update applies a partial update. A fresh updated_at is stamped at
// call time regardless of the patch contents.
func (s *CompanyStore) Update(ctx context.Context, id int64, patch store.CompanyPatch) (*models.Company, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE companies SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			address = COALESCE($6, address),
			updated_at = now()
		WHERE id = $1
		RETURNING `+companyColumns,
		id,
		patch.Name,
		patch.Description,
		patch.Email,
		patch.Phone,
		patch.Address,
	)

	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to update company: %w", mapPostgresError(err))
	}

	log.Debug().
		Int64("id", company.ID).
		Msg("Updated company")

	return company, nil
}

// Delete removes a company by its internal ID.
func (s *CompanyStore) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrCompanyNotFound
	}

	log.Info().
		Int64("id", id).
		Msg("Deleted company")

	return nil
}
