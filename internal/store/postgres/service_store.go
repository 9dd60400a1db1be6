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

// ServiceStore implements store.ServiceStore using PostgreSQL.
type ServiceStore struct {
	pool *pgxpool.Pool
}

// NewServiceStore creates a new PostgreSQL-backed service store.
func NewServiceStore(pool *pgxpool.Pool) *ServiceStore {
	return &ServiceStore{
		pool: pool,
	}
}

const serviceColumns = `id, company_id, name, description, price, duration, category, created_at, updated_at`

func scanService(row pgx.Row) (*models.Service, error) {
	var service models.Service
	err := row.Scan(
		&service.ID,
		&service.CompanyID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.Duration,
		&service.Category,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// List returns services of the company addressed by the filter's
// external code, ordered by creation time, newest first. Category is an
// exact match; the price bounds are inclusive and independently
// optional.
func (s *ServiceStore) List(ctx context.Context, filter store.ServiceFilter) ([]*models.Service, error) {
	companyID, err := resolveCompanyID(ctx, s.pool, filter.CompanyCode)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + serviceColumns + ` FROM services WHERE company_id = $1`
	args := []any{companyID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.PriceMin != nil {
		args = append(args, *filter.PriceMin)
		query += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if filter.PriceMax != nil {
		args = append(args, *filter.PriceMax)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", mapPostgresError(err))
	}

	return services, nil
}

// GetByID retrieves a service by ID.
func (s *ServiceStore) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)

	service, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", mapPostgresError(err))
	}

	return service, nil
}

// Create resolves the external company code and inserts the service
// under the resolved company. Returns store.ErrCompanyNotFound before
// any write when no company matches the code.
func (s *ServiceStore) Create(ctx context.Context, companyCode int64, service *models.Service) error {
	companyID, err := resolveCompanyID(ctx, s.pool, companyCode)
	if err != nil {
		return err
	}
	service.CompanyID = companyID

	row := s.pool.QueryRow(ctx, `
		INSERT INTO services (company_id, name, description, price, duration, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		service.CompanyID,
		service.Name,
		service.Description,
		service.Price,
		service.Duration,
		service.Category,
	)

	if err := row.Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create service: %w", mapPostgresError(err))
	}

	log.Debug().
		Int64("id", service.ID).
		Int64("company_id", service.CompanyID).
		Str("name", service.Name).
		Msg("Created service")

	return nil
}

// Update applies a partial update, stamping a fresh updated_at.
func (s *ServiceStore) Update(ctx context.Context, id int64, patch store.ServicePatch) (*models.Service, error) {
	var companyID *int64
	if patch.CompanyCode != nil {
		resolved, err := resolveCompanyID(ctx, s.pool, *patch.CompanyCode)
		if err != nil {
			return nil, err
		}
		companyID = &resolved
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE services SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			duration = COALESCE($5, duration),
			category = COALESCE($6, category),
			company_id = COALESCE($7, company_id),
			updated_at = now()
		WHERE id = $1
		RETURNING `+serviceColumns,
		id,
		patch.Name,
		patch.Description,
		patch.Price,
		patch.Duration,
		patch.Category,
		companyID,
	)

	service, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to update service: %w", mapPostgresError(err))
	}

	log.Debug().
		Int64("id", service.ID).
		Msg("Updated service")

	return service, nil
}

// Delete removes a service by ID.
func (s *ServiceStore) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrServiceNotFound
	}

	log.Info().
		Int64("id", id).
		Msg("Deleted service")

	return nil
}
