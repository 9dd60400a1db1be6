package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/appointly/booking-mcp/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// resolveCompanyID maps an external company code to the internal row
// ID. Shared by the employee, service, and authorization stores so that
// child writes always resolve the parent through the same query.
func resolveCompanyID(ctx context.Context, pool *pgxpool.Pool, externalCode int64) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx,
		`SELECT id FROM companies WHERE external_code = $1`,
		externalCode,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, store.ErrCompanyNotFound
		}
		return 0, fmt.Errorf("failed to resolve company code: %w", mapPostgresError(err))
	}

	return id, nil
}
