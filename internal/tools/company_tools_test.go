package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store/memory"
)

func TestCompanyToolsList(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store returns an empty list, not an error", func(t *testing.T) {
		tools := NewCompanyTools(memory.NewCompanyStore())

		body := requireSuccess(t, tools.List(ctx, nil))
		require.NotNil(t, body.Count)
		require.Equal(t, 0, *body.Count)
		require.Equal(t, "[]", string(body.Data))
		require.Equal(t, "Found 0 organizations", body.Message)
	})

	t.Run("name filter narrows the result", func(t *testing.T) {
		companies := memory.NewCompanyStore()
		require.NoError(t, companies.Create(ctx, &models.Company{Name: "Glow Salon"}))
		require.NoError(t, companies.Create(ctx, &models.Company{Name: "Barber Bros"}))
		tools := NewCompanyTools(companies)

		body := requireSuccess(t, tools.List(ctx, rawArgs(t, map[string]any{"name": "glow"})))
		require.Equal(t, 1, *body.Count)
	})

	t.Run("invalid filter email is a validation failure", func(t *testing.T) {
		tools := NewCompanyTools(memory.NewCompanyStore())

		body := requireError(t, tools.List(ctx, rawArgs(t, map[string]any{"email": "nope"})))
		require.Contains(t, body.Error, "email must be a valid email address")
	})
}

func TestCompanyToolsCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored record with server-assigned fields", func(t *testing.T) {
		tools := NewCompanyTools(memory.NewCompanyStore())

		body := requireSuccess(t, tools.Create(ctx, rawArgs(t, map[string]any{
			"name":  "Glow Salon",
			"email": "hello@glow.example",
		})))
		require.Equal(t, "Organization created with id 1", body.Message)

		var company models.Company
		require.NoError(t, json.Unmarshal(body.Data, &company))
		require.Equal(t, int64(1), company.ID)
		require.NotZero(t, company.ExternalCode)
		require.NotEqual(t, company.ID, company.ExternalCode)
		require.False(t, company.CreatedAt.IsZero())
	})

	t.Run("missing name is a validation failure", func(t *testing.T) {
		tools := NewCompanyTools(memory.NewCompanyStore())

		body := requireError(t, tools.Create(ctx, rawArgs(t, map[string]any{"email": "a@example.com"})))
		require.Contains(t, body.Error, "name is required")
	})
}

func TestCompanyToolsUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("changes only supplied fields", func(t *testing.T) {
		companies := memory.NewCompanyStore()
		seed := &models.Company{Name: "Before", Email: "before@example.com"}
		require.NoError(t, companies.Create(ctx, seed))
		tools := NewCompanyTools(companies)

		body := requireSuccess(t, tools.Update(ctx, rawArgs(t, map[string]any{
			"id":   seed.ID,
			"name": "After",
		})))

		var company models.Company
		require.NoError(t, json.Unmarshal(body.Data, &company))
		require.Equal(t, "After", company.Name)
		require.Equal(t, "before@example.com", company.Email)
	})

	t.Run("unknown id is a not-found failure", func(t *testing.T) {
		tools := NewCompanyTools(memory.NewCompanyStore())

		body := requireError(t, tools.Update(ctx, rawArgs(t, map[string]any{"id": 42, "name": "x"})))
		require.Equal(t, "organization 42 not found", body.Error)
	})
}

func TestCompanyToolsDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the deleted record's identity", func(t *testing.T) {
		companies := memory.NewCompanyStore()
		seed := &models.Company{Name: "Doomed"}
		require.NoError(t, companies.Create(ctx, seed))
		tools := NewCompanyTools(companies)

		body := requireSuccess(t, tools.Delete(ctx, rawArgs(t, map[string]any{"id": seed.ID})))
		require.Equal(t, "Organization 1 (Doomed) deleted", body.Message)
		require.JSONEq(t, `{"id":1,"name":"Doomed"}`, string(body.Data))
	})

	t.Run("second delete is a not-found failure", func(t *testing.T) {
		companies := memory.NewCompanyStore()
		seed := &models.Company{Name: "Doomed"}
		require.NoError(t, companies.Create(ctx, seed))
		tools := NewCompanyTools(companies)

		requireSuccess(t, tools.Delete(ctx, rawArgs(t, map[string]any{"id": seed.ID})))
		body := requireError(t, tools.Delete(ctx, rawArgs(t, map[string]any{"id": seed.ID})))
		require.Equal(t, "organization 1 not found", body.Error)
	})
}
