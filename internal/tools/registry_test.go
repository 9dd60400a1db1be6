package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-mcp/internal/store"
	"github.com/appointly/booking-mcp/internal/store/memory"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	companies := memory.NewCompanyStore()
	return NewRegistry(store.Stores{
		Companies: companies,
		Employees: memory.NewEmployeeStore(companies),
		Services:  memory.NewServiceStore(companies),
		Auth:      memory.NewAuthorizationStore(companies).AllowAll(),
	}, SynthesizedContacts{})
}

func TestRegistryTools(t *testing.T) {
	t.Run("declares all twelve tools with schemas", func(t *testing.T) {
		r := newTestRegistry(t)

		tools := r.Tools()
		require.Len(t, tools, 12)

		names := make(map[string]bool, len(tools))
		for _, tool := range tools {
			names[tool.Name] = true
			require.NotEmpty(t, tool.Description)
			require.Equal(t, "object", tool.InputSchema["type"])
		}
		for _, name := range []string{
			"list_organizations", "create_organization", "update_organization", "delete_organization",
			"list_staff", "create_staff", "update_staff", "delete_staff",
			"list_offerings", "create_offering", "update_offering", "delete_offering",
		} {
			require.True(t, names[name], "missing tool %s", name)
		}
	})
}

func TestRegistryCall(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches by name", func(t *testing.T) {
		r := newTestRegistry(t)

		res, err := r.Call(ctx, "list_organizations", nil)
		require.NoError(t, err)
		requireSuccess(t, res)
	})

	t.Run("unknown tool is the only transport-level error", func(t *testing.T) {
		r := newTestRegistry(t)

		_, err := r.Call(ctx, "no_such_tool", nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown tool")
	})

	t.Run("handler failures stay inside the envelope", func(t *testing.T) {
		r := newTestRegistry(t)

		res, err := r.Call(ctx, "delete_organization", rawArgs(t, map[string]any{"id": 42}))
		require.NoError(t, err)
		requireError(t, res)
	})
}
