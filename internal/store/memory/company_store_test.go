package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

func TestCompanyStoreCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id, external code, and timestamps", func(t *testing.T) {
		st := NewCompanyStore()

		company := &models.Company{Name: "Glow Salon", Email: "hello@glow.example"}
		require.NoError(t, st.Create(ctx, company))

		require.Equal(t, int64(1), company.ID)
		require.Equal(t, int64(externalCodeOffset+1), company.ExternalCode)
		require.False(t, company.CreatedAt.IsZero())
		require.Equal(t, company.CreatedAt, company.UpdatedAt)
	})

	t.Run("external codes are distinct from ids", func(t *testing.T) {
		st := NewCompanyStore()

		for i := 0; i < 3; i++ {
			require.NoError(t, st.Create(ctx, &models.Company{Name: "Shop"}))
		}

		companies, err := st.List(ctx, store.CompanyFilter{})
		require.NoError(t, err)
		require.Len(t, companies, 3)
		for _, c := range companies {
			require.NotEqual(t, c.ID, c.ExternalCode)
			id, err := st.resolveCode(c.ExternalCode)
			require.NoError(t, err)
			require.Equal(t, c.ID, id)
		}
	})

	t.Run("stored record is isolated from the caller's struct", func(t *testing.T) {
		st := NewCompanyStore()

		company := &models.Company{Name: "Original"}
		require.NoError(t, st.Create(ctx, company))
		company.Name = "Mutated"

		got, err := st.GetByID(ctx, company.ID)
		require.NoError(t, err)
		require.Equal(t, "Original", got.Name)
	})
}

func TestCompanyStoreList(t *testing.T) {
	ctx := context.Background()

	t.Run("orders newest first", func(t *testing.T) {
		st := NewCompanyStore()

		for _, name := range []string{"First", "Second", "Third"} {
			require.NoError(t, st.Create(ctx, &models.Company{Name: name}))
		}

		companies, err := st.List(ctx, store.CompanyFilter{})
		require.NoError(t, err)
		require.Len(t, companies, 3)
		require.Equal(t, "Third", companies[0].Name)
		require.Equal(t, "Second", companies[1].Name)
		require.Equal(t, "First", companies[2].Name)
	})

	t.Run("name filter matches partial case-insensitive", func(t *testing.T) {
		st := NewCompanyStore()

		require.NoError(t, st.Create(ctx, &models.Company{Name: "Glow Salon"}))
		require.NoError(t, st.Create(ctx, &models.Company{Name: "Barber Bros"}))
		require.NoError(t, st.Create(ctx, &models.Company{Name: "Afterglow Spa"}))

		companies, err := st.List(ctx, store.CompanyFilter{Name: "GLOW"})
		require.NoError(t, err)
		require.Len(t, companies, 2)
	})

	t.Run("email filter matches exactly", func(t *testing.T) {
		st := NewCompanyStore()

		require.NoError(t, st.Create(ctx, &models.Company{Name: "A", Email: "a@example.com"}))
		require.NoError(t, st.Create(ctx, &models.Company{Name: "B", Email: "b@example.com"}))

		companies, err := st.List(ctx, store.CompanyFilter{Email: "a@example.com"})
		require.NoError(t, err)
		require.Len(t, companies, 1)
		require.Equal(t, "A", companies[0].Name)

		companies, err = st.List(ctx, store.CompanyFilter{Email: "a@example"})
		require.NoError(t, err)
		require.Empty(t, companies)
	})
}

func TestCompanyStoreGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id returns not found", func(t *testing.T) {
		st := NewCompanyStore()

		_, err := st.GetByID(ctx, 42)
		require.ErrorIs(t, err, store.ErrCompanyNotFound)
	})
}

func TestCompanyStoreUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only supplied fields", func(t *testing.T) {
		st := NewCompanyStore()

		company := &models.Company{Name: "Before", Email: "before@example.com", Phone: "111"}
		require.NoError(t, st.Create(ctx, company))

		name := "After"
		updated, err := st.Update(ctx, company.ID, store.CompanyPatch{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "After", updated.Name)
		require.Equal(t, "before@example.com", updated.Email)
		require.Equal(t, "111", updated.Phone)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		st := NewCompanyStore()

		name := "x"
		_, err := st.Update(ctx, 42, store.CompanyPatch{Name: &name})
		require.ErrorIs(t, err, store.ErrCompanyNotFound)
	})
}

func TestCompanyStoreDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the record and its code mapping", func(t *testing.T) {
		st := NewCompanyStore()

		company := &models.Company{Name: "Doomed"}
		require.NoError(t, st.Create(ctx, company))
		require.NoError(t, st.Delete(ctx, company.ID))

		_, err := st.GetByID(ctx, company.ID)
		require.ErrorIs(t, err, store.ErrCompanyNotFound)

		_, err = st.resolveCode(company.ExternalCode)
		require.ErrorIs(t, err, store.ErrCompanyNotFound)
	})

	t.Run("second delete returns not found", func(t *testing.T) {
		st := NewCompanyStore()

		company := &models.Company{Name: "Doomed"}
		require.NoError(t, st.Create(ctx, company))
		require.NoError(t, st.Delete(ctx, company.ID))
		require.ErrorIs(t, st.Delete(ctx, company.ID), store.ErrCompanyNotFound)
	})
}
