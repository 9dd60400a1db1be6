package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

func TestServiceStoreCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves external code before writing", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewServiceStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")

		service := &models.Service{Name: "Haircut", Price: 35, Duration: 30}
		require.NoError(t, st.Create(ctx, glow.ExternalCode, service))
		require.Equal(t, glow.ID, service.CompanyID)
	})

	t.Run("unknown code fails closed", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewServiceStore(companies)

		service := &models.Service{Name: "Haircut", Price: 35, Duration: 30}
		require.ErrorIs(t, st.Create(ctx, 9999, service), store.ErrCompanyNotFound)
		require.Zero(t, service.ID)
	})
}

func TestServiceStoreList(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*ServiceStore, *models.Company) {
		t.Helper()

		companies := NewCompanyStore()
		st := NewServiceStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")

		require.NoError(t, st.Create(ctx, glow.ExternalCode, &models.Service{Name: "Haircut", Price: 35, Duration: 30, Category: "hair"}))
		require.NoError(t, st.Create(ctx, glow.ExternalCode, &models.Service{Name: "Coloring", Price: 120, Duration: 90, Category: "hair"}))
		require.NoError(t, st.Create(ctx, glow.ExternalCode, &models.Service{Name: "Manicure", Price: 45, Duration: 45, Category: "nails"}))
		return st, glow
	}

	t.Run("orders newest first", func(t *testing.T) {
		st, glow := seed(t)

		services, err := st.List(ctx, store.ServiceFilter{CompanyCode: glow.ExternalCode})
		require.NoError(t, err)
		require.Len(t, services, 3)
		require.Equal(t, "Manicure", services[0].Name)
		require.Equal(t, "Haircut", services[2].Name)
	})

	t.Run("category filter matches exactly", func(t *testing.T) {
		st, glow := seed(t)

		services, err := st.List(ctx, store.ServiceFilter{CompanyCode: glow.ExternalCode, Category: "hair"})
		require.NoError(t, err)
		require.Len(t, services, 2)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		st, glow := seed(t)

		min, max := 35.0, 45.0
		services, err := st.List(ctx, store.ServiceFilter{
			CompanyCode: glow.ExternalCode,
			PriceMin:    &min,
			PriceMax:    &max,
		})
		require.NoError(t, err)
		require.Len(t, services, 2)
		for _, svc := range services {
			require.GreaterOrEqual(t, svc.Price, min)
			require.LessOrEqual(t, svc.Price, max)
		}
	})

	t.Run("lower bound alone", func(t *testing.T) {
		st, glow := seed(t)

		min := 100.0
		services, err := st.List(ctx, store.ServiceFilter{CompanyCode: glow.ExternalCode, PriceMin: &min})
		require.NoError(t, err)
		require.Len(t, services, 1)
		require.Equal(t, "Coloring", services[0].Name)
	})

	t.Run("unknown company code is an error", func(t *testing.T) {
		st, _ := seed(t)

		_, err := st.List(ctx, store.ServiceFilter{CompanyCode: 9999})
		require.ErrorIs(t, err, store.ErrCompanyNotFound)
	})
}

func TestServiceStoreUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only supplied fields", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewServiceStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")

		service := &models.Service{Name: "Haircut", Price: 35, Duration: 30, Category: "hair"}
		require.NoError(t, st.Create(ctx, glow.ExternalCode, service))

		price := 40.0
		updated, err := st.Update(ctx, service.ID, store.ServicePatch{Price: &price})
		require.NoError(t, err)
		require.Equal(t, 40.0, updated.Price)
		require.Equal(t, "Haircut", updated.Name)
		require.Equal(t, int32(30), updated.Duration)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewServiceStore(companies)

		price := 40.0
		_, err := st.Update(ctx, 42, store.ServicePatch{Price: &price})
		require.ErrorIs(t, err, store.ErrServiceNotFound)
	})
}

func TestServiceStoreDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("second delete returns not found", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewServiceStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")

		service := &models.Service{Name: "Haircut", Price: 35, Duration: 30}
		require.NoError(t, st.Create(ctx, glow.ExternalCode, service))
		require.NoError(t, st.Delete(ctx, service.ID))
		require.ErrorIs(t, st.Delete(ctx, service.ID), store.ErrServiceNotFound)
	})
}
