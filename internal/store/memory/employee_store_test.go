package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-mcp/internal/models"
	"github.com/appointly/booking-mcp/internal/store"
)

func newTestCompany(t *testing.T, companies *CompanyStore, name string) *models.Company {
	t.Helper()

	company := &models.Company{Name: name}
	require.NoError(t, companies.Create(context.Background(), company))
	return company
}

func TestEmployeeStoreCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves external code to internal company id", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewEmployeeStore(companies)
		company := newTestCompany(t, companies, "Glow Salon")

		employee := &models.Employee{Name: "Ana", Email: "ana@example.com"}
		require.NoError(t, st.Create(ctx, company.ExternalCode, employee))

		require.Equal(t, company.ID, employee.CompanyID)
		require.NotEqual(t, company.ExternalCode, employee.CompanyID)
	})

	t.Run("unknown code fails closed without writing", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewEmployeeStore(companies)

		employee := &models.Employee{Name: "Ana"}
		err := st.Create(ctx, 9999, employee)
		require.ErrorIs(t, err, store.ErrCompanyNotFound)
		require.Zero(t, employee.ID)
	})
}

func TestEmployeeStoreList(t *testing.T) {
	ctx := context.Background()

	t.Run("scopes to the addressed company, newest first", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewEmployeeStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")
		barber := newTestCompany(t, companies, "Barber Bros")

		require.NoError(t, st.Create(ctx, glow.ExternalCode, &models.Employee{Name: "Ana"}))
		require.NoError(t, st.Create(ctx, barber.ExternalCode, &models.Employee{Name: "Bob"}))
		require.NoError(t, st.Create(ctx, glow.ExternalCode, &models.Employee{Name: "Cara"}))

		employees, err := st.List(ctx, store.EmployeeFilter{CompanyCode: glow.ExternalCode})
		require.NoError(t, err)
		require.Len(t, employees, 2)
		require.Equal(t, "Cara", employees[0].Name)
		require.Equal(t, "Ana", employees[1].Name)
	})

	t.Run("unknown company code is an error, not an empty list", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewEmployeeStore(companies)

		_, err := st.List(ctx, store.EmployeeFilter{CompanyCode: 9999})
		require.ErrorIs(t, err, store.ErrCompanyNotFound)
	})

	t.Run("filters by partial name and exact email", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewEmployeeStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")

		require.NoError(t, st.Create(ctx, glow.ExternalCode, &models.Employee{Name: "Ana Maria", Email: "ana@example.com"}))
		require.NoError(t, st.Create(ctx, glow.ExternalCode, &models.Employee{Name: "Mariana", Email: "mariana@example.com"}))

		employees, err := st.List(ctx, store.EmployeeFilter{CompanyCode: glow.ExternalCode, Name: "maria"})
		require.NoError(t, err)
		require.Len(t, employees, 2)

		employees, err = st.List(ctx, store.EmployeeFilter{CompanyCode: glow.ExternalCode, Email: "ana@example.com"})
		require.NoError(t, err)
		require.Len(t, employees, 1)
		require.Equal(t, "Ana Maria", employees[0].Name)
	})
}

func TestEmployeeStoreUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("moves employee between companies by external code", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewEmployeeStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")
		barber := newTestCompany(t, companies, "Barber Bros")

		employee := &models.Employee{Name: "Ana"}
		require.NoError(t, st.Create(ctx, glow.ExternalCode, employee))

		updated, err := st.Update(ctx, employee.ID, store.EmployeePatch{CompanyCode: &barber.ExternalCode})
		require.NoError(t, err)
		require.Equal(t, barber.ID, updated.CompanyID)
	})

	t.Run("unknown target code leaves the record unchanged", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewEmployeeStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")

		employee := &models.Employee{Name: "Ana"}
		require.NoError(t, st.Create(ctx, glow.ExternalCode, employee))

		badCode := int64(9999)
		_, err := st.Update(ctx, employee.ID, store.EmployeePatch{CompanyCode: &badCode})
		require.ErrorIs(t, err, store.ErrCompanyNotFound)

		got, err := st.GetByID(ctx, employee.ID)
		require.NoError(t, err)
		require.Equal(t, glow.ID, got.CompanyID)
	})
}

func TestEmployeeStoreDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("second delete returns not found", func(t *testing.T) {
		companies := NewCompanyStore()
		st := NewEmployeeStore(companies)
		glow := newTestCompany(t, companies, "Glow Salon")

		employee := &models.Employee{Name: "Ana"}
		require.NoError(t, st.Create(ctx, glow.ExternalCode, employee))
		require.NoError(t, st.Delete(ctx, employee.ID))
		require.ErrorIs(t, st.Delete(ctx, employee.ID), store.ErrEmployeeNotFound)
	})
}
