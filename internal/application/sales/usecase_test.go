package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/application/dto"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/sales"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSalesOrderRepo struct {
	orders map[string]*entity.SalesOrder
}

func newFakeSalesOrderRepo() *fakeSalesOrderRepo {
	return &fakeSalesOrderRepo{orders: make(map[string]*entity.SalesOrder)}
}

func (r *fakeSalesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeSalesOrderRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeSalesOrderRepo) Update(_ context.Context, o *entity.SalesOrder) error {
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeSalesOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeSalesOrderRepo) List(_ context.Context) ([]*entity.SalesOrder, error) {
	out := make([]*entity.SalesOrder, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSalesOrderRepo) ListCreatedBetween(_ context.Context, from, to time.Time) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	for _, o := range r.orders {
		if !o.CreatedAt.Before(from) && !o.CreatedAt.After(to) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSalesOrderRepo) Delete(_ context.Context, id string) error {
	delete(r.orders, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) TotalStock(_ context.Context) (int, error) { return 0, nil }

func (r *fakeProductRepo) Delete(_ context.Context, _ string) error { return nil }

type salesFixture struct {
	uc     *sales.UseCase
	orders *fakeSalesOrderRepo
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	orders := newFakeSalesOrderRepo()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Monitor 24\"", SKU: "SKU-p1", Stock: 50},
	}}
	return &salesFixture{uc: sales.NewUseCase(orders, products), orders: orders}
}

func (f *salesFixture) seedOrder(id, status string, total float64) {
	f.orders.orders[id] = &entity.SalesOrder{
		ID:          id,
		ProductID:   "p1",
		Quantity:    1,
		Status:      status,
		TotalAmount: decimal.NewFromFloat(total),
		CreatedAt:   time.Now(),
	}
}

func TestCreate_CalculaTotalesYEstadoInicial(t *testing.T) {
	f := newSalesFixture(t)

	out, err := f.uc.Create(context.Background(), dto.CreateSalesOrderRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		ProductID:     "p1",
		Quantity:      2,
		UnitPrice:     decimal.NewFromFloat(100.00),
	})
	require.NoError(t, err)

	// subtotal 200, IGV 36, sin envío: total 236
	assert.True(t, out.Subtotal.Equal(decimal.NewFromFloat(200.00)), "subtotal: %s", out.Subtotal)
	assert.True(t, out.TaxAmount.Equal(decimal.NewFromFloat(36.00)), "IGV: %s", out.TaxAmount)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(236.00)), "total: %s", out.TotalAmount)
	assert.Equal(t, entity.SalesStatusPending, out.Status)
	assert.Equal(t, entity.ShippingTypePickup, out.ShippingType, "sin tipo de envío se asume recojo en tienda")
	assert.Equal(t, "Monitor 24\"", out.ProductName)
}

func TestCreate_ConEnvio_SumaElCostoAlTotal(t *testing.T) {
	f := newSalesFixture(t)

	out, err := f.uc.Create(context.Background(), dto.CreateSalesOrderRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		ProductID:     "p1",
		Quantity:      2,
		UnitPrice:     decimal.NewFromFloat(100.00),
		ShippingCost:  decimal.NewFromFloat(15.00),
		ShippingType:  entity.ShippingTypeDelivery,
	})
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(251.00)), "total: %s", out.TotalAmount)
	assert.Equal(t, entity.ShippingTypeDelivery, out.ShippingType)
}

func TestCreate_ProductoInexistente_RetornaNotFound(t *testing.T) {
	f := newSalesFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateSalesOrderRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		ProductID:     "no-existe",
		Quantity:      1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreate_CantidadInvalida_RetornaInvalido(t *testing.T) {
	f := newSalesFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateSalesOrderRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		ProductID:     "p1",
		Quantity:      0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_RecalculaTotales(t *testing.T) {
	f := newSalesFixture(t)
	out, err := f.uc.Create(context.Background(), dto.CreateSalesOrderRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		ProductID:     "p1",
		Quantity:      2,
		UnitPrice:     decimal.NewFromFloat(100.00),
	})
	require.NoError(t, err)

	qty := 3
	updated, err := f.uc.Update(context.Background(), out.ID, dto.UpdateSalesOrderRequest{
		Quantity: &qty,
	})
	require.NoError(t, err)
	// 3 × 100 = 300, IGV 54, total 354
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromFloat(354.00)), "total: %s", updated.TotalAmount)
}

func TestUpdate_OrdenTerminal_RetornaConflicto(t *testing.T) {
	f := newSalesFixture(t)
	f.seedOrder("s1", entity.SalesStatusCompleted, 100)

	nombre := "Otro Cliente"
	_, err := f.uc.Update(context.Background(), "s1", dto.UpdateSalesOrderRequest{
		CustomerName: &nombre,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_CantidadCero_RetornaInvalido(t *testing.T) {
	f := newSalesFixture(t)
	f.seedOrder("s1", entity.SalesStatusPending, 100)

	qty := 0
	_, err := f.uc.Update(context.Background(), "s1", dto.UpdateSalesOrderRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_PendienteACompletada(t *testing.T) {
	f := newSalesFixture(t)
	f.seedOrder("s1", entity.SalesStatusPending, 100)

	out, err := f.uc.UpdateStatus(context.Background(), "s1", dto.UpdateSalesStatusRequest{
		Status: entity.SalesStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SalesStatusCompleted, out.Status)

	stored, _ := f.orders.GetByID(context.Background(), "s1")
	assert.Equal(t, entity.SalesStatusCompleted, stored.Status)
}

func TestUpdateStatus_DesdeTerminal_RetornaConflicto(t *testing.T) {
	f := newSalesFixture(t)
	f.seedOrder("s1", entity.SalesStatusCompleted, 100)

	_, err := f.uc.UpdateStatus(context.Background(), "s1", dto.UpdateSalesStatusRequest{
		Status: entity.SalesStatusCancelled,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_EstadoDesconocido_RetornaConflicto(t *testing.T) {
	f := newSalesFixture(t)
	f.seedOrder("s1", entity.SalesStatusPending, 100)

	_, err := f.uc.UpdateStatus(context.Background(), "s1", dto.UpdateSalesStatusRequest{
		Status: "ENVIADA",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDelete_OrdenInexistente_RetornaNotFound(t *testing.T) {
	f := newSalesFixture(t)
	err := f.uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestKPIs_ElIngresoExcluyeCanceladas(t *testing.T) {
	f := newSalesFixture(t)
	f.seedOrder("s1", entity.SalesStatusCompleted, 236)
	f.seedOrder("s2", entity.SalesStatusPending, 118)
	f.seedOrder("s3", entity.SalesStatusCancelled, 999)

	out, err := f.uc.KPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalOrders)
	assert.Equal(t, 1, out.CompletedOrders)
	assert.Equal(t, 1, out.CancelledOrders)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromFloat(354.00)), "ingreso: %s", out.TotalRevenue)
}
