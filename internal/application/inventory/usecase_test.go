package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/application/dto"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/inventory"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products    map[string]*entity.Product
	errGetBySKU error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*entity.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	if r.errGetBySKU != nil {
		return nil, r.errGetBySKU
	}
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) TotalStock(_ context.Context) (int, error) {
	total := 0
	for _, p := range r.products {
		total += p.Stock
	}
	return total, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

type memMovementRepo struct {
	movements []*entity.Movement
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) GetByPurchaseOrder(_ context.Context, purchaseOrderID string) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.PurchaseOrderID != nil && *m.PurchaseOrderID == purchaseOrderID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0, len(r.movements))
	for _, m := range r.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) FindInitial(_ context.Context, productID string) (*entity.Movement, error) {
	var initial *entity.Movement
	for _, m := range r.movements {
		if m.ProductID != productID || !m.IsEntry() {
			continue
		}
		if initial == nil || m.Date.Before(initial.Date) {
			initial = m
		}
	}
	if initial == nil {
		return nil, nil
	}
	cp := *initial
	return &cp, nil
}

func (r *memMovementRepo) UpdateInitial(_ context.Context, mov *entity.Movement) error {
	for _, m := range r.movements {
		if m.ID == mov.ID {
			m.Reference = mov.Reference
			m.DocumentPath = mov.DocumentPath
			return nil
		}
	}
	return domain.ErrMovementNotFound
}

// memTxRunner ejecuta el callback directamente, sin transacción real.
type memTxRunner struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	repository.MovementRepository,
	repository.ProductRepository,
) error) error {
	return fn(r.movRepo, r.productRepo)
}

type invFixture struct {
	uc        *inventory.UseCase
	products  *memProductRepo
	movements *memMovementRepo
}

func newInvFixture(t *testing.T) *invFixture {
	t.Helper()
	products := newMemProductRepo()
	movements := &memMovementRepo{}
	tx := &memTxRunner{movRepo: movements, productRepo: products}
	return &invFixture{
		uc:        inventory.NewUseCase(tx, products, movements),
		products:  products,
		movements: movements,
	}
}

func (f *invFixture) seedProduct(id string, stock int) {
	f.products.products[id] = &entity.Product{ID: id, Name: "Teclado", SKU: "SKU-" + id, Stock: stock}
}

func (f *invFixture) seedExit(id, productID string, qty int, returnable bool) {
	f.movements.movements = append(f.movements.movements, &entity.Movement{
		ID:           id,
		ProductID:    productID,
		Quantity:     qty,
		Type:         entity.MovementTypeExit,
		Reference:    "ENTREGA A ALMACÉN",
		IsReturnable: returnable,
		Date:         time.Now().Add(-time.Hour),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_ConStockInicial_RegistraTrazabilidad(t *testing.T) {
	f := newInvFixture(t)

	out, err := f.uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Mouse", SKU: "SKU-M1", Stock: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Stock)

	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, entity.MovementTypeEntry, mov.Type)
	assert.Equal(t, 7, mov.Quantity)
	assert.Equal(t, inventory.DefaultInitialReference, mov.Reference)
}

func TestCreateProduct_StockCero_NoRegistraMovimiento(t *testing.T) {
	f := newInvFixture(t)

	_, err := f.uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Mouse", SKU: "SKU-M1", Stock: 0,
	})
	require.NoError(t, err)
	assert.Empty(t, f.movements.movements)
}

func TestCreateProduct_SKUDuplicado_RetornaDuplicate(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 1)

	_, err := f.uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Otro", SKU: "SKU-p1", Stock: 0,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_FallaLaConsultaDeSKU_PropagaElError(t *testing.T) {
	f := newInvFixture(t)
	dbErr := errors.New("conexión perdida")
	f.products.errGetBySKU = dbErr

	_, err := f.uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Mouse", SKU: "SKU-M1", Stock: 0,
	})
	assert.ErrorIs(t, err, dbErr,
		"un fallo transitorio de BD no debe tratarse como SKU libre")
	assert.Empty(t, f.products.products)
}

func TestPatchProduct_CorrigeTrazabilidadInicial(t *testing.T) {
	f := newInvFixture(t)
	out, err := f.uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Mouse", SKU: "SKU-M1", Stock: 5,
	})
	require.NoError(t, err)

	nuevaRef := "Factura inicial B001-45"
	_, err = f.uc.PatchProduct(context.Background(), out.ID, dto.PatchProductRequest{
		InitialReference: &nuevaRef,
	})
	require.NoError(t, err)

	initial, err := f.movements.FindInitial(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, initial)
	assert.Equal(t, nuevaRef, initial.Reference)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingresos y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveStock_SumaYRegistraEntrada(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 10)

	out, err := f.uc.ReceiveStock(context.Background(), "p1", dto.ReceiveStockRequest{
		Quantity: 5, Reference: "compra local",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, out.Stock)
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, entity.MovementTypeEntry, f.movements.movements[0].Type)
}

func TestDispatchStock_StockInsuficiente_NoMutaNada(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 3)

	_, err := f.uc.DispatchStock(context.Background(), "p1", dto.DispatchStockRequest{
		Quantity: 5, Reference: "venta mostrador",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	product, _ := f.products.GetByID(context.Background(), "p1")
	assert.Equal(t, 3, product.Stock)
	assert.Empty(t, f.movements.movements, "una salida fallida no debe tocar el libro")
}

func TestDispatchStock_TipoPorDefectoEsExit(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 10)

	_, err := f.uc.DispatchStock(context.Background(), "p1", dto.DispatchStockRequest{
		Quantity: 2, Reference: "entrega interna",
	})
	require.NoError(t, err)
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, entity.MovementTypeExit, f.movements.movements[0].Type)
}

func TestDispatchStock_TipoDeEntrada_RetornaInvalido(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 10)

	_, err := f.uc.DispatchStock(context.Background(), "p1", dto.DispatchStockRequest{
		Quantity: 2, Type: entity.MovementTypeIngreso, Reference: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterReturn_DevolucionParcial(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 0)
	f.seedExit("e1", "p1", 10, true)

	out, err := f.uc.RegisterReturn(context.Background(), dto.RegisterReturnRequest{
		ExitMovementID: "e1", Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Stock)

	require.Len(t, f.movements.movements, 2)
	ret := f.movements.movements[1]
	assert.Equal(t, entity.MovementTypeReturn, ret.Type)
	require.NotNil(t, ret.ParentID)
	assert.Equal(t, "e1", *ret.ParentID)
	assert.Contains(t, ret.Reference, "DEVOLUCIÓN:")
}

func TestRegisterReturn_ExcedeLoPendiente_RetornaConflicto(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 0)
	f.seedExit("e1", "p1", 10, true)

	_, err := f.uc.RegisterReturn(context.Background(), dto.RegisterReturnRequest{
		ExitMovementID: "e1", Quantity: 7,
	})
	require.NoError(t, err)

	// Quedan 3 pendientes; devolver 4 debe fallar sin mutar nada.
	_, err = f.uc.RegisterReturn(context.Background(), dto.RegisterReturnRequest{
		ExitMovementID: "e1", Quantity: 4,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	product, _ := f.products.GetByID(context.Background(), "p1")
	assert.Equal(t, 7, product.Stock)
}

func TestRegisterReturn_SalidaNoDevolutiva_RetornaInvalido(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 0)
	f.seedExit("e1", "p1", 10, false)

	_, err := f.uc.RegisterReturn(context.Background(), dto.RegisterReturnRequest{
		ExitMovementID: "e1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPendingReturns_ListaSalidasConPendiente(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct("p1", 0)
	f.seedExit("e1", "p1", 10, true)
	f.seedExit("e2", "p1", 5, false)

	_, err := f.uc.RegisterReturn(context.Background(), dto.RegisterReturnRequest{
		ExitMovementID: "e1", Quantity: 6,
	})
	require.NoError(t, err)

	out, err := f.uc.PendingReturns(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "e1", out[0].Movement.ID)
	assert.Equal(t, 6, out[0].ReturnedQty)
	assert.Equal(t, 4, out[0].PendingQuantity)
}
