package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/application/dto"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/repository"
	"github.com/GustavoCollie/GUSMI-STORE/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UseCase orquesta proveedores, órdenes de compra y la recepción idempotente
// de stock (conciliación OC -> libro de movimientos).
type UseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	orderRepo    repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		log:          log,
	}
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplier crea un proveedor y lo vincula a los productos indicados.
func (uc *UseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	supplier := &entity.Supplier{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		RUC:             in.RUC,
		ContactName:     in.ContactName,
		ContactPosition: in.ContactPosition,
		IsActive:        isActive,
		ProductIDs:      in.ProductIDs,
	}
	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	for _, productID := range in.ProductIDs {
		if err := uc.supplierRepo.LinkProduct(ctx, supplier.ID, productID); err != nil {
			return nil, err
		}
	}
	return toSupplierResponse(supplier), nil
}

// UpdateSupplier actualización parcial con campos opcionales explícitos.
func (uc *UseCase) UpdateSupplier(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.RUC != nil {
		supplier.RUC = *in.RUC
	}
	if in.ContactName != nil {
		supplier.ContactName = *in.ContactName
	}
	if in.ContactPosition != nil {
		supplier.ContactPosition = *in.ContactPosition
	}
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	if in.ProductIDs != nil {
		supplier.ProductIDs = in.ProductIDs
	}
	if err := uc.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	// ProductIDs reemplaza el conjunto completo: los vínculos ausentes de la
	// lista se eliminan, no solo se añaden los nuevos.
	if in.ProductIDs != nil {
		if err := uc.supplierRepo.UnlinkProducts(ctx, id); err != nil {
			return nil, err
		}
		for _, productID := range in.ProductIDs {
			if err := uc.supplierRepo.LinkProduct(ctx, id, productID); err != nil {
				return nil, err
			}
		}
	}
	return toSupplierResponse(supplier), nil
}

// ListSuppliers lista proveedores con paginación.
func (uc *UseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.supplierRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// DeleteSupplier elimina un proveedor.
func (uc *UseCase) DeleteSupplier(ctx context.Context, id string) error {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrSupplierNotFound
	}
	return uc.supplierRepo.Delete(ctx, id)
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

// CreateOrder crea una orden PENDING con IGV y total calculados, y vincula
// automáticamente el proveedor con el producto.
func (uc *UseCase) CreateOrder(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	order := &entity.PurchaseOrder{
		ID:                       uuid.New().String(),
		SupplierID:               in.SupplierID,
		ProductID:                in.ProductID,
		Quantity:                 in.Quantity,
		UnitPrice:                in.UnitPrice,
		Currency:                 currency,
		SavingsAmount:            in.SavingsAmount,
		FreightAmount:            in.FreightAmount,
		OtherExpensesAmount:      in.OtherExpensesAmount,
		OtherExpensesDescription: in.OtherExpensesDescription,
		Status:                   entity.PurchaseStatusPending,
		ExpectedDeliveryDate:     in.ExpectedDeliveryDate,
		SupplierName:             supplier.Name,
		ProductName:              product.Name,
		CreatedAt:                time.Now(),
	}
	order.RecomputeTotals()

	// Asociación automática proveedor-producto
	if err := uc.supplierRepo.LinkProduct(ctx, order.SupplierID, order.ProductID); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetOrder obtiene una orden por ID.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista órdenes con paginación.
func (uc *UseCase) ListOrders(ctx context.Context, limit, offset int) ([]dto.PurchaseOrderResponse, error) {
	list, err := uc.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items, nil
}

// UpdateOrder edición general de una orden PENDING; los totales se recalculan
// con cada cambio. Órdenes en estado terminal no se editan.
func (uc *UseCase) UpdateOrder(ctx context.Context, id string, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if order.IsTerminal() {
		return nil, domain.ErrConflict
	}

	if in.SupplierID != nil {
		order.SupplierID = *in.SupplierID
	}
	if in.ProductID != nil {
		order.ProductID = *in.ProductID
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		order.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		order.UnitPrice = *in.UnitPrice
	}
	if in.Currency != nil {
		order.Currency = *in.Currency
	}
	if in.ExpectedDeliveryDate != nil {
		order.ExpectedDeliveryDate = in.ExpectedDeliveryDate
	}
	if in.SavingsAmount != nil {
		order.SavingsAmount = *in.SavingsAmount
	}
	if in.FreightAmount != nil {
		order.FreightAmount = *in.FreightAmount
	}
	if in.OtherExpensesAmount != nil {
		order.OtherExpensesAmount = *in.OtherExpensesAmount
	}
	if in.OtherExpensesDescription != nil {
		order.OtherExpensesDescription = in.OtherExpensesDescription
	}
	order.RecomputeTotals()

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// DeleteOrder elimina una orden.
func (uc *UseCase) DeleteOrder(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}
	return uc.orderRepo.Delete(ctx, id)
}

// MarkReceived concilia la recepción de una orden: transición PENDING -> RECEIVED
// aplicando exactamente un movimiento INGRESO al libro, de forma segura ante
// reintentos y fallos parciales.
//
// Toda la conciliación corre en una transacción con la fila de la orden
// bloqueada (FOR UPDATE):
//  1. El movimiento asociado se busca por purchase_order_id (clave de
//     idempotencia estructurada con índice único; el token legible
//     "OC <id corto>" solo se embebe en la referencia).
//  2. Si ya existe, no se toca el libro ni el stock; los metadatos y el
//     estado de la orden sí se persisten (reintento de un fallo parcial).
//  3. Si no existe: se bloquea la fila del producto, se suma el stock y se
//     inserta el movimiento; solo entonces se persiste el estado RECEIVED.
//  4. Cualquier fallo en la escritura del libro aborta la transacción: la
//     orden sigue PENDING y el reintento vuelve a entrar aquí sin riesgo de
//     doble aplicación (como máximo un movimiento por orden).
func (uc *UseCase) MarkReceived(ctx context.Context, orderID string, in dto.ReceiveOrderRequest) (*dto.PurchaseOrderResponse, error) {
	var received *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status == entity.PurchaseStatusRejected {
			return domain.ErrConflict
		}

		order.InvoiceNumber = in.InvoiceNumber
		order.ReferralGuideNumber = in.ReferralGuideNumber
		order.InvoicePath = in.InvoicePath
		order.ReferralGuidePath = in.ReferralGuidePath
		if in.ActualDeliveryDate != nil {
			order.ActualDeliveryDate = in.ActualDeliveryDate
		}

		// Asegura el vínculo proveedor-producto antes de la recepción
		if err := supplierRepo.LinkProduct(ctx, order.SupplierID, order.ProductID); err != nil {
			return err
		}

		existing, err := movRepo.GetByPurchaseOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			uc.log.Info().Str("order_id", order.ID).Msg("stock de la orden ya procesado, se omite el libro")
		} else {
			if err := uc.applyReceipt(ctx, movRepo, productRepo, order); err != nil {
				return err
			}
		}

		order.Status = entity.PurchaseStatusReceived
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		received = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", received.ID).Int("quantity", received.Quantity).Msg("orden de compra recibida")
	return toOrderResponse(received), nil
}

// applyReceipt suma el stock de la orden y escribe el movimiento INGRESO.
// Se ejecuta dentro de la transacción de MarkReceived.
func (uc *UseCase) applyReceipt(
	ctx context.Context,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	order *entity.PurchaseOrder,
) error {
	product, err := productRepo.GetForUpdate(ctx, order.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	now := time.Now()
	if err := product.AddStock(order.Quantity, now); err != nil {
		return err
	}
	if err := productRepo.Update(ctx, product); err != nil {
		return err
	}

	reference := fmt.Sprintf("ENTRADA POR COMPRA: %s | Factura: %s | Guía: %s",
		order.ReceiptToken(), orNA(order.InvoiceNumber), orNA(order.ReferralGuideNumber))
	mov, err := entity.NewMovement(uuid.New().String(), order.ProductID, order.Quantity, entity.MovementTypeIngreso, reference, now)
	if err != nil {
		return err
	}
	orderID := order.ID
	mov.PurchaseOrderID = &orderID
	if order.InvoicePath != nil {
		mov.DocumentPath = order.InvoicePath
	} else {
		mov.DocumentPath = order.ReferralGuidePath
	}

	if err := movRepo.Create(ctx, mov); err != nil {
		// Carrera con otra recepción de la misma orden: el índice único sobre
		// purchase_order_id la detecta; el stock de esta tx se descarta junto
		// con el rollback del caller si el error no es de duplicado.
		if errors.Is(err, domain.ErrDuplicate) {
			uc.log.Warn().Str("order_id", order.ID).Msg("movimiento de recepción duplicado detectado por índice único")
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

// Reject transición PENDING -> REJECTED (terminal) con motivo.
func (uc *UseCase) Reject(ctx context.Context, orderID string, in dto.RejectOrderRequest) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if order.IsTerminal() {
		return nil, domain.ErrConflict
	}
	order.Status = entity.PurchaseStatusRejected
	order.IsRejected = true
	order.RejectionReason = &in.Reason
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// KPIs calcula los indicadores de compras sobre todas las órdenes:
// % de calidad (rechazos), CTA total, ahorro total y cumplimiento de plazos.
func (uc *UseCase) KPIs(ctx context.Context) (*dto.PurchaseKPIsResponse, error) {
	orders, err := uc.orderRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseKPIsResponse{
		QualityRate:        decimal.Zero,
		TotalCTA:           decimal.Zero,
		TotalSavings:       decimal.Zero,
		OnTimeDeliveryRate: decimal.Zero,
		TotalOrders:        len(orders),
	}
	if len(orders) == 0 {
		return out, nil
	}

	rejected := 0
	finished := 0
	onTime := 0
	for _, o := range orders {
		if o.IsRejected || o.Status == entity.PurchaseStatusRejected {
			rejected++
		}
		out.TotalCTA = out.TotalCTA.Add(o.TotalAmount)
		out.TotalSavings = out.TotalSavings.Add(o.SavingsAmount)
		if o.ActualDeliveryDate != nil {
			finished++
			if o.ExpectedDeliveryDate != nil && !o.ActualDeliveryDate.After(*o.ExpectedDeliveryDate) {
				onTime++
			}
		}
	}
	out.RejectedOrders = rejected
	hundred := decimal.NewFromInt(100)
	out.QualityRate = decimal.NewFromInt(int64(rejected)).Mul(hundred).
		Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	if finished > 0 {
		out.OnTimeDeliveryRate = decimal.NewFromInt(int64(onTime)).Mul(hundred).
			Div(decimal.NewFromInt(int64(finished))).Round(2)
	}
	return out, nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		RUC:             s.RUC,
		ContactName:     s.ContactName,
		ContactPosition: s.ContactPosition,
		IsActive:        s.IsActive,
		ProductIDs:      s.ProductIDs,
		Products:        s.ProductNames,
	}
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.PurchaseOrderResponse{
		ID:                       o.ID,
		SupplierID:               o.SupplierID,
		SupplierName:             o.SupplierName,
		ProductID:                o.ProductID,
		ProductName:              o.ProductName,
		Quantity:                 o.Quantity,
		UnitPrice:                o.UnitPrice,
		TaxAmount:                o.TaxAmount,
		TotalAmount:              o.TotalAmount,
		Currency:                 o.Currency,
		SavingsAmount:            o.SavingsAmount,
		FreightAmount:            o.FreightAmount,
		OtherExpensesAmount:      o.OtherExpensesAmount,
		OtherExpensesDescription: o.OtherExpensesDescription,
		Status:                   o.Status,
		ExpectedDeliveryDate:     o.ExpectedDeliveryDate,
		ActualDeliveryDate:       o.ActualDeliveryDate,
		IsRejected:               o.IsRejected,
		RejectionReason:          o.RejectionReason,
		InvoiceNumber:            o.InvoiceNumber,
		ReferralGuideNumber:      o.ReferralGuideNumber,
		CreatedAt:                o.CreatedAt,
	}
}
