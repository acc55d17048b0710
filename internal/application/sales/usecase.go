package sales

import (
	"context"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/application/dto"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UseCase orquesta las órdenes de venta: creación con totales calculados,
// edición de órdenes PENDING y transiciones de estado terminales.
type UseCase struct {
	orderRepo   repository.SalesOrderRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(orderRepo repository.SalesOrderRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{orderRepo: orderRepo, productRepo: productRepo}
}

// Create crea una orden PENDING con subtotal, IGV y total calculados.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
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

	shippingType := in.ShippingType
	if shippingType == "" {
		shippingType = entity.ShippingTypePickup
	}
	order := &entity.SalesOrder{
		ID:              uuid.New().String(),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		ShippingCost:    in.ShippingCost,
		ShippingType:    shippingType,
		ShippingAddress: in.ShippingAddress,
		DeliveryDate:    in.DeliveryDate,
		Status:          entity.SalesStatusPending,
		ProductName:     product.Name,
		CreatedAt:       time.Now(),
	}
	order.RecomputeTotals()

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return toResponse(order), nil
}

// Get obtiene una orden por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SalesOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return toResponse(order), nil
}

// List lista todas las órdenes de venta.
func (uc *UseCase) List(ctx context.Context) ([]dto.SalesOrderResponse, error) {
	list, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toResponse(o))
	}
	return items, nil
}

// Update edición de una orden PENDING; los totales se recalculan con cada cambio.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
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

	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.CustomerEmail != nil {
		order.CustomerEmail = *in.CustomerEmail
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
	if in.ShippingCost != nil {
		order.ShippingCost = *in.ShippingCost
	}
	if in.ShippingType != nil {
		order.ShippingType = *in.ShippingType
	}
	if in.ShippingAddress != nil {
		order.ShippingAddress = in.ShippingAddress
	}
	if in.DeliveryDate != nil {
		order.DeliveryDate = in.DeliveryDate
	}
	order.RecomputeTotals()

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return toResponse(order), nil
}

// UpdateStatus transición PENDING -> COMPLETED | CANCELLED. Los estados
// terminales no admiten más transiciones.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateSalesStatusRequest) (*dto.SalesOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !order.CanTransitionTo(in.Status) {
		return nil, domain.ErrConflict
	}
	if err := uc.orderRepo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	order.Status = in.Status
	return toResponse(order), nil
}

// Delete elimina una orden.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}
	return uc.orderRepo.Delete(ctx, id)
}

// KPIs calcula los indicadores de ventas; el ingreso total excluye órdenes CANCELLED.
func (uc *UseCase) KPIs(ctx context.Context) (*dto.SalesKPIsResponse, error) {
	orders, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.SalesKPIsResponse{TotalRevenue: decimal.Zero}
	for _, o := range orders {
		out.TotalOrders++
		switch o.Status {
		case entity.SalesStatusCompleted:
			out.CompletedOrders++
		case entity.SalesStatusCancelled:
			out.CancelledOrders++
		}
		if o.Status != entity.SalesStatusCancelled {
			out.TotalRevenue = out.TotalRevenue.Add(o.TotalAmount)
		}
	}
	return out, nil
}

func toResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.SalesOrderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ProductID:       o.ProductID,
		ProductName:     o.ProductName,
		Quantity:        o.Quantity,
		UnitPrice:       o.UnitPrice,
		Subtotal:        o.Subtotal,
		TaxAmount:       o.TaxAmount,
		TotalAmount:     o.TotalAmount,
		ShippingCost:    o.ShippingCost,
		ShippingType:    o.ShippingType,
		ShippingAddress: o.ShippingAddress,
		DeliveryDate:    o.DeliveryDate,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
}
