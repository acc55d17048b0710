package inventory

import (
	"context"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/application/dto"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	domaininv "github.com/GustavoCollie/GUSMI-STORE/internal/domain/inventory"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/repository"
	"github.com/google/uuid"
)

// DefaultInitialReference referencia por defecto del movimiento de trazabilidad inicial.
const DefaultInitialReference = "Registro Inicial"

// UseCase orquesta los casos de uso de inventario: productos, ingresos,
// salidas, devoluciones y consultas del libro de movimientos.
// Toda mutación de stock corre en una transacción con la fila del producto
// bloqueada (SELECT FOR UPDATE) y registra exactamente un movimiento.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// CreateProduct crea un producto y, si el stock inicial es mayor que cero,
// registra el movimiento ENTRY de trazabilidad inicial en la misma transacción.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.productRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product, err := entity.NewProduct(uuid.New().String(), in.Name, in.Description, in.SKU, in.Stock, now)
	if err != nil {
		return nil, err
	}

	reference := in.InitialReference
	if reference == "" {
		reference = DefaultInitialReference
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.Stock > 0 {
			mov, err := entity.NewMovement(uuid.New().String(), product.ID, product.Stock, entity.MovementTypeEntry, reference, now)
			if err != nil {
				return err
			}
			mov.DocumentPath = in.DocumentPath
			return movRepo.Create(ctx, mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// ListProducts lista todos los productos.
func (uc *UseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// UpdateProduct actualización completa de los datos descriptivos (PUT).
// El stock no se toca: solo cambia vía movimientos.
func (uc *UseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	product.Name = in.Name
	product.Description = in.Description
	product.SKU = in.SKU
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// PatchProduct actualización parcial con campos opcionales explícitos.
// Si se envía InitialReference/InitialDocumentPath corrige la entrada de
// trazabilidad inicial del producto (única mutación permitida del libro).
func (uc *UseCase) PatchProduct(ctx context.Context, id string, in dto.PatchProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.RetailPrice != nil {
		product.RetailPrice = in.RetailPrice
	}
	if in.IsPreorder != nil {
		product.IsPreorder = *in.IsPreorder
	}
	if in.PreorderPrice != nil {
		product.PreorderPrice = in.PreorderPrice
	}
	if in.EstimatedDeliveryDate != nil {
		product.EstimatedDeliveryDate = in.EstimatedDeliveryDate
	}
	if in.PreorderDescription != nil {
		product.PreorderDescription = in.PreorderDescription
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if in.InitialReference != nil || in.InitialDocumentPath != nil {
		initial, err := uc.movementRepo.FindInitial(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		if initial != nil {
			if in.InitialReference != nil {
				initial.Reference = *in.InitialReference
			}
			if in.InitialDocumentPath != nil {
				initial.DocumentPath = in.InitialDocumentPath
			}
			if err := uc.movementRepo.UpdateInitial(ctx, initial); err != nil {
				return nil, err
			}
		}
	}

	return toProductResponse(product), nil
}

// DeleteProduct elimina un producto y sus movimientos en cascada.
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.productRepo.Delete(ctx, id)
}

// ReceiveStock añade stock y registra el movimiento ENTRY en la misma transacción.
func (uc *UseCase) ReceiveStock(ctx context.Context, productID string, in dto.ReceiveStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		now := time.Now()
		if err := product.AddStock(in.Quantity, now); err != nil {
			return err
		}
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		mov, err := entity.NewMovement(uuid.New().String(), product.ID, in.Quantity, entity.MovementTypeEntry, in.Reference, now)
		if err != nil {
			return err
		}
		mov.DocumentPath = in.DocumentPath
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// DispatchStock resta stock por venta, consumo interno o salida devolutiva
// y registra el movimiento de salida en la misma transacción.
// Con stock insuficiente retorna InsufficientStockError sin mutar nada.
func (uc *UseCase) DispatchStock(ctx context.Context, productID string, in dto.DispatchStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	movType := in.Type
	if movType == "" {
		movType = entity.MovementTypeExit
	}
	switch movType {
	case entity.MovementTypeVenta, entity.MovementTypeConsumoInterno, entity.MovementTypeExit:
	default:
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		now := time.Now()
		if err := product.RemoveStock(in.Quantity, now); err != nil {
			return err
		}
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		mov, err := entity.NewMovement(uuid.New().String(), product.ID, in.Quantity, movType, in.Reference, now)
		if err != nil {
			return err
		}
		mov.DocumentPath = in.DocumentPath
		mov.Applicant = in.Applicant
		mov.ApplicantArea = in.ApplicantArea
		mov.IsReturnable = in.IsReturnable
		mov.ReturnDeadline = in.ReturnDeadline
		mov.RecipientEmail = in.RecipientEmail
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// RegisterReturn registra la devolución (parcial o total) de una salida
// devolutiva: valida la cantidad pendiente, suma stock y añade un movimiento
// RETURN con ParentID apuntando a la salida que cierra.
func (uc *UseCase) RegisterReturn(ctx context.Context, in dto.RegisterReturnRequest) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		exit, err := movRepo.GetByID(ctx, in.ExitMovementID)
		if err != nil {
			return err
		}
		if exit == nil {
			return domain.ErrMovementNotFound
		}
		if !exit.IsExit() || !exit.IsReturnable {
			return domain.ErrInvalidInput
		}

		siblings, err := movRepo.ListByProduct(ctx, exit.ProductID)
		if err != nil {
			return err
		}
		pending := domaininv.PendingQuantityFor(exit, siblings)
		if in.Quantity > pending {
			return domain.ErrConflict
		}

		product, err := productRepo.GetForUpdate(ctx, exit.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		now := time.Now()
		if err := product.AddStock(in.Quantity, now); err != nil {
			return err
		}
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		reference := in.Reference
		if reference == "" {
			reference = "DEVOLUCIÓN: " + exit.Reference
		}
		mov, err := entity.NewMovement(uuid.New().String(), exit.ProductID, in.Quantity, entity.MovementTypeReturn, reference, now)
		if err != nil {
			return err
		}
		parentID := exit.ID
		mov.ParentID = &parentID
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// ListMovements devuelve el libro completo (o filtrado por producto) en orden
// de fecha descendente.
func (uc *UseCase) ListMovements(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	var (
		list []*entity.Movement
		err  error
	)
	if productID != "" {
		list, err = uc.movementRepo.ListByProduct(ctx, productID)
	} else {
		list, err = uc.movementRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

// PendingReturns deriva las salidas devolutivas con retorno pendiente.
// Pliegue puro sobre el libro completo; se recalcula en cada consulta.
func (uc *UseCase) PendingReturns(ctx context.Context) ([]dto.PendingReturnResponse, error) {
	movements, err := uc.movementRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := domaininv.PendingReturns(movements)
	items := make([]dto.PendingReturnResponse, 0, len(pending))
	for _, p := range pending {
		items = append(items, dto.PendingReturnResponse{
			Movement:        *toMovementResponse(p.Exit),
			ReturnedQty:     p.ReturnedQty,
			PendingQuantity: p.PendingQuantity,
		})
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                       p.ID,
		Name:                     p.Name,
		Description:              p.Description,
		SKU:                      p.SKU,
		Stock:                    p.Stock,
		RetailPrice:              p.RetailPrice,
		ImagePath:                p.ImagePath,
		TechSheetPath:            p.TechSheetPath,
		IsPreorder:               p.IsPreorder,
		PreorderPrice:            p.PreorderPrice,
		EstimatedDeliveryDate:    p.EstimatedDeliveryDate,
		PreorderDescription:      p.PreorderDescription,
		HasPendingPurchaseOrders: p.HasPendingPurchaseOrders,
		UpdatedAt:                p.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		Quantity:        m.Quantity,
		Type:            m.Type,
		Reference:       m.Reference,
		DocumentPath:    m.DocumentPath,
		Applicant:       m.Applicant,
		ApplicantArea:   m.ApplicantArea,
		IsReturnable:    m.IsReturnable,
		ReturnDeadline:  m.ReturnDeadline,
		RecipientEmail:  m.RecipientEmail,
		ParentID:        m.ParentID,
		SalesOrderID:    m.SalesOrderID,
		PurchaseOrderID: m.PurchaseOrderID,
		Date:            m.Date,
	}
}
