package purchasing

import (
	"context"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/repository"
)

// TxRunner ejecuta la recepción de una orden de compra dentro de una
// transacción de BD, con repositorios atados a esa tx. El estado de la orden
// solo se persiste si la escritura en el libro de movimientos tuvo éxito.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
