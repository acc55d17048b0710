package entity

import (
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
)

// Tipos de movimiento del libro de inventario.
// El backend histórico registró entradas como INGRESO o ENTRY y salidas como
// VENTA, CONSUMO INTERNO o EXIT según el flujo; ambos alias siguen siendo válidos.
const (
	MovementTypeIngreso        = "INGRESO"
	MovementTypeEntry          = "ENTRY"
	MovementTypeVenta          = "VENTA"
	MovementTypeConsumoInterno = "CONSUMO INTERNO"
	MovementTypeExit           = "EXIT"
	MovementTypeReturn         = "RETURN"
)

// Movement es una entrada inmutable del libro de movimientos de stock.
// Nunca se actualiza salvo la corrección de trazabilidad inicial
// (referencia/documento del primer movimiento de un producto) y nunca se
// borra individualmente, solo en cascada con su producto.
type Movement struct {
	ID              string
	ProductID       string
	Quantity        int    // siempre positivo; el tipo indica la dirección
	Type            string // INGRESO, ENTRY, VENTA, CONSUMO INTERNO, EXIT, RETURN
	Reference       string // orden de compra, factura, nota, etc.
	DocumentPath    *string
	Applicant       *string
	ApplicantArea   *string
	IsReturnable    bool
	ReturnDeadline  *time.Time
	RecipientEmail  *string
	ParentID        *string // en RETURN: la salida (EXIT) que cierra
	SalesOrderID    *string
	PurchaseOrderID *string // clave de idempotencia de recepción de OC (única)
	ProductName     string  // denormalizado en listados
	Date            time.Time
}

// NewMovement construye un movimiento validando que la cantidad sea positiva
// y que el tipo esté en el catálogo.
func NewMovement(id, productID string, quantity int, movType, reference string, date time.Time) (*Movement, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !ValidMovementType(movType) {
		return nil, domain.ErrInvalidInput
	}
	return &Movement{
		ID:        id,
		ProductID: productID,
		Quantity:  quantity,
		Type:      movType,
		Reference: reference,
		Date:      date,
	}, nil
}

// ValidMovementType indica si el tipo pertenece al catálogo de movimientos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIngreso, MovementTypeEntry, MovementTypeVenta,
		MovementTypeConsumoInterno, MovementTypeExit, MovementTypeReturn:
		return true
	}
	return false
}

// IsEntry indica si el movimiento suma stock (INGRESO/ENTRY).
func (m *Movement) IsEntry() bool {
	return m.Type == MovementTypeIngreso || m.Type == MovementTypeEntry
}

// IsExit indica si el movimiento resta stock (VENTA/CONSUMO INTERNO/EXIT).
func (m *Movement) IsExit() bool {
	return m.Type == MovementTypeVenta || m.Type == MovementTypeConsumoInterno || m.Type == MovementTypeExit
}

// IsReturn indica si el movimiento devuelve stock de una salida previa.
func (m *Movement) IsReturn() bool {
	return m.Type == MovementTypeReturn
}
