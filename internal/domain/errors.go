package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrOrderNotFound      = errors.New("orden no encontrada")
	ErrMovementNotFound   = errors.New("movimiento no encontrado")
	ErrSupplierNotFound   = errors.New("proveedor no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidStock       = errors.New("el stock no puede ser negativo")
)

// InsufficientStockError indica que una salida excede el stock disponible.
// Envuelve ErrInsufficientStock y lleva disponible/solicitado para el caller.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStockError indica un intento de crear un producto con stock negativo.
type InvalidStockError struct {
	Stock int
}

func (e *InvalidStockError) Error() string {
	return fmt.Sprintf("el stock no puede ser negativo: valor recibido %d", e.Stock)
}

// Unwrap permite errors.Is(err, ErrInvalidStock).
func (e *InvalidStockError) Unwrap() error { return ErrInvalidStock }
