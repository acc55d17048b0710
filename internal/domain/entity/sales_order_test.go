package entity_test

import (
	"testing"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalesOrder_RecomputeTotals(t *testing.T) {
	o := &entity.SalesOrder{
		Quantity:     2,
		UnitPrice:    decimal.NewFromFloat(100.00),
		ShippingCost: decimal.NewFromFloat(15.00),
	}
	o.RecomputeTotals()

	// subtotal 200, IGV 36, total = 200 + 36 + 15 = 251
	assert.True(t, o.Subtotal.Equal(decimal.NewFromFloat(200.00)), "subtotal: %s", o.Subtotal)
	assert.True(t, o.TaxAmount.Equal(decimal.NewFromFloat(36.00)), "IGV: %s", o.TaxAmount)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(251.00)), "total: %s", o.TotalAmount)
}

func TestSalesOrder_RecomputeTotals_SinEnvio(t *testing.T) {
	o := &entity.SalesOrder{Quantity: 2, UnitPrice: decimal.NewFromFloat(100.00)}
	o.RecomputeTotals()
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(236.00)), "total: %s", o.TotalAmount)
}

func TestSalesOrder_CanTransitionTo(t *testing.T) {
	pendiente := &entity.SalesOrder{Status: entity.SalesStatusPending}
	assert.True(t, pendiente.CanTransitionTo(entity.SalesStatusCompleted))
	assert.True(t, pendiente.CanTransitionTo(entity.SalesStatusCancelled))
	assert.False(t, pendiente.CanTransitionTo(entity.SalesStatusPending))
	assert.False(t, pendiente.CanTransitionTo("ENVIADA"))

	completada := &entity.SalesOrder{Status: entity.SalesStatusCompleted}
	assert.False(t, completada.CanTransitionTo(entity.SalesStatusCancelled),
		"los estados terminales no admiten transiciones")

	cancelada := &entity.SalesOrder{Status: entity.SalesStatusCancelled}
	assert.False(t, cancelada.CanTransitionTo(entity.SalesStatusCompleted))
}

func TestSalesOrder_IsTerminal(t *testing.T) {
	assert.False(t, (&entity.SalesOrder{Status: entity.SalesStatusPending}).IsTerminal())
	assert.True(t, (&entity.SalesOrder{Status: entity.SalesStatusCompleted}).IsTerminal())
	assert.True(t, (&entity.SalesOrder{Status: entity.SalesStatusCancelled}).IsTerminal())
}
