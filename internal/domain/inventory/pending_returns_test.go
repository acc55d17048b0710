package inventory_test

import (
	"testing"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exitMov(id string, qty int, returnable bool, date time.Time) *entity.Movement {
	return &entity.Movement{
		ID:           id,
		ProductID:    "p1",
		Quantity:     qty,
		Type:         entity.MovementTypeExit,
		IsReturnable: returnable,
		Date:         date,
	}
}

func returnMov(id, parentID string, qty int, date time.Time) *entity.Movement {
	return &entity.Movement{
		ID:        id,
		ProductID: "p1",
		Quantity:  qty,
		Type:      entity.MovementTypeReturn,
		ParentID:  &parentID,
		Date:      date,
	}
}

func TestPendingReturns_DevolucionesParciales(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	movements := []*entity.Movement{
		exitMov("e1", 10, true, base),
		returnMov("r1", "e1", 3, base.Add(time.Hour)),
		returnMov("r2", "e1", 4, base.Add(2*time.Hour)),
	}

	pending := inventory.PendingReturns(movements)
	require.Len(t, pending, 1)
	assert.Equal(t, "e1", pending[0].Exit.ID)
	assert.Equal(t, 7, pending[0].ReturnedQty)
	assert.Equal(t, 3, pending[0].PendingQuantity)
}

func TestPendingReturns_SalidaCompletamenteDevuelta_SeExcluye(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	movements := []*entity.Movement{
		exitMov("e1", 10, true, base),
		returnMov("r1", "e1", 3, base.Add(time.Hour)),
		returnMov("r2", "e1", 4, base.Add(2*time.Hour)),
		returnMov("r3", "e1", 3, base.Add(3*time.Hour)),
	}

	assert.Empty(t, inventory.PendingReturns(movements))
}

func TestPendingReturns_IgnoraSalidasNoDevolutivasYEntradas(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	movements := []*entity.Movement{
		exitMov("e1", 5, false, base),
		{ID: "i1", ProductID: "p1", Quantity: 20, Type: entity.MovementTypeIngreso, IsReturnable: true, Date: base},
	}

	assert.Empty(t, inventory.PendingReturns(movements))
}

func TestPendingReturns_OrdenadoPorFechaDescendente(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	movements := []*entity.Movement{
		exitMov("vieja", 5, true, base),
		exitMov("nueva", 5, true, base.Add(24*time.Hour)),
	}

	pending := inventory.PendingReturns(movements)
	require.Len(t, pending, 2)
	assert.Equal(t, "nueva", pending[0].Exit.ID)
	assert.Equal(t, "vieja", pending[1].Exit.ID)
}

func TestPendingQuantityFor(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	exit := exitMov("e1", 10, true, base)
	movements := []*entity.Movement{
		exit,
		returnMov("r1", "e1", 3, base.Add(time.Hour)),
		returnMov("otro", "e2", 4, base.Add(time.Hour)),
	}

	assert.Equal(t, 7, inventory.PendingQuantityFor(exit, movements))
}

func TestPendingQuantityFor_SalidaNoDevolutiva_RetornaCero(t *testing.T) {
	exit := exitMov("e1", 10, false, time.Now())
	assert.Equal(t, 0, inventory.PendingQuantityFor(exit, []*entity.Movement{exit}))
	assert.Equal(t, 0, inventory.PendingQuantityFor(nil, nil))
}
