package inventory

import (
	"sort"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
)

// PendingReturn es una salida devolutiva con cantidad pendiente de retorno.
type PendingReturn struct {
	Exit            *entity.Movement
	ReturnedQty     int
	PendingQuantity int
}

// PendingReturns deriva las salidas devolutivas con retorno pendiente a partir
// del libro completo de movimientos (servicio de dominio, pliegue puro sin estado:
// se recalcula en cada consulta, nunca se cachea).
//
// Para cada salida (VENTA/CONSUMO INTERNO/EXIT) marcada devolutiva se suman las
// cantidades de los RETURN cuyo ParentID apunta a esa salida;
// pendiente = cantidad de la salida - total retornado. Solo se incluyen
// salidas con pendiente > 0, ordenadas por fecha descendente.
func PendingReturns(movements []*entity.Movement) []PendingReturn {
	returnedByParent := make(map[string]int)
	for _, m := range movements {
		if m.IsReturn() && m.ParentID != nil {
			returnedByParent[*m.ParentID] += m.Quantity
		}
	}

	var pending []PendingReturn
	for _, m := range movements {
		if !m.IsExit() || !m.IsReturnable {
			continue
		}
		returned := returnedByParent[m.ID]
		remaining := m.Quantity - returned
		if remaining <= 0 {
			continue
		}
		pending = append(pending, PendingReturn{
			Exit:            m,
			ReturnedQty:     returned,
			PendingQuantity: remaining,
		})
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Exit.Date.After(pending[j].Exit.Date)
	})
	return pending
}

// PendingQuantityFor devuelve la cantidad pendiente de retorno de una salida
// concreta (0 si no es devolutiva o ya fue retornada por completo).
func PendingQuantityFor(exit *entity.Movement, movements []*entity.Movement) int {
	if exit == nil || !exit.IsExit() || !exit.IsReturnable {
		return 0
	}
	returned := 0
	for _, m := range movements {
		if m.IsReturn() && m.ParentID != nil && *m.ParentID == exit.ID {
			returned += m.Quantity
		}
	}
	remaining := exit.Quantity - returned
	if remaining < 0 {
		return 0
	}
	return remaining
}
