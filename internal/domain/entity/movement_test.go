package entity_test

import (
	"testing"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovement_CantidadNoPositiva_RetornaError(t *testing.T) {
	_, err := entity.NewMovement("m1", "p1", 0, entity.MovementTypeEntry, "ref", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = entity.NewMovement("m1", "p1", -2, entity.MovementTypeEntry, "ref", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewMovement_TipoFueraDeCatalogo_RetornaError(t *testing.T) {
	_, err := entity.NewMovement("m1", "p1", 1, "AJUSTE", "ref", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewMovement_TiposValidos(t *testing.T) {
	for _, tipo := range []string{
		entity.MovementTypeIngreso,
		entity.MovementTypeEntry,
		entity.MovementTypeVenta,
		entity.MovementTypeConsumoInterno,
		entity.MovementTypeExit,
		entity.MovementTypeReturn,
	} {
		m, err := entity.NewMovement("m1", "p1", 1, tipo, "ref", time.Now())
		require.NoError(t, err, tipo)
		assert.Equal(t, tipo, m.Type)
	}
}

func TestMovement_ClasificacionDeTipos(t *testing.T) {
	entrada := &entity.Movement{Type: entity.MovementTypeIngreso}
	assert.True(t, entrada.IsEntry())
	assert.False(t, entrada.IsExit())

	alias := &entity.Movement{Type: entity.MovementTypeEntry}
	assert.True(t, alias.IsEntry())

	venta := &entity.Movement{Type: entity.MovementTypeVenta}
	assert.True(t, venta.IsExit())
	consumo := &entity.Movement{Type: entity.MovementTypeConsumoInterno}
	assert.True(t, consumo.IsExit())
	salida := &entity.Movement{Type: entity.MovementTypeExit}
	assert.True(t, salida.IsExit())

	devolucion := &entity.Movement{Type: entity.MovementTypeReturn}
	assert.True(t, devolucion.IsReturn())
	assert.False(t, devolucion.IsEntry())
	assert.False(t, devolucion.IsExit())
}
