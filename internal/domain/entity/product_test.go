package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_StockNegativo_RetornaError(t *testing.T) {
	_, err := entity.NewProduct("p1", "Laptop", "", "SKU-1", -5, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidStock), "debe envolver ErrInvalidStock")

	var invalidErr *domain.InvalidStockError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, -5, invalidErr.Stock)
}

func TestNewProduct_StockCero_EsValido(t *testing.T) {
	p, err := entity.NewProduct("p1", "Laptop", "", "SKU-1", 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestAddStock_SumaYActualizaFecha(t *testing.T) {
	now := time.Now()
	p, err := entity.NewProduct("p1", "Laptop", "", "SKU-1", 10, now.Add(-time.Hour))
	require.NoError(t, err)

	require.NoError(t, p.AddStock(5, now))
	assert.Equal(t, 15, p.Stock)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestAddStock_CantidadNoPositiva_RetornaError(t *testing.T) {
	p, _ := entity.NewProduct("p1", "Laptop", "", "SKU-1", 10, time.Now())

	assert.ErrorIs(t, p.AddStock(0, time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, p.AddStock(-3, time.Now()), domain.ErrInvalidInput)
	assert.Equal(t, 10, p.Stock, "el stock no debe mutar ante entrada inválida")
}

func TestRemoveStock_StockInsuficiente_NoMuta(t *testing.T) {
	p, _ := entity.NewProduct("p1", "Laptop", "", "SKU-1", 3, time.Now())

	err := p.RemoveStock(5, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, p.Stock, "el stock no debe mutar si la salida falla")
}

func TestRemoveStock_ExactamenteTodoElStock(t *testing.T) {
	p, _ := entity.NewProduct("p1", "Laptop", "", "SKU-1", 3, time.Now())
	require.NoError(t, p.RemoveStock(3, time.Now()))
	assert.Equal(t, 0, p.Stock)
}
