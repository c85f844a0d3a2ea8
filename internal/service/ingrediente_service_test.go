package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
)

func TestIngredienteCrearYListar(t *testing.T) {
	repo := newStubIngredienteRepo()
	svc := NewIngredienteService(repo)

	resp, err := svc.Crear(context.Background(), dto.CrearIngredienteRequest{
		Nombre:         "Harina",
		UnidadMedida:   "kg",
		PrecioUnitario: decimal.RequireFromString("2.40"),
		StockActual:    decimal.RequireFromString("25.5"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.Equal(t, "25.5", resp.StockActual.String(), "el stock de ingredientes es fraccionario")

	require.NoError(t, svc.Desactivar(context.Background(), uuid.MustParse(resp.ID)))

	activos, err := svc.Listar(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.Listar(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.False(t, todos[0].Activo)
}

func TestIngredienteActualizarParcial(t *testing.T) {
	repo := newStubIngredienteRepo()
	svc := NewIngredienteService(repo)

	creado, err := svc.Crear(context.Background(), dto.CrearIngredienteRequest{
		Nombre:         "Leche",
		UnidadMedida:   "l",
		PrecioUnitario: decimal.RequireFromString("18.50"),
	})
	require.NoError(t, err)

	precio := decimal.RequireFromString("19.90")
	resp, err := svc.Actualizar(context.Background(), uuid.MustParse(creado.ID), dto.ActualizarIngredienteRequest{
		PrecioUnitario: &precio,
	})
	require.NoError(t, err)
	assert.Equal(t, "19.90", resp.PrecioUnitario.StringFixed(2))
	assert.Equal(t, "Leche", resp.Nombre)
	assert.Equal(t, "l", resp.UnidadMedida)
}

func TestIngredienteNoEncontrado(t *testing.T) {
	svc := NewIngredienteService(newStubIngredienteRepo())

	_, err := svc.ObtenerPorID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrIngredienteNoEncontrado)

	err = svc.Desactivar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrIngredienteNoEncontrado)
}
