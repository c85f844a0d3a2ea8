package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
)

func ingredienteDePrueba(nombre, unidad, precio string) *model.Ingrediente {
	return &model.Ingrediente{
		ID:             uuid.New(),
		Nombre:         nombre,
		UnidadMedida:   unidad,
		PrecioUnitario: decimal.RequireFromString(precio),
		Activo:         true,
	}
}

type cotizacionFixture struct {
	svc          CotizacionService
	cotizaciones *stubCotizacionRepo
	productos    *stubProductoRepo
	ingredientes *stubIngredienteRepo
	clientes     *stubClienteRepo
}

func newCotizacionFixture() *cotizacionFixture {
	f := &cotizacionFixture{
		cotizaciones: newStubCotizacionRepo(),
		productos:    newStubProductoRepo(),
		ingredientes: newStubIngredienteRepo(),
		clientes:     newStubClienteRepo(),
	}
	f.svc = NewCotizacionService(f.cotizaciones, f.productos, f.ingredientes, f.clientes, nil)
	return f
}

func TestCrearCotizacionPersonalizada(t *testing.T) {
	f := newCotizacionFixture()

	cliente := &model.Cliente{ID: uuid.New(), Nombre: "Panadería El Sol"}
	require.NoError(t, f.clientes.Create(context.Background(), cliente))
	cupcake := productoDePrueba("Cupcake", "2.00", 10)
	require.NoError(t, f.productos.Create(context.Background(), cupcake))
	harina := ingredienteDePrueba("Harina", "kg", "2.40")
	require.NoError(t, f.ingredientes.Create(context.Background(), harina))

	resp, err := f.svc.Crear(context.Background(), dto.CrearCotizacionRequest{
		Tipo: "personalizada",
		Personalizada: &dto.PersonalizadaData{
			ClienteID:   cliente.ID.String(),
			ValidaHasta: "2026-09-30",
			Items:       []dto.ItemCotizacionRequest{{ProductoID: cupcake.ID.String(), Cantidad: 1}},
			Ingredientes: []dto.IngredienteCotizacionRequest{
				{IngredienteID: harina.ID.String(), Cantidad: decimal.RequireFromString("0.5"), Notas: "integral"},
			},
		},
	})
	require.NoError(t, err)

	// 1 × 2.00 + 0.5 kg × 2.40
	assert.Equal(t, "personalizada", resp.Tipo)
	assert.Equal(t, "pendiente", resp.Estado)
	assert.Equal(t, "3.20", resp.Total.StringFixed(2))
	require.NotNil(t, resp.Cliente)
	assert.Equal(t, "Panadería El Sol", *resp.Cliente)
	require.NotNil(t, resp.ValidaHasta)
	assert.Equal(t, "2026-09-30", *resp.ValidaHasta)
	require.Len(t, resp.Items, 1)
	require.Len(t, resp.Ingredientes, 1)

	// Una cotización es una propuesta: nunca toca el stock
	assert.Equal(t, 10, cupcake.StockActual)
	assert.Empty(t, f.productos.stockDeltas)
	assert.Equal(t, 1, f.cotizaciones.creates)
}

func TestCrearCotizacionEstandar(t *testing.T) {
	f := newCotizacionFixture()
	cacao := ingredienteDePrueba("Cacao", "kg", "95.00")
	require.NoError(t, f.ingredientes.Create(context.Background(), cacao))

	resp, err := f.svc.Crear(context.Background(), dto.CrearCotizacionRequest{
		Tipo: "estandar",
		Estandar: &dto.EstandarData{
			NombreProducto: "Pastel de chocolate",
			Ingredientes: []dto.IngredienteCotizacionRequest{
				{IngredienteID: cacao.ID.String(), Cantidad: decimal.RequireFromString("0.3")},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "estandar", resp.Tipo)
	assert.Equal(t, "pendiente", resp.Estado)
	require.NotNil(t, resp.NombreProducto)
	assert.Equal(t, "Pastel de chocolate", *resp.NombreProducto)
	assert.Nil(t, resp.ClienteID, "estandar no lleva cliente")
	assert.Nil(t, resp.ValidaHasta)
	assert.Equal(t, "28.50", resp.Total.StringFixed(2))
}

func TestCrearCotizacionRechazaFormasInvalidas(t *testing.T) {
	f := newCotizacionFixture()
	cliente := &model.Cliente{ID: uuid.New(), Nombre: "Cliente"}
	require.NoError(t, f.clientes.Create(context.Background(), cliente))

	casos := []struct {
		nombre string
		req    dto.CrearCotizacionRequest
	}{
		{"tipo desconocido", dto.CrearCotizacionRequest{Tipo: "mayorista"}},
		{"personalizada sin datos", dto.CrearCotizacionRequest{Tipo: "personalizada"}},
		{"estandar sin datos", dto.CrearCotizacionRequest{Tipo: "estandar"}},
		{"personalizada sin líneas", dto.CrearCotizacionRequest{
			Tipo: "personalizada",
			Personalizada: &dto.PersonalizadaData{
				ClienteID:   cliente.ID.String(),
				ValidaHasta: "2026-09-30",
			},
		}},
		{"cliente inexistente", dto.CrearCotizacionRequest{
			Tipo: "personalizada",
			Personalizada: &dto.PersonalizadaData{
				ClienteID:   uuid.NewString(),
				ValidaHasta: "2026-09-30",
				Ingredientes: []dto.IngredienteCotizacionRequest{
					{IngredienteID: uuid.NewString(), Cantidad: decimal.NewFromInt(1)},
				},
			},
		}},
		{"fecha inválida", dto.CrearCotizacionRequest{
			Tipo: "personalizada",
			Personalizada: &dto.PersonalizadaData{
				ClienteID:   cliente.ID.String(),
				ValidaHasta: "30/09/2026",
				Ingredientes: []dto.IngredienteCotizacionRequest{
					{IngredienteID: uuid.NewString(), Cantidad: decimal.NewFromInt(1)},
				},
			},
		}},
		{"estandar sin nombre", dto.CrearCotizacionRequest{
			Tipo: "estandar",
			Estandar: &dto.EstandarData{
				Ingredientes: []dto.IngredienteCotizacionRequest{
					{IngredienteID: uuid.NewString(), Cantidad: decimal.NewFromInt(1)},
				},
			},
		}},
		{"estandar sin ingredientes", dto.CrearCotizacionRequest{
			Tipo:     "estandar",
			Estandar: &dto.EstandarData{NombreProducto: "Pan dulce"},
		}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.svc.Crear(context.Background(), tc.req)
			require.Error(t, err)
			assert.Zero(t, f.cotizaciones.creates, "nada se escribe cuando la validación falla")
		})
	}
}

func TestCrearCotizacionIngredienteInactivo(t *testing.T) {
	f := newCotizacionFixture()
	vainilla := ingredienteDePrueba("Vainilla", "l", "120.00")
	vainilla.Activo = false
	require.NoError(t, f.ingredientes.Update(context.Background(), vainilla))

	_, err := f.svc.Crear(context.Background(), dto.CrearCotizacionRequest{
		Tipo: "estandar",
		Estandar: &dto.EstandarData{
			NombreProducto: "Flan",
			Ingredientes: []dto.IngredienteCotizacionRequest{
				{IngredienteID: vainilla.ID.String(), Cantidad: decimal.RequireFromString("0.2")},
			},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactivo")
	assert.Zero(t, f.cotizaciones.creates)
}

func TestCambiarEstado(t *testing.T) {
	f := newCotizacionFixture()

	clienteID := uuid.New()
	personalizada := &model.Cotizacion{ID: uuid.New(), Tipo: "personalizada", Estado: "pendiente", ClienteID: &clienteID}
	f.cotizaciones.cotizaciones[personalizada.ID] = personalizada
	nombre := "Pastel"
	estandar := &model.Cotizacion{ID: uuid.New(), Tipo: "estandar", Estado: "pendiente", NombreProducto: &nombre}
	f.cotizaciones.cotizaciones[estandar.ID] = estandar

	// pendiente → aceptada
	resp, err := f.svc.CambiarEstado(context.Background(), personalizada.ID, "aceptada")
	require.NoError(t, err)
	assert.Equal(t, "aceptada", resp.Estado)
	assert.Equal(t, "aceptada", personalizada.Estado)

	// aceptada es terminal
	_, err = f.svc.CambiarEstado(context.Background(), personalizada.ID, "rechazada")
	assert.ErrorIs(t, err, ErrEstadoNoPendiente)
	assert.Equal(t, "aceptada", personalizada.Estado)

	// estandar nunca transiciona
	_, err = f.svc.CambiarEstado(context.Background(), estandar.ID, "aceptada")
	assert.ErrorIs(t, err, ErrTransicionSoloPersonalizada)
	assert.Equal(t, "pendiente", estandar.Estado)

	// inexistente
	_, err = f.svc.CambiarEstado(context.Background(), uuid.New(), "aceptada")
	assert.ErrorIs(t, err, ErrCotizacionNoEncontrada)
}

func TestEliminarCotizacion(t *testing.T) {
	f := newCotizacionFixture()
	cot := &model.Cotizacion{ID: uuid.New(), Tipo: "estandar", Estado: "pendiente"}
	f.cotizaciones.cotizaciones[cot.ID] = cot

	require.NoError(t, f.svc.Eliminar(context.Background(), cot.ID))
	assert.Empty(t, f.cotizaciones.cotizaciones)

	err := f.svc.Eliminar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCotizacionNoEncontrada)
}

func TestListarCotizacionesFiltra(t *testing.T) {
	f := newCotizacionFixture()
	clienteID := uuid.New()
	a := &model.Cotizacion{ID: uuid.New(), Tipo: "personalizada", Estado: "pendiente", ClienteID: &clienteID}
	b := &model.Cotizacion{ID: uuid.New(), Tipo: "estandar", Estado: "pendiente"}
	f.cotizaciones.cotizaciones[a.ID] = a
	f.cotizaciones.cotizaciones[b.ID] = b

	resp, err := f.svc.Listar(context.Background(), dto.CotizacionFilter{Tipo: "estandar"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "estandar", resp.Data[0].Tipo)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.Limit)
}
