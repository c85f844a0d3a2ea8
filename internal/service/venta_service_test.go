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

func productoDePrueba(nombre, precio string, stock int) *model.Producto {
	return &model.Producto{
		ID:          uuid.New(),
		SKU:         "SKU-" + nombre,
		Nombre:      nombre,
		PrecioVenta: decimal.RequireFromString(precio),
		StockActual: stock,
		StockMinimo: 5,
		Activo:      true,
	}
}

type ventaFixture struct {
	svc       VentaService
	ventas    *stubVentaRepo
	productos *stubProductoRepo
	clientes  *stubClienteRepo
	movs      *stubMovimientoRepo
}

func newVentaFixture(productos ...*model.Producto) *ventaFixture {
	f := &ventaFixture{
		ventas:    newStubVentaRepo(),
		productos: newStubProductoRepo(productos...),
		clientes:  newStubClienteRepo(),
		movs:      &stubMovimientoRepo{},
	}
	f.svc = NewVentaService(f.ventas, f.productos, f.clientes, f.movs, nil)
	return f
}

func TestRegistrarVenta(t *testing.T) {
	dona := productoDePrueba("Dona glaseada", "8.50", 10)
	cafe := productoDePrueba("Café americano", "17.00", 20)
	f := newVentaFixture(dona, cafe)

	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: dona.ID.String(), Cantidad: 2},
			{ProductoID: cafe.ID.String(), Cantidad: 1},
		},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	// 2×8.50 + 1×17.00
	assert.Equal(t, "34.00", resp.Total.StringFixed(2))
	assert.Equal(t, "efectivo", resp.MetodoPago)
	assert.Equal(t, "Cliente general", resp.Cliente)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Dona glaseada", resp.Items[0].Producto)
	assert.Equal(t, "8.50", resp.Items[0].PrecioUnitario.StringFixed(2))
	assert.Equal(t, "17.00", resp.Items[0].Subtotal.StringFixed(2))

	// Stock descontado
	assert.Equal(t, 8, dona.StockActual)
	assert.Equal(t, 19, cafe.StockActual)

	// Un movimiento "venta" por línea, cantidad negativa, referencia a la venta
	movs := f.movs.porTipo("venta")
	require.Len(t, movs, 2)
	assert.Equal(t, -2, movs[0].Cantidad)
	assert.Equal(t, 10, movs[0].StockAnterior)
	assert.Equal(t, 8, movs[0].StockNuevo)
	require.NotNil(t, movs[0].ReferenciaID)
	assert.Equal(t, resp.ID, movs[0].ReferenciaID.String())
	assert.Equal(t, -1, movs[1].Cantidad)

	// Persistida con snapshots de precio
	require.Len(t, f.ventas.ventas, 1)
}

func TestRegistrarVentaConCliente(t *testing.T) {
	p := productoDePrueba("Brownie", "15.00", 5)
	f := newVentaFixture(p)
	cliente := &model.Cliente{ID: uuid.New(), Nombre: "María López"}
	require.NoError(t, f.clientes.Create(context.Background(), cliente))

	cid := cliente.ID.String()
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: "tarjeta",
		ClienteID:  &cid,
	})
	require.NoError(t, err)
	assert.Equal(t, "María López", resp.Cliente)
	require.NotNil(t, resp.ClienteID)
	assert.Equal(t, cid, *resp.ClienteID)
}

func TestRegistrarVentaCarritoVacio(t *testing.T) {
	f := newVentaFixture()

	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, ErrCarritoVacio)
	assert.Empty(t, f.ventas.ventas)
	assert.Empty(t, f.movs.movimientos)
}

func TestRegistrarVentaRechazosSinEscrituras(t *testing.T) {
	inactivo := productoDePrueba("Descontinuado", "10.00", 3)
	inactivo.Activo = false
	agotado := productoDePrueba("Agotado", "10.00", 0)
	f := newVentaFixture(inactivo, agotado)

	casos := []struct {
		nombre string
		req    dto.RegistrarVentaRequest
	}{
		{"producto inactivo", dto.RegistrarVentaRequest{
			Items:      []dto.ItemVentaRequest{{ProductoID: inactivo.ID.String(), Cantidad: 1}},
			MetodoPago: "efectivo",
		}},
		{"sin stock", dto.RegistrarVentaRequest{
			Items:      []dto.ItemVentaRequest{{ProductoID: agotado.ID.String(), Cantidad: 1}},
			MetodoPago: "efectivo",
		}},
		{"producto inexistente", dto.RegistrarVentaRequest{
			Items:      []dto.ItemVentaRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
			MetodoPago: "efectivo",
		}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), tc.req)
			require.Error(t, err)
			assert.Empty(t, f.ventas.ventas, "la validación falla antes de escribir")
			assert.Empty(t, f.movs.movimientos)
		})
	}
}

func TestRegistrarVentaClienteNoEncontrado(t *testing.T) {
	p := productoDePrueba("Galleta", "5.00", 10)
	f := newVentaFixture(p)

	cid := uuid.NewString()
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: "efectivo",
		ClienteID:  &cid,
	})
	require.EqualError(t, err, "cliente no encontrado")
	assert.Empty(t, f.ventas.ventas)
}

func TestRegistrarVentaCantidadLimitadaAlStock(t *testing.T) {
	p := productoDePrueba("Pastel", "100.00", 3)
	f := newVentaFixture(p)

	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 50}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Cantidad, "la cantidad se limita al stock disponible")
	assert.Equal(t, "300.00", resp.Total.StringFixed(2))
	assert.Equal(t, 0, p.StockActual, "el stock nunca queda negativo")
}

func TestAnularVenta(t *testing.T) {
	p := productoDePrueba("Tarta", "60.00", 1) // stock después de vender 4
	f := newVentaFixture(p)

	ventaID := uuid.New()
	venta := &model.Venta{
		ID:         ventaID,
		UsuarioID:  uuid.New(),
		Total:      decimal.RequireFromString("240.00"),
		MetodoPago: "tarjeta",
		Items: []model.VentaItem{{
			ID:             uuid.New(),
			VentaID:        ventaID,
			ProductoID:     p.ID,
			Cantidad:       4,
			PrecioUnitario: decimal.RequireFromString("60.00"),
			Subtotal:       decimal.RequireFromString("240.00"),
		}},
	}
	f.ventas.ventas[ventaID] = venta

	err := f.svc.AnularVenta(context.Background(), ventaID, "pedido duplicado")
	require.NoError(t, err)

	// Stock restaurado y venta eliminada de la historia
	assert.Equal(t, 5, p.StockActual)
	assert.Empty(t, f.ventas.ventas)

	// Movimiento compensatorio "devolucion", cantidad positiva
	movs := f.movs.porTipo("devolucion")
	require.Len(t, movs, 1)
	assert.Equal(t, 4, movs[0].Cantidad)
	assert.Equal(t, 1, movs[0].StockAnterior)
	assert.Equal(t, 5, movs[0].StockNuevo)
	assert.Contains(t, movs[0].Motivo, "pedido duplicado")
	require.NotNil(t, movs[0].ReferenciaID)
	assert.Equal(t, ventaID, *movs[0].ReferenciaID)
}

func TestAnularVentaNoEncontrada(t *testing.T) {
	f := newVentaFixture()

	err := f.svc.AnularVenta(context.Background(), uuid.New(), "no existe")
	assert.ErrorIs(t, err, ErrVentaNoEncontrada)
	assert.Empty(t, f.movs.movimientos)
}

func TestVentaInvalidaCacheDashboard(t *testing.T) {
	p := productoDePrueba("Dona glaseada", "8.50", 10)
	f := newVentaFixture(p)
	rdb, captura := newRedisCaptura()
	f.svc = NewVentaService(f.ventas, f.productos, f.clientes, f.movs, rdb)

	// Una venta fallida no toca el cache
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPago: "efectivo",
	})
	require.Error(t, err)
	assert.False(t, captura.borroDashboard())

	// Una venta confirmada invalida el resumen cacheado
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	assert.True(t, captura.borroDashboard(), "el dashboard debe recalcularse tras una venta")

	// La anulación también
	captura.comandos = nil
	require.NoError(t, f.svc.AnularVenta(context.Background(), uuid.MustParse(resp.ID), "prueba"))
	assert.True(t, captura.borroDashboard(), "el dashboard debe recalcularse tras una anulación")
}

func TestObtenerVenta(t *testing.T) {
	f := newVentaFixture()
	ventaID := uuid.New()
	f.ventas.ventas[ventaID] = &model.Venta{
		ID:         ventaID,
		UsuarioID:  uuid.New(),
		Total:      decimal.RequireFromString("42.00"),
		MetodoPago: "efectivo",
	}

	resp, err := f.svc.ObtenerVenta(context.Background(), ventaID)
	require.NoError(t, err)
	assert.Equal(t, ventaID.String(), resp.ID)
	assert.Equal(t, "Cliente general", resp.Cliente)

	_, err = f.svc.ObtenerVenta(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrVentaNoEncontrada)
}
