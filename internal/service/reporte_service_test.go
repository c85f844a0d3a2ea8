package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
)

type reporteFixture struct {
	svc       ReporteService
	ventas    *stubVentaRepo
	productos *stubProductoRepo
	metas     *stubMetaRepo
	movs      *stubMovimientoRepo
}

func newReporteFixture() *reporteFixture {
	f := &reporteFixture{
		ventas:    newStubVentaRepo(),
		productos: newStubProductoRepo(),
		metas:     newStubMetaRepo(),
		movs:      &stubMovimientoRepo{},
	}
	f.svc = NewReporteService(f.ventas, f.productos, f.metas, f.movs, nil, nil)
	return f
}

func TestExportVentasCSV(t *testing.T) {
	f := newReporteFixture()

	conCliente := &model.Venta{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		Total:      decimal.RequireFromString("150.5"),
		MetodoPago: "tarjeta",
		CreatedAt:  time.Date(2026, 8, 15, 10, 30, 0, 0, time.Local),
		Cliente:    &model.Cliente{Nombre: "María López"},
	}
	sinCliente := &model.Venta{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		Total:      decimal.RequireFromString("34.00"),
		MetodoPago: "efectivo",
		CreatedAt:  time.Date(2026, 8, 16, 17, 5, 0, 0, time.Local),
	}
	f.ventas.ventas[conCliente.ID] = conCliente
	f.ventas.ventas[sinCliente.ID] = sinCliente

	desde := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	hasta := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	data, err := f.svc.ExportVentasCSV(context.Background(), desde, hasta)
	require.NoError(t, err)

	csv := string(data)
	lineas := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lineas, 3, "encabezado + una fila por venta")
	assert.Equal(t, "id,fecha,cliente,total,metodo_pago", lineas[0])
	assert.Contains(t, csv, conCliente.ID.String()+",2026-08-15 10:30,María López,150.50,tarjeta")
	assert.Contains(t, csv, sinCliente.ID.String()+",2026-08-16 17:05,Cliente general,34.00,efectivo")
}

func TestExportVentasCSVRespetaRango(t *testing.T) {
	f := newReporteFixture()
	fuera := &model.Venta{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		Total:      decimal.RequireFromString("10.00"),
		MetodoPago: "efectivo",
		CreatedAt:  time.Date(2026, 7, 31, 23, 59, 0, 0, time.Local),
	}
	f.ventas.ventas[fuera.ID] = fuera

	desde := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	hasta := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	data, err := f.svc.ExportVentasCSV(context.Background(), desde, hasta)
	require.NoError(t, err)

	lineas := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lineas, 1, "solo el encabezado: la venta queda fuera del rango")
}

func TestDashboard(t *testing.T) {
	f := newReporteFixture()
	ahora := time.Now()

	hoy := &model.Venta{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		Total:      decimal.RequireFromString("250.00"),
		MetodoPago: "efectivo",
		CreatedAt:  ahora,
	}
	f.ventas.ventas[hoy.ID] = hoy

	bajo := productoDePrueba("Harina premium", "30.00", 2) // mínimo 5
	require.NoError(t, f.productos.Create(context.Background(), bajo))
	sano := productoDePrueba("Azúcar", "10.00", 50)
	require.NoError(t, f.productos.Create(context.Background(), sano))

	require.NoError(t, f.metas.Upsert(context.Background(), &model.Meta{
		Anio:          ahora.Year(),
		Mes:           int(ahora.Month()),
		MontoObjetivo: decimal.RequireFromString("1000.00"),
	}))

	resp, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.VentasHoy)
	assert.Equal(t, "250.00", resp.TotalHoy.StringFixed(2))
	assert.Equal(t, 1, resp.VentasMes)
	assert.Equal(t, "250.00", resp.TotalMes.StringFixed(2))

	require.Len(t, resp.StockBajo, 1)
	assert.Equal(t, "Harina premium", resp.StockBajo[0].Nombre)

	require.NotNil(t, resp.Meta)
	require.NotNil(t, resp.AvanceMetaPct)
	assert.Equal(t, "25.0", resp.AvanceMetaPct.StringFixed(1))
}

func TestDashboardSinMeta(t *testing.T) {
	f := newReporteFixture()

	resp, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.VentasHoy)
	assert.Nil(t, resp.Meta)
	assert.Nil(t, resp.AvanceMetaPct)
}

func TestGuardarYListarMetas(t *testing.T) {
	f := newReporteFixture()

	resp, err := f.svc.GuardarMeta(context.Background(), dto.GuardarMetaRequest{
		Anio:          2026,
		Mes:           9,
		MontoObjetivo: decimal.RequireFromString("5000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2026, resp.Anio)
	assert.Equal(t, 9, resp.Mes)
	assert.Equal(t, "5000.00", resp.MontoObjetivo.StringFixed(2))

	// El upsert reemplaza el objetivo del mismo período
	_, err = f.svc.GuardarMeta(context.Background(), dto.GuardarMetaRequest{
		Anio:          2026,
		Mes:           9,
		MontoObjetivo: decimal.RequireFromString("7500.00"),
	})
	require.NoError(t, err)

	metas, err := f.svc.ListarMetas(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "7500.00", metas[0].MontoObjetivo.StringFixed(2))
}

func TestListMovimientos(t *testing.T) {
	f := newReporteFixture()
	productoID := uuid.New()
	otroID := uuid.New()
	require.NoError(t, f.movs.CreateTx(nil, &model.MovimientoInventario{
		ProductoID: productoID, Tipo: "venta", Cantidad: -2, StockAnterior: 10, StockNuevo: 8,
	}))
	require.NoError(t, f.movs.CreateTx(nil, &model.MovimientoInventario{
		ProductoID: otroID, Tipo: "ajuste", Cantidad: 5, StockAnterior: 0, StockNuevo: 5,
	}))

	resp, err := f.svc.ListMovimientos(context.Background(), repository.MovimientoFilter{Tipo: "venta"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, -2, resp.Data[0].Cantidad)
	assert.Equal(t, 1, resp.Page, "valores por defecto de paginación")
	assert.Equal(t, 100, resp.Limit)
}
