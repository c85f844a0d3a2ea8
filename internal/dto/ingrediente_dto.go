package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearIngredienteRequest struct {
	Nombre         string          `json:"nombre"          validate:"required,min=2,max=120"`
	UnidadMedida   string          `json:"unidad_medida"   validate:"required,oneof=kg l unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	StockActual    decimal.Decimal `json:"stock_actual"`
}

type ActualizarIngredienteRequest struct {
	Nombre         *string          `json:"nombre"          validate:"omitempty,min=2,max=120"`
	UnidadMedida   *string          `json:"unidad_medida"   validate:"omitempty,oneof=kg l unidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
	StockActual    *decimal.Decimal `json:"stock_actual"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredienteResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	UnidadMedida   string          `json:"unidad_medida"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	StockActual    decimal.Decimal `json:"stock_actual"`
	Activo         bool            `json:"activo"`
}
