package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	SKU         string          `json:"sku"           validate:"required,min=2,max=40"`
	Nombre      string          `json:"nombre"        validate:"required,min=2,max=120"`
	Descripcion *string         `json:"descripcion"`
	CategoriaID *string         `json:"categoria_id"  validate:"omitempty,uuid"`
	PrecioVenta decimal.Decimal `json:"precio_venta"  validate:"required"`
	PrecioCosto decimal.Decimal `json:"precio_costo"  validate:"required"`
	StockActual int             `json:"stock_actual"  validate:"min=0"`
	StockMinimo int             `json:"stock_minimo"  validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"        validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"`
	CategoriaID *string          `json:"categoria_id"  validate:"omitempty,uuid"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
	PrecioCosto *decimal.Decimal `json:"precio_costo"`
	StockMinimo *int             `json:"stock_minimo"  validate:"omitempty,min=0"`
}

// AjustarStockRequest records a manual stock adjustment with its justification.
type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	SKU         string `form:"sku"`
	CategoriaID string `form:"categoria_id"`
	Activo      string `form:"activo"` // "false" | "all" | default activos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	CategoriaID *string         `json:"categoria_id"`
	Categoria   *string         `json:"categoria"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	PrecioCosto decimal.Decimal `json:"precio_costo"`
	StockActual int             `json:"stock_actual"`
	StockMinimo int             `json:"stock_minimo"`
	ImagenURL   *string         `json:"imagen_url"`
	Activo      bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
