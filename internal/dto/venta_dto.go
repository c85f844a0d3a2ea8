package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha      string `form:"fecha"`       // YYYY-MM-DD; empty = today
	MetodoPago string `form:"metodo_pago"` // efectivo | tarjeta | empty = all
	ClienteID  string `form:"cliente_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaRequest struct {
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta"`
	// ClienteID is empty for walk-in ("Cliente general") sales.
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
}

// AnularVentaRequest carries the mandatory justification for an annulment.
type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3,max=300"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID         string              `json:"id"`
	Items      []ItemVentaResponse `json:"items"`
	Total      decimal.Decimal     `json:"total"`
	MetodoPago string              `json:"metodo_pago"`
	ClienteID  *string             `json:"cliente_id"`
	Cliente    string              `json:"cliente"` // "Cliente general" when no cliente
	CreatedAt  string              `json:"created_at"`
}
