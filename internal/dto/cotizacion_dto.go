package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemCotizacionRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type IngredienteCotizacionRequest struct {
	IngredienteID string          `json:"ingrediente_id" validate:"required,uuid"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"required"`
	Notas         string          `json:"notas"          validate:"max=500"`
}

// PersonalizadaData are the header fields required when tipo=personalizada:
// a concrete client and a validity date. Product and/or ingredient lines.
type PersonalizadaData struct {
	ClienteID    string                         `json:"cliente_id"   validate:"required,uuid"`
	ValidaHasta  string                         `json:"valida_hasta" validate:"required,datetime=2006-01-02"`
	Items        []ItemCotizacionRequest        `json:"items"        validate:"dive"`
	Ingredientes []IngredienteCotizacionRequest `json:"ingredientes" validate:"dive"`
}

// EstandarData are the header fields required when tipo=estandar: a free-text
// product name and ingredient lines only — no client, no validity date.
type EstandarData struct {
	NombreProducto string                         `json:"nombre_producto" validate:"required,min=2,max=120"`
	Ingredientes   []IngredienteCotizacionRequest `json:"ingredientes"    validate:"required,min=1,dive"`
}

// CrearCotizacionRequest is a tagged union: Tipo selects which of the two
// concrete shapes must be present. Exactly one of Personalizada/Estandar is
// honored; the service rejects a request whose shape does not match its tag.
type CrearCotizacionRequest struct {
	Tipo          string             `json:"tipo" validate:"required,oneof=personalizada estandar"`
	Personalizada *PersonalizadaData `json:"personalizada"`
	Estandar      *EstandarData      `json:"estandar"`
	// EmailCliente: when present, the worker mails the generated PDF.
	EmailCliente *string `json:"email_cliente" validate:"omitempty,email"`
}

type CambiarEstadoCotizacionRequest struct {
	Estado string `json:"estado" validate:"required,oneof=aceptada rechazada"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type CotizacionFilter struct {
	Tipo   string `form:"tipo"`   // personalizada | estandar | empty = all
	Estado string `form:"estado"` // pendiente | aceptada | rechazada | empty = all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemCotizacionResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type IngredienteCotizacionResponse struct {
	IngredienteID  string          `json:"ingrediente_id"`
	Ingrediente    string          `json:"ingrediente"`
	UnidadMedida   string          `json:"unidad_medida"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Notas          *string         `json:"notas"`
}

type CotizacionResponse struct {
	ID             string                          `json:"id"`
	Tipo           string                          `json:"tipo"`
	Estado         string                          `json:"estado"`
	ClienteID      *string                         `json:"cliente_id"`
	Cliente        *string                         `json:"cliente"`
	NombreProducto *string                         `json:"nombre_producto"`
	ValidaHasta    *string                         `json:"valida_hasta"`
	Total          decimal.Decimal                 `json:"total"`
	Items          []ItemCotizacionResponse        `json:"items"`
	Ingredientes   []IngredienteCotizacionResponse `json:"ingredientes"`
	CreatedAt      string                          `json:"created_at"`
}

type CotizacionListResponse struct {
	Data  []CotizacionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
