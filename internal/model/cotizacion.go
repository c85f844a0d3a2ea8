package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cotizacion is a quotation — a proposal, not a commitment: creating one has
// no stock or inventory-movement side effects.
//
// Tipo: "personalizada" (client-specific, validity date, product and/or
// ingredient lines) | "estandar" (generic product name, ingredient lines only).
// Estado: "pendiente" | "aceptada" | "rechazada" — the accept/reject
// transition is only exercised for personalizada; estandar rows keep the
// initial "pendiente" forever.
type Cotizacion struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo           string     `gorm:"type:varchar(20);not null"`
	Estado         string     `gorm:"type:varchar(20);not null;default:'pendiente'"`
	ClienteID      *uuid.UUID `gorm:"type:uuid;index"`
	NombreProducto *string
	ValidaHasta    *time.Time
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Cliente      *Cliente                `gorm:"foreignKey:ClienteID"`
	Items        []CotizacionItem        `gorm:"foreignKey:CotizacionID"`
	Ingredientes []CotizacionIngrediente `gorm:"foreignKey:CotizacionID"`
}

func (Cotizacion) TableName() string { return "cotizaciones" }

// CotizacionItem is a finished-product line (personalizada only).
type CotizacionItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (CotizacionItem) TableName() string { return "cotizacion_items" }

// CotizacionIngrediente is a raw-material line. Cantidad is fractional
// (kg, L) and each line carries free-text notes.
type CotizacionIngrediente struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	IngredienteID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas          *string

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
}

func (CotizacionIngrediente) TableName() string { return "cotizacion_ingredientes" }
