package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingrediente is a raw material quoted by continuous measure (kg, L).
// Unlike Producto, stock and quantities are fractional.
type Ingrediente struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string          `gorm:"index;not null"`
	UnidadMedida   string          `gorm:"not null;default:'kg'"` // kg | l | unidad
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockActual    decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Ingrediente) TableName() string { return "ingredientes" }
