package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a finished good sold at the register.
// StockActual only changes through a recorded Venta, an Anulacion, or a
// manual adjustment — every change gets a MovimientoInventario row.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"column:sku;uniqueIndex;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	CategoriaID *uuid.UUID      `gorm:"type:uuid;index"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioCosto decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockActual int             `gorm:"not null;default:0"`
	StockMinimo int             `gorm:"not null;default:5"`
	ImagenURL   *string         `gorm:"column:imagen_url"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Producto) TableName() string { return "productos" }
