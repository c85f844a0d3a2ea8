package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimientoInventario is an append-only audit row for every product stock
// change. Rows are never updated or deleted — an annulled sale inserts
// compensating "devolucion" rows instead of rewriting the originals.
type MovimientoInventario struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"not null"` // "venta" | "ajuste" | "devolucion"
	Cantidad      int       `gorm:"not null"` // positive = entrada, negative = salida
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Motivo        string
	ReferenciaID  *uuid.UUID `gorm:"type:uuid"` // venta_id when tipo is venta/devolucion
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
