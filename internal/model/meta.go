package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Meta is the monthly sales goal shown on the dashboard.
// One row per (anio, mes).
type Meta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Anio          int             `gorm:"not null;uniqueIndex:idx_meta_periodo"`
	Mes           int             `gorm:"not null;uniqueIndex:idx_meta_periodo"` // 1–12
	MontoObjetivo decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Meta) TableName() string { return "metas" }
