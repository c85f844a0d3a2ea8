package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is referenced by ventas and personalizada cotizaciones.
// Walk-in sales and estandar cotizaciones have no Cliente.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Email     *string
	Telefono  *string
	Notas     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
