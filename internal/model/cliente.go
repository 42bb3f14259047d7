package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is the customer record pedidos and alquileres hang from.
type Cliente struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Apellido    string    `gorm:"not null"`
	DNI         string    `gorm:"column:dni;uniqueIndex;not null"`
	CUIT        *string   `gorm:"column:cuit"`
	Telefono    string    `gorm:"not null"`
	Email       *string
	Calle       string
	NumeroCalle string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NombreCompleto is the display name used on alquileres and recibos.
func (c *Cliente) NombreCompleto() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}
