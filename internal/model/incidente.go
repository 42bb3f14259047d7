package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados del incidente.
const (
	IncidenteAbierto  = "abierto"
	IncidenteResuelto = "resuelto"
	IncidenteAnulado  = "anulado"
)

// Tipos de incidente.
const (
	IncidenteReparable   = "reparable"
	IncidenteIrreparable = "irreparable"
)

// Resultados finales de la resolución.
const (
	ResultadoSinAccion   = "sin_accion"
	ResultadoRepuesto    = "repuesto"
	ResultadoReintegrado = "reintegrado"
)

// Incidente records damage/loss against one rented line item. CantidadAfectada
// across a line item's non-resolved incidents can never exceed the rented
// cantidad; resolution with resultado "repuesto" carries a cost that feeds the
// garantía settlement at finalize time.
type Incidente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DetAlquilerID uuid.UUID `gorm:"type:uuid;not null;index"`

	FechaIncidente  time.Time `gorm:"autoCreateTime"`
	Descripcion     string
	EstadoIncidente string `gorm:"type:varchar(20);not null;default:'abierto'"`
	TipoIncidente   string `gorm:"type:varchar(20);not null;default:'reparable'"`

	CantidadAfectada int `gorm:"not null"`
	CantidadRepuesta int `gorm:"not null;default:0"`

	ResultadoFinal  string `gorm:"type:varchar(20);not null;default:'sin_accion'"`
	FechaResolucion *time.Time

	DetAlquiler *DetAlquiler `gorm:"foreignKey:DetAlquilerID"`
}

// ConCosto reports whether a resolved incident contributes to the settlement.
func (i *Incidente) ConCosto() bool {
	return i.EstadoIncidente == IncidenteResuelto && i.ResultadoFinal == ResultadoRepuesto
}

// CantidadACobrar is the unit count priced into the settlement: the replaced
// quantity when recorded, otherwise the affected quantity.
func (i *Incidente) CantidadACobrar() int {
	if i.CantidadRepuesta > 0 {
		return i.CantidadRepuesta
	}
	return i.CantidadAfectada
}
