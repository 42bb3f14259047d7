package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de entrega.
const (
	EntregaPendiente   = "pendiente"
	EntregaEnCamino    = "en_camino"
	EntregaEntregada   = "entregado"
	EntregaNoEntregada = "no_entregado"
	EntregaCancelada   = "cancelado"
)

// Entrega is a scheduled physical delivery of a rental.
type Entrega struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AlquilerID uuid.UUID `gorm:"type:uuid;not null;index"`

	// FechaHoraEntrega is the planned slot; FechaHoraEntregaReal is stamped
	// when the driver confirms.
	FechaHoraEntrega     time.Time `gorm:"not null;index"`
	FechaHoraEntregaReal *time.Time

	Direccion     string `gorm:"not null"`
	EstadoEntrega string `gorm:"type:varchar(20);not null;default:'pendiente'"`

	// ResponsableID is the user in charge of the delivery run.
	ResponsableID *uuid.UUID `gorm:"type:uuid"`

	CreadoEn      time.Time `gorm:"autoCreateTime"`
	ActualizadoEn time.Time `gorm:"autoUpdateTime"`

	Alquiler *Alquiler    `gorm:"foreignKey:AlquilerID"`
	Detalles []DetEntrega `gorm:"foreignKey:EntregaID;constraint:OnDelete:CASCADE"`
}

// DetEntrega assigns one crew member and the units they handled.
type DetEntrega struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntregaID         uuid.UUID `gorm:"type:uuid;not null;index"`
	UsuarioID         uuid.UUID `gorm:"type:uuid;not null"`
	CantidadEntregada int       `gorm:"not null;default:0"`
}

// TableName overrides GORM's default pluralization.
func (DetEntrega) TableName() string { return "det_entregas" }
