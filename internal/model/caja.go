package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de la caja.
const (
	CajaAbierta = "ABIERTA"
	CajaCerrada = "CERRADA"
)

// Caja is a till session bounding a set of pagos for reconciliation. At most
// one caja is ABIERTA at any time; pagos created while it is open attach to it.
type Caja struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	UsuarioAperturaID uuid.UUID  `gorm:"type:uuid;not null"`
	UsuarioCierreID   *uuid.UUID `gorm:"type:uuid"`

	FechaApertura time.Time `gorm:"autoCreateTime"`
	FechaCierre   *time.Time
	Estado        string `gorm:"type:varchar(10);not null;default:'ABIERTA';index"`

	// Arqueo inicial por método.
	MontoInicialEfectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoInicialTransferencia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Arqueo final declarado al cerrar.
	MontoFinalEfectivo      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoFinalTransferencia *decimal.Decimal `gorm:"type:decimal(12,2)"`

	// Diferencias declarado − teórico, computed on close.
	DiferenciaEfectivo      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DiferenciaTransferencia *decimal.Decimal `gorm:"type:decimal(12,2)"`

	NotasApertura string
	NotasCierre   string

	Pagos []Pago `gorm:"foreignKey:CajaID"`
}
