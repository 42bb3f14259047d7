package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimiento de stock.
const (
	MovimientoReserva    = "reserva"
	MovimientoLiberacion = "liberacion"
	MovimientoEntrega    = "entrega"
	MovimientoDevolucion = "devolucion"
	MovimientoReposicion = "reposicion"
	MovimientoAjuste     = "ajuste"
)

// MovimientoStock registra cada cambio de stock o reserva en un producto.
// Rows are immutable; corrections create new movements.
type MovimientoStock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo       string    `gorm:"type:varchar(20);not null"`
	// Cantidad is the magnitude of the movement; the Tipo determines which
	// counter it touched and in which direction.
	Cantidad        int `gorm:"not null"`
	StockAnterior   int `gorm:"not null"`
	StockNuevo      int `gorm:"not null"`
	ReservaAnterior int `gorm:"not null"`
	ReservaNueva    int `gorm:"not null"`
	Motivo          string
	// ReferenciaID links to the originating pedido, alquiler or incidente.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
