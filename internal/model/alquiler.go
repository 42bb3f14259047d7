package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del alquiler.
const (
	AlquilerPendiente  = "pendiente"
	AlquilerConfirmado = "confirmado"
	AlquilerEntregado  = "entregado"
	AlquilerFinalizado = "finalizado"
	AlquilerCancelado  = "cancelado"
)

// Estados de la garantía sobre el alquiler.
const (
	GarantiaAlquilerPendiente = "pendiente"
	GarantiaAlquilerDevuelta  = "devuelta"
	GarantiaAlquilerAplicada  = "aplicada"
)

// Alquiler mirrors a Pedido 1:1 and represents the physical rental: the
// delivery/return lifecycle and the disposition of the garantía. It may exist
// without a pedido (walk-in rentals), but settlement requires the link.
type Alquiler struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ClienteID *uuid.UUID `gorm:"type:uuid;index"`
	// ClienteNombre is the human-readable snapshot shown on listings even when
	// the cliente row changes later.
	ClienteNombre string `gorm:"column:cliente_nombre"`
	Estado        string `gorm:"type:varchar(20);not null;default:'pendiente'"`

	GarantiaEstado string           `gorm:"type:varchar(20);not null;default:'pendiente'"`
	GarantiaMonto  *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CreadoEn     time.Time `gorm:"autoCreateTime"`
	FinalizadoEn *time.Time

	Pedido  *Pedido       `gorm:"foreignKey:PedidoID"`
	Cliente *Cliente      `gorm:"foreignKey:ClienteID"`
	Items   []DetAlquiler `gorm:"foreignKey:AlquilerID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the Spanish plural.
func (Alquiler) TableName() string { return "alquileres" }

// PuedeFinalizar reports whether the settlement operation is reachable from
// the current estado.
func (a *Alquiler) PuedeFinalizar() bool {
	switch a.Estado {
	case AlquilerPendiente, AlquilerConfirmado, AlquilerEntregado:
		return true
	}
	return false
}

// CalcularTotal sums cantidad × precio_unit across the rental's items.
func (a *Alquiler) CalcularTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range a.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// DetAlquiler is one rented line item, copied from the originating DetPedido.
type DetAlquiler struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AlquilerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad   int             `gorm:"not null"`
	PrecioUnit decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (DetAlquiler) TableName() string { return "det_alquileres" }

// Subtotal is cantidad × precio_unit.
func (d *DetAlquiler) Subtotal() decimal.Decimal {
	return d.PrecioUnit.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}
