package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	PedidoPendiente  = "pendiente"
	PedidoConfirmado = "confirmado"
	PedidoEntregado  = "entregado"
	PedidoCancelado  = "cancelado"
)

// Tipos de entrega.
const (
	EntregaRetiro = "retiro"
	EntregaEnvio  = "envio"
)

// Estados de la garantía sobre el pedido.
const (
	GarantiaPedidoPendiente  = "pendiente"
	GarantiaPedidoDevuelta   = "devuelta"
	GarantiaPedidoDescontada = "descontada"
)

// Pedido captures a customer order: line items priced at order time, a deposit
// (seña), a refundable garantía and the event/return window that drives the
// stock reservation. It owns zero-or-one mirrored Alquiler.
type Pedido struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado    string    `gorm:"type:varchar(20);not null;default:'pendiente'"`

	FechaHoraEvento     time.Time `gorm:"not null;index"`
	FechaHoraDevolucion time.Time `gorm:"not null"`

	TipoEntrega       string `gorm:"type:varchar(20);not null;default:'retiro'"`
	DireccionEvento   string
	ReferenciaEntrega string
	CostoFlete        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Senia     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FormaPago string          `gorm:"type:varchar(40)"`

	// GarantiaMonto is the refundable security amount held against damage.
	GarantiaMonto  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GarantiaTipo   string          `gorm:"type:varchar(20);not null;default:'dni'"` // dni | servicio | otro
	GarantiaEstado string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	GarantiaMotivo string

	CreadoEn time.Time `gorm:"autoCreateTime"`

	Cliente  *Cliente    `gorm:"foreignKey:ClienteID"`
	Detalles []DetPedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
	Alquiler *Alquiler   `gorm:"foreignKey:PedidoID"`
}

// DetPedido is one ordered line item; precio_unit is captured at order time.
type DetPedido struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad   int             `gorm:"not null"`
	PrecioUnit decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (DetPedido) TableName() string { return "det_pedidos" }

// Subtotal is cantidad × precio_unit.
func (d *DetPedido) Subtotal() decimal.Decimal {
	return d.PrecioUnit.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}
