package model

import (
	"time"

	"alquilapp/internal/apierror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de pago. The tipo deterministically fixes the sentido; amounts are
// always stored positive.
const (
	PagoSenia              = "SENIA"
	PagoSaldo              = "SALDO"
	PagoGarantia           = "GARANTIA"
	PagoDevolucionTardia   = "DEVOLUCION_TARDIA"
	PagoOtroIngreso        = "OTRO_INGRESO"
	PagoDevolucionGarantia = "DEVOLUCION_GARANTIA"
	PagoAplicacionGarantia = "APLICACION_GARANTIA"
	PagoOtroEgreso         = "OTRO_EGRESO"
)

// Sentidos.
const (
	SentidoIngreso = "INGRESO"
	SentidoEgreso  = "EGRESO"
)

// Métodos de pago.
const (
	MetodoEfectivo      = "EFECTIVO"
	MetodoTransferencia = "TRANSFERENCIA"
)

// Orígenes del pago: the tagged-union discriminator. Exactly the reference
// matching the origen is populated; the other is always nil.
const (
	OrigenPedido         = "pedido"
	OrigenAlquiler       = "alquiler"
	OrigenExtraordinario = "extraordinario"
)

// Estados de garantía reflejados sobre pagos de tipo garantía.
const (
	PagoGarantiaPendiente = "PENDIENTE"
	PagoGarantiaDevuelta  = "DEVUELTA"
	PagoGarantiaAplicada  = "APLICADA"
)

var sentidoPorTipo = map[string]string{
	PagoSenia:              SentidoIngreso,
	PagoSaldo:              SentidoIngreso,
	PagoGarantia:           SentidoIngreso,
	PagoDevolucionTardia:   SentidoIngreso,
	PagoOtroIngreso:        SentidoIngreso,
	PagoDevolucionGarantia: SentidoEgreso,
	PagoAplicacionGarantia: SentidoIngreso,
	PagoOtroEgreso:         SentidoEgreso,
}

// tiposConOrigen require exactly one of pedido/alquiler.
var tiposConOrigen = map[string]bool{
	PagoSenia:              true,
	PagoSaldo:              true,
	PagoGarantia:           true,
	PagoDevolucionGarantia: true,
	PagoAplicacionGarantia: true,
}

// tiposGarantia additionally require an alquiler link.
var tiposGarantia = map[string]bool{
	PagoGarantia:           true,
	PagoDevolucionGarantia: true,
	PagoAplicacionGarantia: true,
}

// SentidoDe resolves the fixed direction for a payment type.
func SentidoDe(tipo string) (string, bool) {
	s, ok := sentidoPorTipo[tipo]
	return s, ok
}

// Pago is one money movement in the unified ledger. Every movement is tied to
// at most one origin (pedido or alquiler, never both) and to the caja open at
// creation time.
type Pago struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaPago time.Time `gorm:"autoCreateTime;index"`

	Origen     string     `gorm:"type:varchar(20);not null"`
	PedidoID   *uuid.UUID `gorm:"type:uuid;index"`
	AlquilerID *uuid.UUID `gorm:"type:uuid;index"`
	ClienteID  *uuid.UUID `gorm:"type:uuid;index"`

	TipoPago string `gorm:"type:varchar(30);not null"`
	Sentido  string `gorm:"type:varchar(10);not null"`

	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`

	ComprobantePago string `gorm:"type:varchar(120)"`
	Notas           string `gorm:"type:varchar(255)"`

	EstadoGarantia *string `gorm:"type:varchar(20)"`

	CajaID *uuid.UUID `gorm:"type:uuid;index"`

	Pedido   *Pedido   `gorm:"foreignKey:PedidoID"`
	Alquiler *Alquiler `gorm:"foreignKey:AlquilerID"`
	Cliente  *Cliente  `gorm:"foreignKey:ClienteID"`
	Caja     *Caja     `gorm:"foreignKey:CajaID"`
}

// NewPagoParams collects everything NewPago needs. Caja is the register open
// at creation time, passed in explicitly by the caller; nil when none is open.
type NewPagoParams struct {
	TipoPago        string
	Monto           decimal.Decimal
	MetodoPago      string
	ComprobantePago string
	Notas           string
	Pedido          *Pedido
	Alquiler        *Alquiler
	ClienteID       *uuid.UUID
	Caja            *Caja
}

// NewPago validates the tagged-union origin and builds a Pago with its sentido
// and estado_garantia derived from the tipo. The cliente is inferred from the
// linked pedido/alquiler when not given.
func NewPago(p NewPagoParams) (*Pago, error) {
	sentido, ok := SentidoDe(p.TipoPago)
	if !ok {
		return nil, apierror.Validation("tipo_pago '%s' desconocido", p.TipoPago)
	}
	if !p.Monto.IsPositive() {
		return nil, apierror.Validation("el monto del pago debe ser mayor a 0")
	}
	if p.MetodoPago != MetodoEfectivo && p.MetodoPago != MetodoTransferencia {
		return nil, apierror.Validation("metodo_pago '%s' desconocido", p.MetodoPago)
	}

	if p.Pedido != nil && p.Alquiler != nil {
		return nil, apierror.Validation("un pago no puede asociarse a un pedido y un alquiler a la vez")
	}
	if tiposConOrigen[p.TipoPago] && p.Pedido == nil && p.Alquiler == nil {
		return nil, apierror.Validation("el tipo '%s' debe asociarse a un pedido o alquiler", p.TipoPago)
	}
	if p.TipoPago == PagoSenia && p.Pedido == nil {
		return nil, apierror.Validation("las señas deben asociarse a un pedido")
	}
	if tiposGarantia[p.TipoPago] && p.Alquiler == nil {
		return nil, apierror.Validation("el tipo '%s' debe asociarse a un alquiler", p.TipoPago)
	}

	pago := &Pago{
		TipoPago:        p.TipoPago,
		Sentido:         sentido,
		Monto:           p.Monto,
		MetodoPago:      p.MetodoPago,
		ComprobantePago: p.ComprobantePago,
		Notas:           p.Notas,
		ClienteID:       p.ClienteID,
		Origen:          OrigenExtraordinario,
	}

	switch {
	case p.Pedido != nil:
		pago.Origen = OrigenPedido
		pago.PedidoID = &p.Pedido.ID
		if pago.ClienteID == nil {
			cid := p.Pedido.ClienteID
			pago.ClienteID = &cid
		}
	case p.Alquiler != nil:
		pago.Origen = OrigenAlquiler
		pago.AlquilerID = &p.Alquiler.ID
		if pago.ClienteID == nil {
			pago.ClienteID = p.Alquiler.ClienteID
		}
	}

	switch p.TipoPago {
	case PagoGarantia:
		eg := PagoGarantiaPendiente
		pago.EstadoGarantia = &eg
	case PagoDevolucionGarantia:
		eg := PagoGarantiaDevuelta
		pago.EstadoGarantia = &eg
	case PagoAplicacionGarantia:
		eg := PagoGarantiaAplicada
		pago.EstadoGarantia = &eg
	}

	if p.Caja != nil {
		cid := p.Caja.ID
		pago.CajaID = &cid
	}

	return pago, nil
}
