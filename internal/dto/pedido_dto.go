package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemPedidoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,gt=0"`
	// PrecioUnit overrides the catalog price when set; nil = catalog price.
	PrecioUnit *decimal.Decimal `json:"precio_unit"`
}

type CrearPedidoRequest struct {
	ClienteID           string              `json:"cliente_id"            validate:"required,uuid"`
	Items               []ItemPedidoRequest `json:"items"                 validate:"required,min=1,dive"`
	FechaHoraEvento     time.Time           `json:"fecha_hora_evento"     validate:"required"`
	FechaHoraDevolucion time.Time           `json:"fecha_hora_devolucion" validate:"required"`
	TipoEntrega         string              `json:"tipo_entrega"          validate:"omitempty,oneof=retiro envio"`
	DireccionEvento     string              `json:"direccion_evento"`
	ReferenciaEntrega   string              `json:"referencia_entrega"`
	CostoFlete          decimal.Decimal     `json:"costo_flete"           validate:"min=0"`
	Senia               decimal.Decimal     `json:"senia"                 validate:"min=0"`
	FormaPago           string              `json:"forma_pago"`
	GarantiaMonto       decimal.Decimal     `json:"garantia_monto"        validate:"min=0"`
	GarantiaTipo        string              `json:"garantia_tipo"         validate:"omitempty,oneof=dni servicio otro"`
	MetodoPagoSenia     string              `json:"metodo_pago_senia"     validate:"omitempty,oneof=EFECTIVO TRANSFERENCIA"`
}

type PedidoFilter struct {
	Estado    string `form:"estado"`
	ClienteID string `form:"cliente_id"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetPedidoResponse struct {
	ID         string          `json:"id"`
	ProductoID string          `json:"producto_id"`
	Producto   string          `json:"producto"`
	Cantidad   int             `json:"cantidad"`
	PrecioUnit decimal.Decimal `json:"precio_unit"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID                  string              `json:"id"`
	ClienteID           string              `json:"cliente_id"`
	Cliente             string              `json:"cliente,omitempty"`
	Estado              string              `json:"estado"`
	FechaHoraEvento     string              `json:"fecha_hora_evento"`
	FechaHoraDevolucion string              `json:"fecha_hora_devolucion"`
	TipoEntrega         string              `json:"tipo_entrega"`
	DireccionEvento     string              `json:"direccion_evento,omitempty"`
	CostoFlete          decimal.Decimal     `json:"costo_flete"`
	Total               decimal.Decimal     `json:"total"`
	Senia               decimal.Decimal     `json:"senia"`
	Saldo               decimal.Decimal     `json:"saldo"`
	FormaPago           string              `json:"forma_pago,omitempty"`
	GarantiaMonto       decimal.Decimal     `json:"garantia_monto"`
	GarantiaTipo        string              `json:"garantia_tipo"`
	GarantiaEstado      string              `json:"garantia_estado"`
	Detalles            []DetPedidoResponse `json:"detalles"`
	AlquilerID          *string             `json:"alquiler_id,omitempty"`
	CreadoEn            string              `json:"creado_en"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// CrearPedidoResponse bundles the order and its rental mirror as created.
type CrearPedidoResponse struct {
	Pedido   PedidoResponse   `json:"pedido"`
	Alquiler AlquilerResponse `json:"alquiler"`
}
