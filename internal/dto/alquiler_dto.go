package dto

import "github.com/shopspring/decimal"

type DetAlquilerResponse struct {
	ID         string          `json:"id"`
	ProductoID string          `json:"producto_id"`
	Producto   string          `json:"producto"`
	Cantidad   int             `json:"cantidad"`
	PrecioUnit decimal.Decimal `json:"precio_unit"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type AlquilerResponse struct {
	ID             string                `json:"id"`
	PedidoID       *string               `json:"pedido_id,omitempty"`
	ClienteID      *string               `json:"cliente_id,omitempty"`
	Cliente        string                `json:"cliente"`
	Estado         string                `json:"estado"`
	GarantiaEstado string                `json:"garantia_estado"`
	GarantiaMonto  *decimal.Decimal      `json:"garantia_monto,omitempty"`
	Total          decimal.Decimal       `json:"total"`
	Items          []DetAlquilerResponse `json:"items"`
	CreadoEn       string                `json:"creado_en"`
	FinalizadoEn   *string               `json:"finalizado_en,omitempty"`
}

type AlquilerListResponse struct {
	Data  []AlquilerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type AlquilerFilter struct {
	Estado    string `form:"estado"`
	ClienteID string `form:"cliente_id"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// LiquidacionResponse describes the deposit settlement computed on finalize.
type LiquidacionResponse struct {
	AlquilerID      string          `json:"alquiler_id"`
	GarantiaTotal   decimal.Decimal `json:"garantia_total"`
	CostoIncidentes decimal.Decimal `json:"costo_incidentes"`
	MontoAplicado   decimal.Decimal `json:"monto_aplicado"`
	MontoDevuelto   decimal.Decimal `json:"monto_devuelto"`
	GarantiaEstado  string          `json:"garantia_estado"`
	Estado          string          `json:"estado"`
}

// ResumenAlquilerResponse aggregates the rental with its incidents and the
// projected settlement without mutating anything.
type ResumenAlquilerResponse struct {
	Alquiler           AlquilerResponse    `json:"alquiler"`
	Incidentes         []IncidenteResponse `json:"incidentes"`
	IncidentesAbiertos int                 `json:"incidentes_abiertos"`
	CostoIncidentes    decimal.Decimal     `json:"costo_incidentes"`
	GarantiaTotal      decimal.Decimal     `json:"garantia_total"`
	SaldoGarantia      decimal.Decimal     `json:"saldo_garantia"`
}
