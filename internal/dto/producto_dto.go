package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"      validate:"required,min=2,max=150"`
	Descripcion *string         `json:"descripcion"`
	Categoria   string          `json:"categoria"   validate:"required,oneof=vajilla cristaleria manteleria decoracion salon mobiliario"`
	Precio      decimal.Decimal `json:"precio"      validate:"required"`
	Stock       int             `json:"stock"       validate:"min=0"`
	ImagenURL   string          `json:"imagen_url"  validate:"omitempty,url"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"      validate:"omitempty,min=2,max=150"`
	Descripcion *string          `json:"descripcion"`
	Categoria   *string          `json:"categoria"   validate:"omitempty,oneof=vajilla cristaleria manteleria decoracion salon mobiliario"`
	Precio      *decimal.Decimal `json:"precio"`
	ImagenURL   *string          `json:"imagen_url"  validate:"omitempty,url"`
	Activo      *bool            `json:"activo"`
}

type AjustarStockRequest struct {
	Cantidad int    `json:"cantidad" validate:"required"`
	Motivo   string `json:"motivo"   validate:"required"`
}

type ProductoResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Descripcion     *string         `json:"descripcion,omitempty"`
	Categoria       string          `json:"categoria"`
	Precio          decimal.Decimal `json:"precio"`
	Stock           int             `json:"stock"`
	StockReservado  int             `json:"stock_reservado"`
	StockDisponible int             `json:"stock_disponible"`
	ImagenURL       string          `json:"imagen_url,omitempty"`
	Activo          bool            `json:"activo"`
}

type ProductoFilter struct {
	Categoria string `form:"categoria"`
	Buscar    string `form:"buscar"`
	Activo    *bool  `form:"activo"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// DisponibilidadResponse reports range availability for a product.
type DisponibilidadResponse struct {
	ProductoID string `json:"producto_id"`
	Desde      string `json:"desde"`
	Hasta      string `json:"hasta"`
	Disponible int    `json:"disponible"`
}
