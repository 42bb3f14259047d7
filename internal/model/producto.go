package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categorías del catálogo de alquiler.
const (
	CategoriaVajilla     = "vajilla"
	CategoriaCristaleria = "cristaleria"
	CategoriaManteleria  = "manteleria"
	CategoriaDecoracion  = "decoracion"
	CategoriaSalon       = "salon"
	CategoriaMobiliario  = "mobiliario"
)

// Producto is a rentable catalog item with reservable stock.
// Invariant: 0 <= StockReservado <= Stock at all times.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Categoria   string          `gorm:"type:varchar(20);not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Stock counts units physically owned; StockReservado counts units
	// earmarked for pending/confirmed pedidos still in the depot.
	Stock          int `gorm:"not null;default:0"`
	StockReservado int `gorm:"not null;default:0"`
	ImagenURL      string
	Activo         bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StockDisponible is the derived availability: stock minus reservations,
// floored at 0.
func (p *Producto) StockDisponible() int {
	if d := p.Stock - p.StockReservado; d > 0 {
		return d
	}
	return 0
}
