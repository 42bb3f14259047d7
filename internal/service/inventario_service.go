package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/apierror"
	"alquilapp/internal/model"
	"alquilapp/internal/repository"
)

// InventarioService owns the two-counter stock ledger. Every mutation is a
// guarded update plus a MovimientoStock audit row in the same transaction.
type InventarioService interface {
	ReservarTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error
	LiberarReservaTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error
	ConsumirReservaTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error
	DevolverAStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error
	DescontarStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error
	DisponibleEnRango(ctx context.Context, productoID uuid.UUID, desde, hasta time.Time) (int, error)
	Movimientos(ctx context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error)
}

type inventarioService struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoStockRepository
}

func NewInventarioService(productos repository.ProductoRepository, movimientos repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productos: productos, movimientos: movimientos}
}

func (s *inventarioService) registrar(tx *gorm.DB, antes, despues *model.Producto, tipo string, cantidad int, referenciaID *uuid.UUID, motivo string) error {
	mov := &model.MovimientoStock{
		ProductoID:      despues.ID,
		Tipo:            tipo,
		Cantidad:        cantidad,
		StockAnterior:   antes.Stock,
		StockNuevo:      despues.Stock,
		ReservaAnterior: antes.StockReservado,
		ReservaNueva:    despues.StockReservado,
		Motivo:          motivo,
		ReferenciaID:    referenciaID,
	}
	return s.movimientos.CreateTx(tx, mov)
}

func (s *inventarioService) ReservarTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error {
	if cantidad <= 0 {
		return apierror.Validation("la cantidad a reservar debe ser mayor a 0")
	}
	antes, err := s.productos.FindByIDTx(tx, productoID)
	if err != nil {
		return err
	}
	despues, err := s.productos.ReservarStockTx(tx, productoID, cantidad)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.InsufficientStock(antes.Nombre, antes.StockDisponible())
	}
	if err != nil {
		return err
	}
	return s.registrar(tx, antes, despues, model.MovimientoReserva, cantidad, referenciaID, motivo)
}

func (s *inventarioService) LiberarReservaTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error {
	if cantidad <= 0 {
		return apierror.Validation("la cantidad a liberar debe ser mayor a 0")
	}
	antes, err := s.productos.FindByIDTx(tx, productoID)
	if err != nil {
		return err
	}
	despues, err := s.productos.LiberarReservaTx(tx, productoID, cantidad)
	if err != nil {
		return err
	}
	return s.registrar(tx, antes, despues, model.MovimientoLiberacion, cantidad, referenciaID, motivo)
}

func (s *inventarioService) ConsumirReservaTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error {
	if cantidad <= 0 {
		return apierror.Validation("la cantidad a entregar debe ser mayor a 0")
	}
	antes, err := s.productos.FindByIDTx(tx, productoID)
	if err != nil {
		return err
	}
	despues, err := s.productos.ConsumirReservaTx(tx, productoID, cantidad)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.Conflict("no hay reserva suficiente de %s para entregar %d unidades", antes.Nombre, cantidad)
	}
	if err != nil {
		return err
	}
	return s.registrar(tx, antes, despues, model.MovimientoEntrega, cantidad, referenciaID, motivo)
}

func (s *inventarioService) DevolverAStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error {
	if cantidad <= 0 {
		return apierror.Validation("la cantidad a devolver debe ser mayor a 0")
	}
	antes, err := s.productos.FindByIDTx(tx, productoID)
	if err != nil {
		return err
	}
	despues, err := s.productos.DevolverStockTx(tx, productoID, cantidad)
	if err != nil {
		return err
	}
	return s.registrar(tx, antes, despues, model.MovimientoDevolucion, cantidad, referenciaID, motivo)
}

func (s *inventarioService) DescontarStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, referenciaID *uuid.UUID, motivo string) error {
	if cantidad <= 0 {
		return apierror.Validation("la cantidad a descontar debe ser mayor a 0")
	}
	antes, err := s.productos.FindByIDTx(tx, productoID)
	if err != nil {
		return err
	}
	despues, err := s.productos.DescontarStockTx(tx, productoID, cantidad)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.InsufficientStock(antes.Nombre, antes.Stock)
	}
	if err != nil {
		return err
	}
	return s.registrar(tx, antes, despues, model.MovimientoAjuste, cantidad, referenciaID, motivo)
}

// DisponibleEnRango projects availability for a rental window: physical free
// stock today minus what live orders already committed over the same window.
func (s *inventarioService) DisponibleEnRango(ctx context.Context, productoID uuid.UUID, desde, hasta time.Time) (int, error) {
	if !hasta.After(desde) {
		return 0, apierror.Validation("el rango de fechas es inválido")
	}
	p, err := s.productos.FindByID(ctx, productoID)
	if err != nil {
		return 0, err
	}
	comprometido, err := s.productos.ReservadoEnRango(ctx, productoID, desde, hasta)
	if err != nil {
		return 0, err
	}
	disp := p.Stock - comprometido
	if disp < 0 {
		disp = 0
	}
	return disp, nil
}

func (s *inventarioService) Movimientos(ctx context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	return s.movimientos.ListByProducto(ctx, productoID, limit)
}
