package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/repository"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*model.Producto, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	Listar(ctx context.Context, f dto.ProductoFilter) ([]model.Producto, int64, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*model.Producto, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*model.Producto, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	Disponibilidad(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (int, error)
	Movimientos(ctx context.Context, id uuid.UUID, limit int) ([]model.MovimientoStock, error)
}

type productoService struct {
	productos  repository.ProductoRepository
	incidentes repository.IncidenteRepository
	inventario InventarioService
}

func NewProductoService(
	productos repository.ProductoRepository,
	incidentes repository.IncidenteRepository,
	inventario InventarioService,
) ProductoService {
	return &productoService{productos: productos, incidentes: incidentes, inventario: inventario}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*model.Producto, error) {
	if req.Precio.IsNegative() {
		return nil, apierror.Validation("el precio no puede ser negativo")
	}
	producto := &model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Precio:      req.Precio,
		Stock:       req.Stock,
		ImagenURL:   req.ImagenURL,
		Activo:      true,
	}
	if err := s.productos.Create(ctx, producto); err != nil {
		return nil, err
	}
	return producto, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, err := s.productos.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	return p, err
}

func (s *productoService) Listar(ctx context.Context, f dto.ProductoFilter) ([]model.Producto, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.productos.List(ctx, f)
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*model.Producto, error) {
	producto, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.Categoria != nil {
		producto.Categoria = *req.Categoria
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, apierror.Validation("el precio no puede ser negativo")
		}
		producto.Precio = *req.Precio
	}
	if req.ImagenURL != nil {
		producto.ImagenURL = *req.ImagenURL
	}
	if req.Activo != nil {
		producto.Activo = *req.Activo
	}

	if err := s.productos.Update(ctx, producto); err != nil {
		return nil, err
	}
	return producto, nil
}

// AjustarStock registra una corrección manual de inventario. Positive amounts
// replenish, negative amounts remove from physical stock; removal can never
// break the reservation invariant.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*model.Producto, error) {
	producto, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Cantidad == 0 {
		return nil, apierror.Validation("la cantidad del ajuste no puede ser 0")
	}

	err = runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		if req.Cantidad > 0 {
			return s.inventario.DevolverAStockTx(tx, producto.ID, req.Cantidad, nil, req.Motivo)
		}
		quitar := -req.Cantidad
		if producto.Stock-quitar < producto.StockReservado {
			return apierror.Conflict("El ajuste dejaría el stock por debajo de lo reservado (%d)", producto.StockReservado)
		}
		return s.inventario.DescontarStockTx(tx, producto.ID, quitar, nil, req.Motivo)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// Desactivar soft-deletes the product; it refuses while open incidents still
// reference it.
func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	producto, err := s.Obtener(ctx, id)
	if err != nil {
		return err
	}
	abiertos, err := s.incidentes.CountAbiertosByProducto(ctx, id)
	if err != nil {
		return err
	}
	if abiertos > 0 {
		return apierror.Conflict("No se puede desactivar %s: tiene %d incidente(s) abiertos", producto.Nombre, abiertos)
	}
	producto.Activo = false
	return s.productos.Update(ctx, producto)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	producto, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto.Activo {
		return producto, nil
	}
	producto.Activo = true
	if err := s.productos.Update(ctx, producto); err != nil {
		return nil, err
	}
	return producto, nil
}

func (s *productoService) Disponibilidad(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (int, error) {
	return s.inventario.DisponibleEnRango(ctx, id, desde, hasta)
}

func (s *productoService) Movimientos(ctx context.Context, id uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	if _, err := s.Obtener(ctx, id); err != nil {
		return nil, err
	}
	return s.inventario.Movimientos(ctx, id, limit)
}
