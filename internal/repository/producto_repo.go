package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, f dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error

	// ReservarStockTx increments stock_reservado only if enough free stock
	// remains. Returns apierror.InsufficientStock when the guard fails.
	ReservarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error)
	LiberarReservaTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error)
	ConsumirReservaTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error)
	DevolverStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error)
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error)

	// ReservadoEnRango sums committed quantities of orders whose rental window
	// overlaps [desde, hasta).
	ReservadoEnRango(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (int, error)

	DB() *gorm.DB
}

type productoRepository struct {
	db *gorm.DB
}

func NewProductoRepository(db *gorm.DB) ProductoRepository {
	return &productoRepository{db: db}
}

func (r *productoRepository) DB() *gorm.DB { return r.db }

func (r *productoRepository) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepository) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	if err := tx.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepository) List(ctx context.Context, f dto.ProductoFilter) ([]model.Producto, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if f.Categoria != "" {
		q = q.Where("categoria = ?", f.Categoria)
	}
	if f.Buscar != "" {
		q = q.Where("nombre ILIKE ?", "%"+f.Buscar+"%")
	}
	if f.Activo != nil {
		q = q.Where("activo = ?", *f.Activo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productos []model.Producto
	err := q.Order("nombre asc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepository) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepository) ReservarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock - stock_reservado >= ?", id, cantidad).
		Update("stock_reservado", gorm.Expr("stock_reservado + ?", cantidad))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByIDTx(tx, id)
}

func (r *productoRepository) LiberarReservaTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock_reservado", gorm.Expr("GREATEST(stock_reservado - ?, 0)", cantidad))
	if res.Error != nil {
		return nil, res.Error
	}
	return r.FindByIDTx(tx, id)
}

func (r *productoRepository) ConsumirReservaTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ? AND stock_reservado >= ?", id, cantidad, cantidad).
		Updates(map[string]interface{}{
			"stock":           gorm.Expr("stock - ?", cantidad),
			"stock_reservado": gorm.Expr("stock_reservado - ?", cantidad),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByIDTx(tx, id)
}

func (r *productoRepository) DevolverStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", cantidad))
	if res.Error != nil {
		return nil, res.Error
	}
	return r.FindByIDTx(tx, id)
}

func (r *productoRepository) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByIDTx(tx, id)
}

func (r *productoRepository) ReservadoEnRango(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&model.DetPedido{}).
		Select("COALESCE(SUM(det_pedidos.cantidad), 0)").
		Joins("JOIN pedidos ON pedidos.id = det_pedidos.pedido_id").
		Where("det_pedidos.producto_id = ?", id).
		Where("pedidos.estado IN ?", []string{model.PedidoPendiente, model.PedidoConfirmado}).
		Where("NOT (pedidos.fecha_hora_devolucion <= ? OR pedidos.fecha_hora_evento >= ?)", desde, hasta).
		Scan(&total).Error
	return total, err
}
