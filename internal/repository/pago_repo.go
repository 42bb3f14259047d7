package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

type PagoRepository interface {
	Create(ctx context.Context, p *model.Pago) error
	CreateTx(tx *gorm.DB, p *model.Pago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	List(ctx context.Context, f dto.PagoFilter) ([]model.Pago, int64, error)
	ListByCaja(ctx context.Context, cajaID uuid.UUID) ([]model.Pago, error)
	// SumByCaja totals pagos of one sentido and metodo within a caja session.
	SumByCaja(ctx context.Context, cajaID uuid.UUID, sentido, metodo string) (decimal.Decimal, error)
	DB() *gorm.DB
}

type pagoRepository struct {
	db *gorm.DB
}

func NewPagoRepository(db *gorm.DB) PagoRepository {
	return &pagoRepository{db: db}
}

func (r *pagoRepository) DB() *gorm.DB { return r.db }

func (r *pagoRepository) Create(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepository) CreateTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *pagoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pagoRepository) List(ctx context.Context, f dto.PagoFilter) ([]model.Pago, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Pago{})
	if f.TipoPago != "" {
		q = q.Where("tipo_pago = ?", f.TipoPago)
	}
	if f.Sentido != "" {
		q = q.Where("sentido = ?", f.Sentido)
	}
	if f.MetodoPago != "" {
		q = q.Where("metodo_pago = ?", f.MetodoPago)
	}
	if f.CajaID != "" {
		q = q.Where("caja_id = ?", f.CajaID)
	}
	if f.PedidoID != "" {
		q = q.Where("pedido_id = ?", f.PedidoID)
	}
	if f.AlquilerID != "" {
		q = q.Where("alquiler_id = ?", f.AlquilerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pagos []model.Pago
	err := q.Preload("Cliente").
		Order("fecha_pago desc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&pagos).Error
	return pagos, total, err
}

func (r *pagoRepository) ListByCaja(ctx context.Context, cajaID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("caja_id = ?", cajaID).
		Order("fecha_pago asc").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepository) SumByCaja(ctx context.Context, cajaID uuid.UUID, sentido, metodo string) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.Pago{}).
		Select("SUM(monto)").
		Where("caja_id = ? AND sentido = ? AND metodo_pago = ?", cajaID, sentido, metodo).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}
