package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// FindAbierta returns the single open session, or gorm.ErrRecordNotFound.
	FindAbierta(ctx context.Context) (*model.Caja, error)
	List(ctx context.Context, f dto.CajaFilter) ([]model.Caja, int64, error)
	Update(ctx context.Context, c *model.Caja) error
	DB() *gorm.DB
}

type cajaRepository struct {
	db *gorm.DB
}

func NewCajaRepository(db *gorm.DB) CajaRepository {
	return &cajaRepository{db: db}
}

func (r *cajaRepository) DB() *gorm.DB { return r.db }

func (r *cajaRepository) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepository) FindAbierta(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.CajaAbierta).
		Order("fecha_apertura desc").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepository) List(ctx context.Context, f dto.CajaFilter) ([]model.Caja, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Caja{})
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cajas []model.Caja
	err := q.Order("fecha_apertura desc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&cajas).Error
	return cajas, total, err
}

func (r *cajaRepository) Update(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Save(c).Error
}
