package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

type EntregaRepository interface {
	Create(ctx context.Context, e *model.Entrega) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Entrega, error)
	List(ctx context.Context, f dto.EntregaFilter) ([]model.Entrega, int64, error)
	Update(ctx context.Context, e *model.Entrega) error
	DB() *gorm.DB
}

type entregaRepository struct {
	db *gorm.DB
}

func NewEntregaRepository(db *gorm.DB) EntregaRepository {
	return &entregaRepository{db: db}
}

func (r *entregaRepository) DB() *gorm.DB { return r.db }

func (r *entregaRepository) Create(ctx context.Context, e *model.Entrega) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *entregaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Entrega, error) {
	var e model.Entrega
	err := r.db.WithContext(ctx).
		Preload("Alquiler.Cliente").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entregaRepository) List(ctx context.Context, f dto.EntregaFilter) ([]model.Entrega, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Entrega{})
	if f.Estado != "" {
		q = q.Where("estado_entrega = ?", f.Estado)
	}
	if f.AlquilerID != "" {
		q = q.Where("alquiler_id = ?", f.AlquilerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entregas []model.Entrega
	err := q.Preload("Alquiler.Cliente").
		Order("fecha_hora_entrega asc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&entregas).Error
	return entregas, total, err
}

func (r *entregaRepository) Update(ctx context.Context, e *model.Entrega) error {
	return r.db.WithContext(ctx).Save(e).Error
}
