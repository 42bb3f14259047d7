package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

type IncidenteRepository interface {
	Create(ctx context.Context, i *model.Incidente) error
	CreateTx(tx *gorm.DB, i *model.Incidente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Incidente, error)
	List(ctx context.Context, f dto.IncidenteFilter) ([]model.Incidente, int64, error)
	ListByDetAlquiler(ctx context.Context, detAlquilerID uuid.UUID) ([]model.Incidente, error)
	ListByAlquiler(ctx context.Context, alquilerID uuid.UUID) ([]model.Incidente, error)
	ListByAlquilerTx(tx *gorm.DB, alquilerID uuid.UUID) ([]model.Incidente, error)
	Update(ctx context.Context, i *model.Incidente) error
	UpdateTx(tx *gorm.DB, i *model.Incidente) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	CountAbiertosByProducto(ctx context.Context, productoID uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type incidenteRepository struct {
	db *gorm.DB
}

func NewIncidenteRepository(db *gorm.DB) IncidenteRepository {
	return &incidenteRepository{db: db}
}

func (r *incidenteRepository) DB() *gorm.DB { return r.db }

func (r *incidenteRepository) Create(ctx context.Context, i *model.Incidente) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *incidenteRepository) CreateTx(tx *gorm.DB, i *model.Incidente) error {
	return tx.Create(i).Error
}

func (r *incidenteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Incidente, error) {
	var i model.Incidente
	err := r.db.WithContext(ctx).
		Preload("DetAlquiler.Producto").
		First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *incidenteRepository) List(ctx context.Context, f dto.IncidenteFilter) ([]model.Incidente, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Incidente{})
	if f.Estado != "" {
		q = q.Where("estado_incidente = ?", f.Estado)
	}
	if f.AlquilerID != "" {
		q = q.Joins("JOIN det_alquileres ON det_alquileres.id = incidentes.det_alquiler_id").
			Where("det_alquileres.alquiler_id = ?", f.AlquilerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var incidentes []model.Incidente
	err := q.Preload("DetAlquiler.Producto").
		Order("fecha_incidente desc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&incidentes).Error
	return incidentes, total, err
}

func (r *incidenteRepository) ListByDetAlquiler(ctx context.Context, detAlquilerID uuid.UUID) ([]model.Incidente, error) {
	var incidentes []model.Incidente
	err := r.db.WithContext(ctx).
		Where("det_alquiler_id = ?", detAlquilerID).
		Find(&incidentes).Error
	return incidentes, err
}

func (r *incidenteRepository) ListByAlquiler(ctx context.Context, alquilerID uuid.UUID) ([]model.Incidente, error) {
	return r.ListByAlquilerTx(r.db.WithContext(ctx), alquilerID)
}

func (r *incidenteRepository) ListByAlquilerTx(tx *gorm.DB, alquilerID uuid.UUID) ([]model.Incidente, error) {
	var incidentes []model.Incidente
	err := tx.Preload("DetAlquiler.Producto").
		Joins("JOIN det_alquileres ON det_alquileres.id = incidentes.det_alquiler_id").
		Where("det_alquileres.alquiler_id = ?", alquilerID).
		Find(&incidentes).Error
	return incidentes, err
}

func (r *incidenteRepository) Update(ctx context.Context, i *model.Incidente) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *incidenteRepository) UpdateTx(tx *gorm.DB, i *model.Incidente) error {
	return tx.Save(i).Error
}

func (r *incidenteRepository) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Incidente{}, "id = ?", id).Error
}

func (r *incidenteRepository) CountAbiertosByProducto(ctx context.Context, productoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Incidente{}).
		Joins("JOIN det_alquileres ON det_alquileres.id = incidentes.det_alquiler_id").
		Where("det_alquileres.producto_id = ?", productoID).
		Where("incidentes.estado_incidente = ?", model.IncidenteAbierto).
		Count(&count).Error
	return count, err
}
