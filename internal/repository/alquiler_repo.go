package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

type AlquilerRepository interface {
	CreateTx(tx *gorm.DB, a *model.Alquiler) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Alquiler, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Alquiler, error)
	FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Alquiler, error)
	List(ctx context.Context, f dto.AlquilerFilter) ([]model.Alquiler, int64, error)
	UpdateTx(tx *gorm.DB, a *model.Alquiler) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	FindDetByID(ctx context.Context, id uuid.UUID) (*model.DetAlquiler, error)
	DB() *gorm.DB
}

type alquilerRepository struct {
	db *gorm.DB
}

func NewAlquilerRepository(db *gorm.DB) AlquilerRepository {
	return &alquilerRepository{db: db}
}

func (r *alquilerRepository) DB() *gorm.DB { return r.db }

func (r *alquilerRepository) CreateTx(tx *gorm.DB, a *model.Alquiler) error {
	return tx.Create(a).Error
}

func (r *alquilerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Alquiler, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *alquilerRepository) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Alquiler, error) {
	var a model.Alquiler
	err := tx.Preload("Cliente").
		Preload("Pedido").
		Preload("Items.Producto").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alquilerRepository) FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Alquiler, error) {
	var a model.Alquiler
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		First(&a, "pedido_id = ?", pedidoID).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alquilerRepository) List(ctx context.Context, f dto.AlquilerFilter) ([]model.Alquiler, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Alquiler{})
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.ClienteID != "" {
		q = q.Where("cliente_id = ?", f.ClienteID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alquileres []model.Alquiler
	err := q.Preload("Cliente").
		Preload("Items.Producto").
		Order("creado_en desc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&alquileres).Error
	return alquileres, total, err
}

func (r *alquilerRepository) UpdateTx(tx *gorm.DB, a *model.Alquiler) error {
	return tx.Save(a).Error
}

func (r *alquilerRepository) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Alquiler{}, "id = ?", id).Error
}

func (r *alquilerRepository) FindDetByID(ctx context.Context, id uuid.UUID) (*model.DetAlquiler, error) {
	var d model.DetAlquiler
	err := r.db.WithContext(ctx).
		Preload("Producto").
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}
