package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

type PedidoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, f dto.PedidoFilter) ([]model.Pedido, int64, error)
	UpdateTx(tx *gorm.DB, p *model.Pedido) error
	DB() *gorm.DB
}

type pedidoRepository struct {
	db *gorm.DB
}

func NewPedidoRepository(db *gorm.DB) PedidoRepository {
	return &pedidoRepository{db: db}
}

func (r *pedidoRepository) DB() *gorm.DB { return r.db }

func (r *pedidoRepository) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles.Producto").
		Preload("Alquiler").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepository) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Preload("Cliente").
		Preload("Detalles.Producto").
		Preload("Alquiler").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepository) List(ctx context.Context, f dto.PedidoFilter) ([]model.Pedido, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Pedido{})
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

	var pedidos []model.Pedido
	err := q.Preload("Cliente").
		Preload("Detalles.Producto").
		Order("creado_en desc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepository) UpdateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Save(p).Error
}
