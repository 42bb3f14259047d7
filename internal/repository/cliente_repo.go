package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByDNI(ctx context.Context, dni string) (*model.Cliente, error)
	List(ctx context.Context, f dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	DB() *gorm.DB
}

type clienteRepository struct {
	db *gorm.DB
}

func NewClienteRepository(db *gorm.DB) ClienteRepository {
	return &clienteRepository{db: db}
}

func (r *clienteRepository) DB() *gorm.DB { return r.db }

func (r *clienteRepository) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepository) FindByDNI(ctx context.Context, dni string) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, "dni = ?", dni).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepository) List(ctx context.Context, f dto.ClienteFilter) ([]model.Cliente, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	if f.Buscar != "" {
		like := "%" + f.Buscar + "%"
		q = q.Where("nombre ILIKE ? OR apellido ILIKE ? OR dni ILIKE ?", like, like, like)
	}
	if f.Activo != nil {
		q = q.Where("activo = ?", *f.Activo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clientes []model.Cliente
	err := q.Order("apellido asc, nombre asc").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepository) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}
