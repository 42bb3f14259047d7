package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/repository"
)

type PagoService interface {
	Crear(ctx context.Context, req dto.CrearPagoRequest) (*model.Pago, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	Listar(ctx context.Context, f dto.PagoFilter) ([]model.Pago, int64, error)
}

type pagoService struct {
	pagos      repository.PagoRepository
	pedidos    repository.PedidoRepository
	alquileres repository.AlquilerRepository
	cajas      repository.CajaRepository
}

func NewPagoService(
	pagos repository.PagoRepository,
	pedidos repository.PedidoRepository,
	alquileres repository.AlquilerRepository,
	cajas repository.CajaRepository,
) PagoService {
	return &pagoService{pagos: pagos, pedidos: pedidos, alquileres: alquileres, cajas: cajas}
}

// Crear registra un movimiento manual. The open caja is resolved here, once,
// and handed to the constructor; without an open session the pago is created
// unassigned and stays out of every arqueo.
func (s *pagoService) Crear(ctx context.Context, req dto.CrearPagoRequest) (*model.Pago, error) {
	params := model.NewPagoParams{
		TipoPago:        req.TipoPago,
		Monto:           req.Monto,
		MetodoPago:      req.MetodoPago,
		ComprobantePago: req.ComprobantePago,
		Notas:           req.Notas,
	}

	if req.PedidoID != nil {
		pid, err := uuid.Parse(*req.PedidoID)
		if err != nil {
			return nil, apierror.Validation("pedido_id inválido")
		}
		pedido, err := s.pedidos.FindByID(ctx, pid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		if err != nil {
			return nil, err
		}
		params.Pedido = pedido
	}

	if req.AlquilerID != nil {
		aid, err := uuid.Parse(*req.AlquilerID)
		if err != nil {
			return nil, apierror.Validation("alquiler_id inválido")
		}
		alquiler, err := s.alquileres.FindByID(ctx, aid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Alquiler no encontrado")
		}
		if err != nil {
			return nil, err
		}
		params.Alquiler = alquiler
	}

	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.Validation("cliente_id inválido")
		}
		params.ClienteID = &cid
	}

	caja, err := s.cajas.FindAbierta(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	params.Caja = caja

	pago, err := model.NewPago(params)
	if err != nil {
		return nil, err
	}
	if err := s.pagos.Create(ctx, pago); err != nil {
		return nil, err
	}
	return pago, nil
}

func (s *pagoService) Obtener(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	p, err := s.pagos.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Pago no encontrado")
	}
	return p, err
}

func (s *pagoService) Listar(ctx context.Context, f dto.PagoFilter) ([]model.Pago, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.pagos.List(ctx, f)
}
