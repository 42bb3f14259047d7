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

// transicionesEntrega lista los estados alcanzables desde cada estado.
var transicionesEntrega = map[string][]string{
	model.EntregaPendiente:   {model.EntregaEnCamino, model.EntregaCancelada},
	model.EntregaEnCamino:    {model.EntregaEntregada, model.EntregaNoEntregada, model.EntregaCancelada},
	model.EntregaNoEntregada: {model.EntregaEnCamino, model.EntregaCancelada},
}

type EntregaService interface {
	Crear(ctx context.Context, req dto.CrearEntregaRequest) (*model.Entrega, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Entrega, error)
	Listar(ctx context.Context, f dto.EntregaFilter) ([]model.Entrega, int64, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*model.Entrega, error)
}

type entregaService struct {
	entregas   repository.EntregaRepository
	alquileres repository.AlquilerRepository
}

func NewEntregaService(entregas repository.EntregaRepository, alquileres repository.AlquilerRepository) EntregaService {
	return &entregaService{entregas: entregas, alquileres: alquileres}
}

func (s *entregaService) Crear(ctx context.Context, req dto.CrearEntregaRequest) (*model.Entrega, error) {
	alquilerID, err := uuid.Parse(req.AlquilerID)
	if err != nil {
		return nil, apierror.Validation("alquiler_id inválido")
	}
	alquiler, err := s.alquileres.FindByID(ctx, alquilerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Alquiler no encontrado")
	}
	if err != nil {
		return nil, err
	}
	if alquiler.Estado == model.AlquilerFinalizado || alquiler.Estado == model.AlquilerCancelado {
		return nil, apierror.InvalidTransition("alquiler", alquiler.Estado, "programar entrega")
	}

	fecha, err := time.Parse(time.RFC3339, req.FechaHoraEntrega)
	if err != nil {
		return nil, apierror.Validation("fecha_hora_entrega inválida: se espera RFC3339")
	}

	entrega := &model.Entrega{
		AlquilerID:       alquiler.ID,
		FechaHoraEntrega: fecha,
		Direccion:        req.Direccion,
		EstadoEntrega:    model.EntregaPendiente,
	}
	if req.ResponsableID != nil {
		rid, err := uuid.Parse(*req.ResponsableID)
		if err != nil {
			return nil, apierror.Validation("responsable_id inválido")
		}
		entrega.ResponsableID = &rid
	}
	if err := s.entregas.Create(ctx, entrega); err != nil {
		return nil, err
	}
	return entrega, nil
}

func (s *entregaService) Obtener(ctx context.Context, id uuid.UUID) (*model.Entrega, error) {
	e, err := s.entregas.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Entrega no encontrada")
	}
	return e, err
}

func (s *entregaService) Listar(ctx context.Context, f dto.EntregaFilter) ([]model.Entrega, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.entregas.List(ctx, f)
}

func (s *entregaService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*model.Entrega, error) {
	entrega, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	permitidos := transicionesEntrega[entrega.EstadoEntrega]
	valido := false
	for _, e := range permitidos {
		if e == estado {
			valido = true
			break
		}
	}
	if !valido {
		return nil, apierror.InvalidTransition("entrega", entrega.EstadoEntrega, estado)
	}

	entrega.EstadoEntrega = estado
	if estado == model.EntregaEntregada {
		ahora := time.Now()
		entrega.FechaHoraEntregaReal = &ahora
	}
	if err := s.entregas.Update(ctx, entrega); err != nil {
		return nil, err
	}
	return entrega, nil
}
