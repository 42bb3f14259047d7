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

type IncidenteService interface {
	Crear(ctx context.Context, req dto.CrearIncidenteRequest) (*model.Incidente, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Incidente, error)
	Listar(ctx context.Context, f dto.IncidenteFilter) ([]model.Incidente, int64, error)
	Resolver(ctx context.Context, id uuid.UUID, req dto.ResolverIncidenteRequest) (*model.Incidente, error)
	Anular(ctx context.Context, id uuid.UUID) (*model.Incidente, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type incidenteService struct {
	incidentes repository.IncidenteRepository
	alquileres repository.AlquilerRepository
	pedidos    repository.PedidoRepository
	inventario InventarioService
}

func NewIncidenteService(
	incidentes repository.IncidenteRepository,
	alquileres repository.AlquilerRepository,
	pedidos repository.PedidoRepository,
	inventario InventarioService,
) IncidenteService {
	return &incidenteService{
		incidentes: incidentes,
		alquileres: alquileres,
		pedidos:    pedidos,
		inventario: inventario,
	}
}

// maxDisponible is the rented cantidad minus what other non-resolved
// incidents of the same line item already claim.
func (s *incidenteService) maxDisponible(ctx context.Context, det *model.DetAlquiler, excluir *uuid.UUID) (int, error) {
	otros, err := s.incidentes.ListByDetAlquiler(ctx, det.ID)
	if err != nil {
		return 0, err
	}
	usados := 0
	for _, inc := range otros {
		if excluir != nil && inc.ID == *excluir {
			continue
		}
		if inc.EstadoIncidente == model.IncidenteResuelto {
			continue
		}
		usados += inc.CantidadAfectada
	}
	disp := det.Cantidad - usados
	if disp < 0 {
		disp = 0
	}
	return disp, nil
}

func (s *incidenteService) Crear(ctx context.Context, req dto.CrearIncidenteRequest) (*model.Incidente, error) {
	detID, err := uuid.Parse(req.DetAlquilerID)
	if err != nil {
		return nil, apierror.Validation("det_alquiler_id inválido")
	}
	det, err := s.alquileres.FindDetByID(ctx, detID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Detalle de alquiler no encontrado")
		}
		return nil, err
	}

	maxDisp, err := s.maxDisponible(ctx, det, nil)
	if err != nil {
		return nil, err
	}
	if req.CantidadAfectada > maxDisp {
		return nil, apierror.Validation(
			"La cantidad afectada no puede superar %d. (Alquilado: %d, comprometido en otros incidentes: %d)",
			maxDisp, det.Cantidad, det.Cantidad-maxDisp)
	}

	incidente := &model.Incidente{
		DetAlquilerID:    det.ID,
		Descripcion:      req.Descripcion,
		EstadoIncidente:  model.IncidenteAbierto,
		TipoIncidente:    req.TipoIncidente,
		CantidadAfectada: req.CantidadAfectada,
		ResultadoFinal:   model.ResultadoSinAccion,
	}

	err = runTx(ctx, s.incidentes.DB(), func(tx *gorm.DB) error {
		if err := s.incidentes.CreateTx(tx, incidente); err != nil {
			return err
		}
		incidente.DetAlquiler = det
		return s.recalcularGarantiaTx(tx, det.AlquilerID)
	})
	if err != nil {
		return nil, err
	}
	return incidente, nil
}

func (s *incidenteService) Obtener(ctx context.Context, id uuid.UUID) (*model.Incidente, error) {
	i, err := s.incidentes.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Incidente no encontrado")
	}
	return i, err
}

func (s *incidenteService) Listar(ctx context.Context, f dto.IncidenteFilter) ([]model.Incidente, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.incidentes.List(ctx, f)
}

// Resolver cierra el incidente aplicando los efectos de stock del resultado:
// reintegrado devuelve las unidades afectadas, repuesto ingresa las unidades
// de reposición entregadas por el cliente.
func (s *incidenteService) Resolver(ctx context.Context, id uuid.UUID, req dto.ResolverIncidenteRequest) (*model.Incidente, error) {
	incidente, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if incidente.EstadoIncidente != model.IncidenteAbierto {
		return nil, apierror.InvalidTransition("incidente", incidente.EstadoIncidente, "resolver")
	}
	if incidente.TipoIncidente == model.IncidenteIrreparable && req.ResultadoFinal == model.ResultadoReintegrado {
		return nil, apierror.Validation("Un incidente irreparable no puede marcarse como 'reintegrado'")
	}
	if req.ResultadoFinal == model.ResultadoRepuesto && req.CantidadRepuesta <= 0 {
		return nil, apierror.Validation("Indique cantidad_repuesta mayor a 0 para 'repuesto'")
	}
	if req.CantidadRepuesta > incidente.CantidadAfectada {
		return nil, apierror.Validation("No puede reponerse más de lo afectado")
	}

	err = runTx(ctx, s.incidentes.DB(), func(tx *gorm.DB) error {
		ref := incidente.ID
		switch req.ResultadoFinal {
		case model.ResultadoReintegrado:
			if err := s.inventario.DevolverAStockTx(tx, incidente.DetAlquiler.ProductoID, incidente.CantidadAfectada, &ref, "reintegro por incidente"); err != nil {
				return err
			}
		case model.ResultadoRepuesto:
			if err := s.inventario.DevolverAStockTx(tx, incidente.DetAlquiler.ProductoID, req.CantidadRepuesta, &ref, "reposición por incidente"); err != nil {
				return err
			}
		}

		ahora := time.Now()
		incidente.EstadoIncidente = model.IncidenteResuelto
		incidente.ResultadoFinal = req.ResultadoFinal
		incidente.CantidadRepuesta = req.CantidadRepuesta
		incidente.FechaResolucion = &ahora
		if err := s.incidentes.UpdateTx(tx, incidente); err != nil {
			return err
		}
		return s.recalcularGarantiaTx(tx, incidente.DetAlquiler.AlquilerID)
	})
	if err != nil {
		return nil, err
	}
	return incidente, nil
}

func (s *incidenteService) Anular(ctx context.Context, id uuid.UUID) (*model.Incidente, error) {
	incidente, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if incidente.EstadoIncidente != model.IncidenteAbierto {
		return nil, apierror.InvalidTransition("incidente", incidente.EstadoIncidente, "anular")
	}

	err = runTx(ctx, s.incidentes.DB(), func(tx *gorm.DB) error {
		incidente.EstadoIncidente = model.IncidenteAnulado
		if err := s.incidentes.UpdateTx(tx, incidente); err != nil {
			return err
		}
		return s.recalcularGarantiaTx(tx, incidente.DetAlquiler.AlquilerID)
	})
	if err != nil {
		return nil, err
	}
	return incidente, nil
}

// Eliminar borra un incidente. Sólo los resueltos se pueden borrar: un
// reclamo abierto o anulado queda en el historial.
func (s *incidenteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	incidente, err := s.Obtener(ctx, id)
	if err != nil {
		return err
	}
	if incidente.EstadoIncidente != model.IncidenteResuelto {
		return apierror.Validation("No se puede eliminar un incidente que no está resuelto (estado actual '%s')", incidente.EstadoIncidente)
	}
	return runTx(ctx, s.incidentes.DB(), func(tx *gorm.DB) error {
		if err := s.incidentes.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.recalcularGarantiaTx(tx, incidente.DetAlquiler.AlquilerID)
	})
}

// recalcularGarantiaTx refleja el estado agregado de los incidentes sobre la
// garantía del pedido: abiertos pendiente, con costo descontada, sin costo
// devuelta. Runs synchronously inside the mutating transaction.
func (s *incidenteService) recalcularGarantiaTx(tx *gorm.DB, alquilerID uuid.UUID) error {
	alquiler, err := s.alquileres.FindByIDTx(tx, alquilerID)
	if err != nil {
		return err
	}
	if alquiler.PedidoID == nil {
		return nil
	}

	incidentes, err := s.incidentes.ListByAlquilerTx(tx, alquilerID)
	if err != nil {
		return err
	}

	hayAbiertos := false
	hayConCosto := false
	for _, inc := range incidentes {
		if inc.EstadoIncidente == model.IncidenteAbierto {
			hayAbiertos = true
		}
		if inc.ConCosto() {
			hayConCosto = true
		}
	}

	estado := model.GarantiaPedidoDevuelta
	switch {
	case hayAbiertos:
		estado = model.GarantiaPedidoPendiente
	case hayConCosto:
		estado = model.GarantiaPedidoDescontada
	}

	pedido, err := s.pedidos.FindByIDTx(tx, *alquiler.PedidoID)
	if err != nil {
		return err
	}
	if pedido.GarantiaEstado == estado {
		return nil
	}
	pedido.GarantiaEstado = estado
	return s.pedidos.UpdateTx(tx, pedido)
}
