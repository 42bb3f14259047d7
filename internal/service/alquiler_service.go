package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/repository"
)

type AlquilerService interface {
	Obtener(ctx context.Context, id uuid.UUID) (*model.Alquiler, error)
	Listar(ctx context.Context, f dto.AlquilerFilter) ([]model.Alquiler, int64, error)
	// Entregar hands the goods over: reserved units become physically out.
	Entregar(ctx context.Context, id uuid.UUID) (*model.Alquiler, error)
	// Finalizar closes the rental and settles the garantía against the
	// accumulated incident cost.
	Finalizar(ctx context.Context, id uuid.UUID, metodoPago string) (*dto.LiquidacionResponse, error)
	Resumen(ctx context.Context, id uuid.UUID) (*model.Alquiler, []model.Incidente, decimal.Decimal, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type alquilerService struct {
	alquileres repository.AlquilerRepository
	pedidos    repository.PedidoRepository
	incidentes repository.IncidenteRepository
	pagos      repository.PagoRepository
	cajas      repository.CajaRepository
	inventario InventarioService
}

func NewAlquilerService(
	alquileres repository.AlquilerRepository,
	pedidos repository.PedidoRepository,
	incidentes repository.IncidenteRepository,
	pagos repository.PagoRepository,
	cajas repository.CajaRepository,
	inventario InventarioService,
) AlquilerService {
	return &alquilerService{
		alquileres: alquileres,
		pedidos:    pedidos,
		incidentes: incidentes,
		pagos:      pagos,
		cajas:      cajas,
		inventario: inventario,
	}
}

func (s *alquilerService) Obtener(ctx context.Context, id uuid.UUID) (*model.Alquiler, error) {
	a, err := s.alquileres.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Alquiler no encontrado")
	}
	return a, err
}

func (s *alquilerService) Listar(ctx context.Context, f dto.AlquilerFilter) ([]model.Alquiler, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.alquileres.List(ctx, f)
}

func (s *alquilerService) Entregar(ctx context.Context, id uuid.UUID) (*model.Alquiler, error) {
	alquiler, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if alquiler.Estado != model.AlquilerPendiente && alquiler.Estado != model.AlquilerConfirmado {
		return nil, apierror.InvalidTransition("alquiler", alquiler.Estado, "entregar")
	}

	err = runTx(ctx, s.alquileres.DB(), func(tx *gorm.DB) error {
		for _, item := range alquiler.Items {
			ref := alquiler.ID
			if err := s.inventario.ConsumirReservaTx(tx, item.ProductoID, item.Cantidad, &ref, "entrega de alquiler"); err != nil {
				return err
			}
		}
		alquiler.Estado = model.AlquilerEntregado
		if err := s.alquileres.UpdateTx(tx, alquiler); err != nil {
			return err
		}
		if alquiler.PedidoID != nil {
			pedido, perr := s.pedidos.FindByIDTx(tx, *alquiler.PedidoID)
			if perr != nil {
				return perr
			}
			pedido.Estado = model.PedidoEntregado
			return s.pedidos.UpdateTx(tx, pedido)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alquiler, nil
}

// costoIncidentes prices every resolved-with-replacement incident at the line
// item's precio_unit times the replaced (or affected) quantity.
func costoIncidentes(incidentes []model.Incidente) decimal.Decimal {
	total := decimal.Zero
	for _, inc := range incidentes {
		if !inc.ConCosto() || inc.DetAlquiler == nil {
			continue
		}
		cantidad := decimal.NewFromInt(int64(inc.CantidadACobrar()))
		total = total.Add(inc.DetAlquiler.PrecioUnit.Mul(cantidad))
	}
	return total
}

func hayAbiertos(incidentes []model.Incidente) bool {
	for _, inc := range incidentes {
		if inc.EstadoIncidente == model.IncidenteAbierto {
			return true
		}
	}
	return false
}

// Finalizar returns the goods to stock and settles the garantía:
//
//   - open incidents pending: the rental stays open with garantía pendiente
//     and no money moves until every incident is resolved or voided;
//   - garantía <= 0: nothing to move, estado aplicada when damage exists,
//     devuelta otherwise;
//   - no damage: the full garantía goes back to the client (egreso);
//   - damage below the garantía: the covered part is kept as income and the
//     remainder returned;
//   - damage at or above the garantía: the whole garantía is kept, the excess
//     is not collected here.
func (s *alquilerService) Finalizar(ctx context.Context, id uuid.UUID, metodoPago string) (*dto.LiquidacionResponse, error) {
	alquiler, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if alquiler.PedidoID == nil {
		return nil, apierror.Validation("El alquiler no está vinculado a un pedido")
	}
	if !alquiler.PuedeFinalizar() {
		return nil, apierror.InvalidTransition("alquiler", alquiler.Estado, "finalizar")
	}
	if metodoPago == "" {
		metodoPago = model.MetodoEfectivo
	}

	incidentes, err := s.incidentes.ListByAlquiler(ctx, id)
	if err != nil {
		return nil, err
	}

	if hayAbiertos(incidentes) {
		err = runTx(ctx, s.alquileres.DB(), func(tx *gorm.DB) error {
			alquiler.GarantiaEstado = model.GarantiaAlquilerPendiente
			if alquiler.Estado != model.AlquilerEntregado {
				alquiler.Estado = model.AlquilerEntregado
			}
			if err := s.alquileres.UpdateTx(tx, alquiler); err != nil {
				return err
			}
			return s.marcarGarantiaPedidoTx(tx, alquiler, model.GarantiaPedidoPendiente, "incidentes abiertos")
		})
		if err != nil {
			return nil, err
		}
		return &dto.LiquidacionResponse{
			AlquilerID:     alquiler.ID.String(),
			GarantiaEstado: model.GarantiaAlquilerPendiente,
			Estado:         alquiler.Estado,
		}, nil
	}

	garantia := decimal.Zero
	if alquiler.GarantiaMonto != nil {
		garantia = *alquiler.GarantiaMonto
	}
	costo := costoIncidentes(incidentes)

	// Los pagos se asignan a la caja abierta si hay una; sin sesión abierta
	// quedan sin caja y no entran en ningún arqueo.
	var cajaAbierta *model.Caja
	if garantia.IsPositive() {
		cajaAbierta, err = s.cajas.FindAbierta(ctx)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	liq := &dto.LiquidacionResponse{
		AlquilerID:      alquiler.ID.String(),
		GarantiaTotal:   garantia,
		CostoIncidentes: costo,
		MontoAplicado:   decimal.Zero,
		MontoDevuelto:   decimal.Zero,
	}

	err = runTx(ctx, s.alquileres.DB(), func(tx *gorm.DB) error {
		// Lo entregado vuelve al inventario, neto de lo repuesto/perdido.
		if alquiler.Estado == model.AlquilerEntregado {
			if err := s.devolverInventarioTx(tx, alquiler, incidentes); err != nil {
				return err
			}
		}

		crearPago := func(tipo string, monto decimal.Decimal, notas string) error {
			pago, perr := model.NewPago(model.NewPagoParams{
				TipoPago:   tipo,
				Monto:      monto,
				MetodoPago: metodoPago,
				Notas:      notas,
				Alquiler:   alquiler,
				Caja:       cajaAbierta,
			})
			if perr != nil {
				return perr
			}
			return s.pagos.CreateTx(tx, pago)
		}

		switch {
		case !garantia.IsPositive():
			if costo.IsPositive() {
				liq.GarantiaEstado = model.GarantiaAlquilerAplicada
			} else {
				liq.GarantiaEstado = model.GarantiaAlquilerDevuelta
			}

		case !costo.IsPositive():
			if err := crearPago(model.PagoDevolucionGarantia, garantia, "Devolución de garantía sin incidentes"); err != nil {
				return err
			}
			liq.MontoDevuelto = garantia
			liq.GarantiaEstado = model.GarantiaAlquilerDevuelta

		case costo.LessThan(garantia):
			if err := crearPago(model.PagoAplicacionGarantia, costo, "Garantía aplicada a incidentes"); err != nil {
				return err
			}
			resto := garantia.Sub(costo)
			if err := crearPago(model.PagoDevolucionGarantia, resto, "Devolución parcial de garantía"); err != nil {
				return err
			}
			liq.MontoAplicado = costo
			liq.MontoDevuelto = resto
			liq.GarantiaEstado = model.GarantiaAlquilerAplicada

		default: // costo >= garantia
			if err := crearPago(model.PagoAplicacionGarantia, garantia, "Garantía aplicada en su totalidad"); err != nil {
				return err
			}
			liq.MontoAplicado = garantia
			liq.GarantiaEstado = model.GarantiaAlquilerAplicada
		}

		ahora := time.Now()
		alquiler.Estado = model.AlquilerFinalizado
		alquiler.GarantiaEstado = liq.GarantiaEstado
		alquiler.FinalizadoEn = &ahora
		if err := s.alquileres.UpdateTx(tx, alquiler); err != nil {
			return err
		}

		estadoPedido := model.GarantiaPedidoDevuelta
		motivo := "garantía devuelta al finalizar"
		if liq.GarantiaEstado == model.GarantiaAlquilerAplicada {
			estadoPedido = model.GarantiaPedidoDescontada
			motivo = "garantía aplicada a incidentes"
		}
		return s.marcarGarantiaPedidoTx(tx, alquiler, estadoPedido, motivo)
	})
	if err != nil {
		return nil, err
	}

	liq.Estado = alquiler.Estado
	return liq, nil
}

// devolverInventarioTx returns each delivered item to stock. Units covered by
// a resolved repuesto/reintegrado incident are excluded: the replacements (or
// the recovered units) already re-entered stock when the incident was
// resolved, and the broken originals never come back.
func (s *alquilerService) devolverInventarioTx(tx *gorm.DB, alquiler *model.Alquiler, incidentes []model.Incidente) error {
	yaResueltas := make(map[uuid.UUID]int)
	for _, inc := range incidentes {
		if inc.EstadoIncidente != model.IncidenteResuelto || inc.DetAlquiler == nil {
			continue
		}
		switch inc.ResultadoFinal {
		case model.ResultadoRepuesto, model.ResultadoReintegrado:
			yaResueltas[inc.DetAlquiler.ProductoID] += inc.CantidadAfectada
		}
	}

	for _, item := range alquiler.Items {
		descontar := yaResueltas[item.ProductoID]
		if descontar > item.Cantidad {
			descontar = item.Cantidad
		}
		yaResueltas[item.ProductoID] -= descontar
		devolver := item.Cantidad - descontar
		if devolver <= 0 {
			continue
		}
		ref := alquiler.ID
		if err := s.inventario.DevolverAStockTx(tx, item.ProductoID, devolver, &ref, "devolución al finalizar alquiler"); err != nil {
			return err
		}
	}
	return nil
}

func (s *alquilerService) marcarGarantiaPedidoTx(tx *gorm.DB, alquiler *model.Alquiler, estado, motivo string) error {
	if alquiler.PedidoID == nil {
		return nil
	}
	pedido, err := s.pedidos.FindByIDTx(tx, *alquiler.PedidoID)
	if err != nil {
		return err
	}
	pedido.GarantiaEstado = estado
	pedido.GarantiaMotivo = motivo
	return s.pedidos.UpdateTx(tx, pedido)
}

// Resumen aggregates the rental, its incidents and the projected settlement
// without mutating anything.
func (s *alquilerService) Resumen(ctx context.Context, id uuid.UUID) (*model.Alquiler, []model.Incidente, decimal.Decimal, error) {
	alquiler, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	incidentes, err := s.incidentes.ListByAlquiler(ctx, id)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	return alquiler, incidentes, costoIncidentes(incidentes), nil
}

// Eliminar refuses while incidents reference the rental.
func (s *alquilerService) Eliminar(ctx context.Context, id uuid.UUID) error {
	alquiler, err := s.Obtener(ctx, id)
	if err != nil {
		return err
	}
	incidentes, err := s.incidentes.ListByAlquiler(ctx, id)
	if err != nil {
		return err
	}
	if len(incidentes) > 0 {
		return apierror.Conflict("No se puede eliminar el alquiler: tiene %d incidente(s) asociados", len(incidentes))
	}
	return runTx(ctx, s.alquileres.DB(), func(tx *gorm.DB) error {
		return s.alquileres.DeleteTx(tx, alquiler.ID)
	})
}
