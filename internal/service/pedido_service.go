package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/repository"
)

type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*model.Pedido, *model.Alquiler, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	Listar(ctx context.Context, f dto.PedidoFilter) ([]model.Pedido, int64, error)
	Confirmar(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	Cancelar(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
}

type pedidoService struct {
	pedidos    repository.PedidoRepository
	alquileres repository.AlquilerRepository
	clientes   repository.ClienteRepository
	productos  repository.ProductoRepository
	pagos      repository.PagoRepository
	cajas      repository.CajaRepository
	inventario InventarioService

	// garantiaPorcentaje applies when the request does not fix a monto.
	garantiaPorcentaje int
}

func NewPedidoService(
	pedidos repository.PedidoRepository,
	alquileres repository.AlquilerRepository,
	clientes repository.ClienteRepository,
	productos repository.ProductoRepository,
	pagos repository.PagoRepository,
	cajas repository.CajaRepository,
	inventario InventarioService,
	garantiaPorcentaje int,
) PedidoService {
	return &pedidoService{
		pedidos:            pedidos,
		alquileres:         alquileres,
		clientes:           clientes,
		productos:          productos,
		pagos:              pagos,
		cajas:              cajas,
		inventario:         inventario,
		garantiaPorcentaje: garantiaPorcentaje,
	}
}

// CalcularGarantia derives the default garantía from the rented items total.
func (s *pedidoService) calcularGarantia(totalItems decimal.Decimal) decimal.Decimal {
	pct := decimal.NewFromInt(int64(s.garantiaPorcentaje)).Div(decimal.NewFromInt(100))
	return totalItems.Mul(pct).Round(2)
}

// Crear takes in an order: reserves stock for every line item, creates the
// pedido with prices captured at order time, mirrors it into an alquiler and
// records the seña against the open caja. The whole intake is one transaction;
// a single line item without stock rolls everything back.
func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*model.Pedido, *model.Alquiler, error) {
	// Un evento ya en curso se puede registrar igual; la única exigencia es
	// que la devolución sea posterior al evento.
	if !req.FechaHoraDevolucion.After(req.FechaHoraEvento) {
		return nil, nil, apierror.Validation("la fecha de devolución debe ser posterior a la del evento")
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, nil, apierror.Validation("cliente_id inválido")
	}
	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierror.NotFound("Cliente no encontrado")
		}
		return nil, nil, err
	}
	if !cliente.Activo {
		return nil, nil, apierror.Validation("el cliente está inactivo")
	}

	var cajaAbierta *model.Caja
	if req.Senia.IsPositive() {
		cajaAbierta, err = s.cajas.FindAbierta(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierror.Conflict("Debe haber una caja abierta para registrar la seña")
		}
		if err != nil {
			return nil, nil, err
		}
		if req.MetodoPagoSenia == "" {
			return nil, nil, apierror.Validation("metodo_pago_senia es requerido cuando hay seña")
		}
	}

	var pedido *model.Pedido
	var alquiler *model.Alquiler

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		pedido = &model.Pedido{
			ClienteID:           cliente.ID,
			Estado:              model.PedidoPendiente,
			FechaHoraEvento:     req.FechaHoraEvento,
			FechaHoraDevolucion: req.FechaHoraDevolucion,
			TipoEntrega:         req.TipoEntrega,
			DireccionEvento:     req.DireccionEvento,
			ReferenciaEntrega:   req.ReferenciaEntrega,
			CostoFlete:          req.CostoFlete,
			Senia:               req.Senia,
			FormaPago:           req.FormaPago,
			GarantiaTipo:        req.GarantiaTipo,
			GarantiaEstado:      model.GarantiaPedidoPendiente,
		}
		if pedido.TipoEntrega == "" {
			pedido.TipoEntrega = model.EntregaRetiro
		}
		if pedido.GarantiaTipo == "" {
			pedido.GarantiaTipo = "dni"
		}

		totalItems := decimal.Zero
		for _, item := range req.Items {
			productoID, perr := uuid.Parse(item.ProductoID)
			if perr != nil {
				return apierror.Validation("producto_id inválido: %s", item.ProductoID)
			}
			producto, perr := s.productos.FindByIDTx(tx, productoID)
			if perr != nil {
				if errors.Is(perr, gorm.ErrRecordNotFound) {
					return apierror.NotFound("Producto %s no encontrado", item.ProductoID)
				}
				return perr
			}
			if !producto.Activo {
				return apierror.Validation("el producto %s está inactivo", producto.Nombre)
			}
			// Rechazar antes de reservar nada: la toma es todo o nada y el
			// chequeo temprano evita reservas a medias. La UPDATE con guarda
			// de ReservarTx sigue cubriendo la carrera entre pedidos.
			if producto.StockDisponible() < item.Cantidad {
				return apierror.InsufficientStock(producto.Nombre, producto.StockDisponible())
			}

			precio := producto.Precio
			if item.PrecioUnit != nil {
				if item.PrecioUnit.IsNegative() {
					return apierror.Validation("el precio unitario no puede ser negativo")
				}
				precio = *item.PrecioUnit
			}

			pedido.Detalles = append(pedido.Detalles, model.DetPedido{
				ProductoID: producto.ID,
				Cantidad:   item.Cantidad,
				PrecioUnit: precio,
			})
			totalItems = totalItems.Add(precio.Mul(decimal.NewFromInt(int64(item.Cantidad))))
		}

		pedido.Total = totalItems.Add(pedido.CostoFlete)
		pedido.GarantiaMonto = req.GarantiaMonto
		if pedido.GarantiaMonto.IsZero() {
			pedido.GarantiaMonto = s.calcularGarantia(totalItems)
		}

		if err := s.pedidos.CreateTx(tx, pedido); err != nil {
			return err
		}

		// Reserve after the pedido exists so the movimiento can reference it.
		for _, det := range pedido.Detalles {
			ref := pedido.ID
			if err := s.inventario.ReservarTx(tx, det.ProductoID, det.Cantidad, &ref, "reserva por pedido"); err != nil {
				return err
			}
		}

		garantia := pedido.GarantiaMonto
		alquiler = &model.Alquiler{
			PedidoID:       &pedido.ID,
			ClienteID:      &cliente.ID,
			ClienteNombre:  cliente.NombreCompleto(),
			Estado:         model.AlquilerPendiente,
			GarantiaEstado: model.GarantiaAlquilerPendiente,
			GarantiaMonto:  &garantia,
		}
		for _, det := range pedido.Detalles {
			alquiler.Items = append(alquiler.Items, model.DetAlquiler{
				ProductoID: det.ProductoID,
				Cantidad:   det.Cantidad,
				PrecioUnit: det.PrecioUnit,
			})
		}
		if err := s.alquileres.CreateTx(tx, alquiler); err != nil {
			return err
		}

		if req.Senia.IsPositive() {
			pago, perr := model.NewPago(model.NewPagoParams{
				TipoPago:   model.PagoSenia,
				Monto:      req.Senia,
				MetodoPago: req.MetodoPagoSenia,
				Notas:      "Seña de pedido",
				Pedido:     pedido,
				Caja:       cajaAbierta,
			})
			if perr != nil {
				return perr
			}
			if err := s.pagos.CreateTx(tx, pago); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return pedido, alquiler, nil
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Pedido no encontrado")
	}
	return p, err
}

func (s *pedidoService) Listar(ctx context.Context, f dto.PedidoFilter) ([]model.Pedido, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.pedidos.List(ctx, f)
}

func (s *pedidoService) Confirmar(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	pedido, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if pedido.Estado != model.PedidoPendiente {
		return nil, apierror.InvalidTransition("pedido", pedido.Estado, "confirmar")
	}

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		pedido.Estado = model.PedidoConfirmado
		if err := s.pedidos.UpdateTx(tx, pedido); err != nil {
			return err
		}
		if pedido.Alquiler != nil {
			pedido.Alquiler.Estado = model.AlquilerConfirmado
			return s.alquileres.UpdateTx(tx, pedido.Alquiler)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}

// Cancelar releases every reservation the order holds and cancels its mirror.
// Cancelling an already-cancelled order is a no-op.
func (s *pedidoService) Cancelar(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	pedido, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if pedido.Estado == model.PedidoCancelado {
		return pedido, nil
	}
	if pedido.Estado == model.PedidoEntregado {
		return nil, apierror.InvalidTransition("pedido", pedido.Estado, "cancelar")
	}

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		for _, det := range pedido.Detalles {
			ref := pedido.ID
			if err := s.inventario.LiberarReservaTx(tx, det.ProductoID, det.Cantidad, &ref, "cancelación de pedido"); err != nil {
				return err
			}
		}
		pedido.Estado = model.PedidoCancelado
		if err := s.pedidos.UpdateTx(tx, pedido); err != nil {
			return err
		}
		if pedido.Alquiler != nil && pedido.Alquiler.Estado != model.AlquilerCancelado {
			pedido.Alquiler.Estado = model.AlquilerCancelado
			return s.alquileres.UpdateTx(tx, pedido.Alquiler)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}
