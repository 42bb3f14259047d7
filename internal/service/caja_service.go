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

// ResumenCaja carries the live per-method balances of a session.
type ResumenCaja struct {
	Caja                  *model.Caja
	IngresosEfectivo      decimal.Decimal
	IngresosTransferencia decimal.Decimal
	EgresosEfectivo       decimal.Decimal
	EgresosTransferencia  decimal.Decimal
	TeoricoEfectivo       decimal.Decimal
	TeoricoTransferencia  decimal.Decimal
	CantidadPagos         int
}

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*model.Caja, error)
	Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*model.Caja, error)
	Abierta(ctx context.Context) (*model.Caja, error)
	Resumen(ctx context.Context, id uuid.UUID) (*ResumenCaja, error)
	Historial(ctx context.Context, f dto.CajaFilter) ([]model.Caja, int64, error)
}

type cajaService struct {
	cajas repository.CajaRepository
	pagos repository.PagoRepository
}

func NewCajaService(cajas repository.CajaRepository, pagos repository.PagoRepository) CajaService {
	return &cajaService{cajas: cajas, pagos: pagos}
}

// Abrir opens a till session. Only one session can be open at a time.
func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*model.Caja, error) {
	if _, err := s.cajas.FindAbierta(ctx); err == nil {
		return nil, apierror.Conflict("Ya existe una caja abierta")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	caja := &model.Caja{
		UsuarioAperturaID:         usuarioID,
		FechaApertura:             time.Now(),
		Estado:                    model.CajaAbierta,
		MontoInicialEfectivo:      req.MontoInicialEfectivo,
		MontoInicialTransferencia: req.MontoInicialTransferencia,
		NotasApertura:             req.NotasApertura,
	}
	if err := s.cajas.Create(ctx, caja); err != nil {
		return nil, err
	}
	return caja, nil
}

// teoricos computes the expected closing balance per payment method.
func (s *cajaService) teoricos(ctx context.Context, caja *model.Caja) (efectivo, transferencia decimal.Decimal, err error) {
	type key struct{ sentido, metodo string }
	sumas := make(map[key]decimal.Decimal, 4)
	for _, k := range []key{
		{model.SentidoIngreso, model.MetodoEfectivo},
		{model.SentidoIngreso, model.MetodoTransferencia},
		{model.SentidoEgreso, model.MetodoEfectivo},
		{model.SentidoEgreso, model.MetodoTransferencia},
	} {
		sumas[k], err = s.pagos.SumByCaja(ctx, caja.ID, k.sentido, k.metodo)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}

	efectivo = caja.MontoInicialEfectivo.
		Add(sumas[key{model.SentidoIngreso, model.MetodoEfectivo}]).
		Sub(sumas[key{model.SentidoEgreso, model.MetodoEfectivo}])
	transferencia = caja.MontoInicialTransferencia.
		Add(sumas[key{model.SentidoIngreso, model.MetodoTransferencia}]).
		Sub(sumas[key{model.SentidoEgreso, model.MetodoTransferencia}])
	return efectivo, transferencia, nil
}

// Cerrar closes the open session, recording declared balances and the
// variance against the theoretical ones.
func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*model.Caja, error) {
	caja, err := s.cajas.FindAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Conflict("No hay una caja abierta para cerrar")
	}
	if err != nil {
		return nil, err
	}

	teoricoEf, teoricoTr, err := s.teoricos(ctx, caja)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	difEf := req.MontoFinalEfectivo.Sub(teoricoEf)
	difTr := req.MontoFinalTransferencia.Sub(teoricoTr)

	caja.Estado = model.CajaCerrada
	caja.UsuarioCierreID = &usuarioID
	caja.FechaCierre = &ahora
	caja.MontoFinalEfectivo = &req.MontoFinalEfectivo
	caja.MontoFinalTransferencia = &req.MontoFinalTransferencia
	caja.DiferenciaEfectivo = &difEf
	caja.DiferenciaTransferencia = &difTr
	caja.NotasCierre = req.NotasCierre

	if err := s.cajas.Update(ctx, caja); err != nil {
		return nil, err
	}
	return caja, nil
}

func (s *cajaService) Abierta(ctx context.Context) (*model.Caja, error) {
	caja, err := s.cajas.FindAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("No hay una caja abierta")
	}
	return caja, err
}

func (s *cajaService) Resumen(ctx context.Context, id uuid.UUID) (*ResumenCaja, error) {
	caja, err := s.cajas.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Caja no encontrada")
	}
	if err != nil {
		return nil, err
	}

	pagos, err := s.pagos.ListByCaja(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &ResumenCaja{
		Caja:                  caja,
		IngresosEfectivo:      decimal.Zero,
		IngresosTransferencia: decimal.Zero,
		EgresosEfectivo:       decimal.Zero,
		EgresosTransferencia:  decimal.Zero,
		CantidadPagos:         len(pagos),
	}
	for _, p := range pagos {
		switch {
		case p.Sentido == model.SentidoIngreso && p.MetodoPago == model.MetodoEfectivo:
			res.IngresosEfectivo = res.IngresosEfectivo.Add(p.Monto)
		case p.Sentido == model.SentidoIngreso && p.MetodoPago == model.MetodoTransferencia:
			res.IngresosTransferencia = res.IngresosTransferencia.Add(p.Monto)
		case p.Sentido == model.SentidoEgreso && p.MetodoPago == model.MetodoEfectivo:
			res.EgresosEfectivo = res.EgresosEfectivo.Add(p.Monto)
		case p.Sentido == model.SentidoEgreso && p.MetodoPago == model.MetodoTransferencia:
			res.EgresosTransferencia = res.EgresosTransferencia.Add(p.Monto)
		}
	}
	res.TeoricoEfectivo = caja.MontoInicialEfectivo.Add(res.IngresosEfectivo).Sub(res.EgresosEfectivo)
	res.TeoricoTransferencia = caja.MontoInicialTransferencia.Add(res.IngresosTransferencia).Sub(res.EgresosTransferencia)
	return res, nil
}

func (s *cajaService) Historial(ctx context.Context, f dto.CajaFilter) ([]model.Caja, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.cajas.List(ctx, f)
}
