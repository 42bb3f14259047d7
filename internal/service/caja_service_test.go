package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

func TestAbrirCaja_UnicaSesion(t *testing.T) {
	f := newFixture()
	usuario := uuid.New()

	caja, err := f.cajaSvc.Abrir(context.Background(), usuario, dto.AbrirCajaRequest{
		MontoInicialEfectivo: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CajaAbierta, caja.Estado)
	assert.Equal(t, usuario, caja.UsuarioAperturaID)

	_, err = f.cajaSvc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{})
	assert.ErrorContains(t, err, "Ya existe una caja abierta")
}

func TestCerrarCaja_SinAbierta(t *testing.T) {
	f := newFixture()
	_, err := f.cajaSvc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{})
	assert.ErrorContains(t, err, "No hay una caja abierta")
}

func TestCerrarCaja_CalculaDiferencias(t *testing.T) {
	f := newFixture()
	apertura := uuid.New()
	caja, err := f.cajaSvc.Abrir(context.Background(), apertura, dto.AbrirCajaRequest{
		MontoInicialEfectivo:      decimal.NewFromInt(1000),
		MontoInicialTransferencia: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	// Movimientos del día: +800 efectivo, -200 efectivo, +300 transferencia
	agregarPago(f, caja, model.SentidoIngreso, model.MetodoEfectivo, 800)
	agregarPago(f, caja, model.SentidoEgreso, model.MetodoEfectivo, 200)
	agregarPago(f, caja, model.SentidoIngreso, model.MetodoTransferencia, 300)

	// Teórico: efectivo 1600, transferencia 800. Declarado: 1550 y 800.
	cierre := uuid.New()
	cerrada, err := f.cajaSvc.Cerrar(context.Background(), cierre, dto.CerrarCajaRequest{
		MontoFinalEfectivo:      decimal.NewFromInt(1550),
		MontoFinalTransferencia: decimal.NewFromInt(800),
	})
	require.NoError(t, err)

	assert.Equal(t, model.CajaCerrada, cerrada.Estado)
	require.NotNil(t, cerrada.UsuarioCierreID)
	assert.Equal(t, cierre, *cerrada.UsuarioCierreID)
	require.NotNil(t, cerrada.FechaCierre)
	assert.Equal(t, "-50", cerrada.DiferenciaEfectivo.String())
	assert.Equal(t, "0", cerrada.DiferenciaTransferencia.String())
}

func TestResumenCaja(t *testing.T) {
	f := newFixture()
	caja, err := f.cajaSvc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoInicialEfectivo: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	agregarPago(f, caja, model.SentidoIngreso, model.MetodoEfectivo, 500)
	agregarPago(f, caja, model.SentidoEgreso, model.MetodoEfectivo, 150)
	agregarPago(f, caja, model.SentidoIngreso, model.MetodoTransferencia, 1200)

	res, err := f.cajaSvc.Resumen(context.Background(), caja.ID)
	require.NoError(t, err)
	assert.Equal(t, "500", res.IngresosEfectivo.String())
	assert.Equal(t, "150", res.EgresosEfectivo.String())
	assert.Equal(t, "1200", res.IngresosTransferencia.String())
	assert.Equal(t, "450", res.TeoricoEfectivo.String())
	assert.Equal(t, "1200", res.TeoricoTransferencia.String())
	assert.Equal(t, 3, res.CantidadPagos)
}

func TestAbierta(t *testing.T) {
	f := newFixture()
	_, err := f.cajaSvc.Abierta(context.Background())
	assert.ErrorContains(t, err, "No hay una caja abierta")

	caja, err := f.cajaSvc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{})
	require.NoError(t, err)
	abierta, err := f.cajaSvc.Abierta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, caja.ID, abierta.ID)
}

// agregarPago injects a raw movement into the fake ledger for a session.
func agregarPago(f *fixture, caja *model.Caja, sentido, metodo string, monto int64) {
	cid := caja.ID
	f.pagos.pagos = append(f.pagos.pagos, &model.Pago{
		ID:         uuid.New(),
		Origen:     model.OrigenExtraordinario,
		TipoPago:   model.PagoOtroIngreso,
		Sentido:    sentido,
		Monto:      decimal.NewFromInt(monto),
		MetodoPago: metodo,
		CajaID:     &cid,
	})
}
