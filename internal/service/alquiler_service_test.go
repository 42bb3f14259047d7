package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

// alquilerEntregado builds and delivers a rental of `cantidad` units of one
// product, with the given garantía, through the real services.
func alquilerEntregado(t *testing.T, f *fixture, precio float64, stock, cantidad int, garantia int64) (*model.Pedido, *model.Alquiler, *model.Producto) {
	t.Helper()
	cliente := seedCliente(f)
	p := seedProducto(f, "Copa de cristal", precio, stock)

	pedido, alquiler, err := crearPedido(f, cliente, []dto.ItemPedidoRequest{
		{ProductoID: p.ID.String(), Cantidad: cantidad},
	}, decimal.NewFromInt(garantia))
	require.NoError(t, err)

	alquiler, err = f.alquilerSvc.Entregar(context.Background(), alquiler.ID)
	require.NoError(t, err)
	require.Equal(t, model.AlquilerEntregado, alquiler.Estado)
	return pedido, alquiler, p
}

func TestEntregar_ConsumeReserva(t *testing.T) {
	f := newFixture()
	_, _, p := alquilerEntregado(t, f, 100, 10, 4, 0)

	got := f.productos.productos[p.ID]
	assert.Equal(t, 6, got.Stock)
	assert.Equal(t, 0, got.StockReservado)
}

func TestEntregar_DosVecesFalla(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 2, 0)

	_, err := f.alquilerSvc.Entregar(context.Background(), alquiler.ID)
	assert.ErrorContains(t, err, "Transicion invalida")
}

func TestFinalizar_SinIncidentes_DevuelveGarantia(t *testing.T) {
	f := newFixture()
	abrirCaja(f)
	pedido, alquiler, p := alquilerEntregado(t, f, 100, 10, 4, 500)

	liq, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, "")
	require.NoError(t, err)

	assert.Equal(t, model.AlquilerFinalizado, liq.Estado)
	assert.Equal(t, model.GarantiaAlquilerDevuelta, liq.GarantiaEstado)
	assert.Equal(t, "500", liq.GarantiaTotal.String())
	assert.True(t, liq.CostoIncidentes.IsZero())
	assert.True(t, liq.MontoAplicado.IsZero())
	assert.Equal(t, "500", liq.MontoDevuelto.String())

	// Un único egreso por la devolución completa
	devoluciones := f.pagos.porTipo(model.PagoDevolucionGarantia)
	require.Len(t, devoluciones, 1)
	assert.Equal(t, "500", devoluciones[0].Monto.String())
	assert.Equal(t, model.SentidoEgreso, devoluciones[0].Sentido)
	assert.Empty(t, f.pagos.porTipo(model.PagoAplicacionGarantia))

	// Todo vuelve al depósito
	assert.Equal(t, 10, f.productos.productos[p.ID].Stock)

	assert.Equal(t, model.GarantiaPedidoDevuelta, f.pedidos.pedidos[pedido.ID].GarantiaEstado)
	require.NotNil(t, f.alquileres.alquileres[alquiler.ID].FinalizadoEn)
}

func TestFinalizar_CostoParcial_AplicaYDevuelve(t *testing.T) {
	f := newFixture()
	abrirCaja(f)
	pedido, alquiler, p := alquilerEntregado(t, f, 100, 10, 4, 500)

	// 2 unidades repuestas por el cliente: costo 200 contra garantía 500
	inc, err := f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    alquiler.Items[0].ID.String(),
		Descripcion:      "copas rotas",
		TipoIncidente:    model.IncidenteReparable,
		CantidadAfectada: 2,
	})
	require.NoError(t, err)
	_, err = f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal:   model.ResultadoRepuesto,
		CantidadRepuesta: 2,
	})
	require.NoError(t, err)

	liq, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, model.MetodoEfectivo)
	require.NoError(t, err)

	assert.Equal(t, "200", liq.CostoIncidentes.String())
	assert.Equal(t, "200", liq.MontoAplicado.String())
	assert.Equal(t, "300", liq.MontoDevuelto.String())
	assert.Equal(t, model.GarantiaAlquilerAplicada, liq.GarantiaEstado)

	aplicaciones := f.pagos.porTipo(model.PagoAplicacionGarantia)
	require.Len(t, aplicaciones, 1)
	assert.Equal(t, "200", aplicaciones[0].Monto.String())
	assert.Equal(t, model.SentidoIngreso, aplicaciones[0].Sentido)

	devoluciones := f.pagos.porTipo(model.PagoDevolucionGarantia)
	require.Len(t, devoluciones, 1)
	assert.Equal(t, "300", devoluciones[0].Monto.String())
	assert.Equal(t, model.SentidoEgreso, devoluciones[0].Sentido)

	// 2 repuestas al resolver + 2 sanas al finalizar = stock original
	assert.Equal(t, 10, f.productos.productos[p.ID].Stock)

	assert.Equal(t, model.GarantiaPedidoDescontada, f.pedidos.pedidos[pedido.ID].GarantiaEstado)
}

func TestFinalizar_CostoSuperaGarantia_AplicaTodo(t *testing.T) {
	f := newFixture()
	abrirCaja(f)
	_, alquiler, _ := alquilerEntregado(t, f, 300, 10, 4, 500)

	// costo 3 × 300 = 900 >= garantía 500
	inc, err := f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    alquiler.Items[0].ID.String(),
		Descripcion:      "piezas perdidas",
		TipoIncidente:    model.IncidenteIrreparable,
		CantidadAfectada: 3,
	})
	require.NoError(t, err)
	_, err = f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal:   model.ResultadoRepuesto,
		CantidadRepuesta: 3,
	})
	require.NoError(t, err)

	liq, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, model.MetodoEfectivo)
	require.NoError(t, err)

	assert.Equal(t, "900", liq.CostoIncidentes.String())
	assert.Equal(t, "500", liq.MontoAplicado.String())
	assert.True(t, liq.MontoDevuelto.IsZero())
	assert.Equal(t, model.GarantiaAlquilerAplicada, liq.GarantiaEstado)

	// Se retiene la garantía completa, nada más: el excedente no se cobra acá
	require.Len(t, f.pagos.porTipo(model.PagoAplicacionGarantia), 1)
	assert.Empty(t, f.pagos.porTipo(model.PagoDevolucionGarantia))
}

func TestFinalizar_IncidenteAbierto_QuedaPendiente(t *testing.T) {
	f := newFixture()
	abrirCaja(f)
	pedido, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	_, err := f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    alquiler.Items[0].ID.String(),
		Descripcion:      "faltan piezas",
		TipoIncidente:    model.IncidenteReparable,
		CantidadAfectada: 1,
	})
	require.NoError(t, err)

	liq, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, "")
	require.NoError(t, err)

	// El alquiler no cierra ni se mueve dinero hasta resolver el incidente
	assert.Equal(t, model.AlquilerEntregado, liq.Estado)
	assert.Equal(t, model.GarantiaAlquilerPendiente, liq.GarantiaEstado)
	assert.Empty(t, f.pagos.pagos)
	assert.Equal(t, model.GarantiaPedidoPendiente, f.pedidos.pedidos[pedido.ID].GarantiaEstado)
	assert.Nil(t, f.alquileres.alquileres[alquiler.ID].FinalizadoEn)
}

func TestFinalizar_GarantiaCero_SinPagos(t *testing.T) {
	f := newFixture()
	_, alquiler, p := alquilerEntregado(t, f, 100, 10, 2, 0)
	// crearPedido con garantía 0 dispara el cálculo por defecto, forzamos cero
	a := f.alquileres.alquileres[alquiler.ID]
	cero := decimal.Zero
	a.GarantiaMonto = &cero

	liq, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, "")
	require.NoError(t, err)

	assert.Equal(t, model.AlquilerFinalizado, liq.Estado)
	assert.Equal(t, model.GarantiaAlquilerDevuelta, liq.GarantiaEstado)
	assert.Empty(t, f.pagos.pagos)
	assert.Equal(t, 10, f.productos.productos[p.ID].Stock)
}

func TestFinalizar_SinCajaAbierta_PagosSinAsignar(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 2, 500)

	// La liquidación no depende de la caja: sin sesión abierta los pagos
	// quedan sin asignar y fuera de todo arqueo
	liq, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, "")
	require.NoError(t, err)
	assert.True(t, liq.MontoDevuelto.Equal(decimal.NewFromInt(500)))

	require.Len(t, f.pagos.pagos, 1)
	assert.Nil(t, f.pagos.pagos[0].CajaID)
}

func TestFinalizar_SinPedidoVinculado(t *testing.T) {
	f := newFixture()
	garantia := decimal.NewFromInt(50)
	alquiler := &model.Alquiler{
		ClienteNombre: "Cliente de mostrador",
		Estado:        model.AlquilerEntregado,
		GarantiaMonto: &garantia,
	}
	require.NoError(t, f.alquileres.CreateTx(nil, alquiler))

	_, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, "")
	assert.ErrorContains(t, err, "no está vinculado a un pedido")
	assert.Empty(t, f.pagos.pagos)
}

func TestFinalizar_ReintegradoNoDuplicaStock(t *testing.T) {
	f := newFixture()
	abrirCaja(f)
	_, alquiler, p := alquilerEntregado(t, f, 100, 10, 4, 500)

	// La unidad reintegrada vuelve al resolver; al finalizar sólo vuelven las 3 restantes
	inc, err := f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    alquiler.Items[0].ID.String(),
		Descripcion:      "copa recuperada después",
		TipoIncidente:    model.IncidenteReparable,
		CantidadAfectada: 1,
	})
	require.NoError(t, err)
	_, err = f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal: model.ResultadoReintegrado,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, f.productos.productos[p.ID].Stock)

	liq, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, "")
	require.NoError(t, err)

	// reintegrado no tiene costo: garantía completa devuelta
	assert.True(t, liq.CostoIncidentes.IsZero())
	assert.Equal(t, "500", liq.MontoDevuelto.String())
	assert.Equal(t, 10, f.productos.productos[p.ID].Stock)
}

func TestFinalizar_YaFinalizadoFalla(t *testing.T) {
	f := newFixture()
	abrirCaja(f)
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 2, 100)

	_, err := f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, "")
	require.NoError(t, err)
	_, err = f.alquilerSvc.Finalizar(context.Background(), alquiler.ID, "")
	assert.ErrorContains(t, err, "Transicion invalida")
}

func TestResumen_ProyectaCosto(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 150, 10, 4, 500)

	inc, err := f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    alquiler.Items[0].ID.String(),
		Descripcion:      "rotura",
		TipoIncidente:    model.IncidenteReparable,
		CantidadAfectada: 2,
	})
	require.NoError(t, err)
	_, err = f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal:   model.ResultadoRepuesto,
		CantidadRepuesta: 2,
	})
	require.NoError(t, err)

	a, incidentes, costo, err := f.alquilerSvc.Resumen(context.Background(), alquiler.ID)
	require.NoError(t, err)
	assert.Equal(t, alquiler.ID, a.ID)
	assert.Len(t, incidentes, 1)
	assert.Equal(t, "300", costo.String())
	// Resumen no muta nada
	assert.Equal(t, model.AlquilerEntregado, f.alquileres.alquileres[alquiler.ID].Estado)
}

func TestEliminarAlquiler_ConIncidentesFalla(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 2, 0)

	_, err := f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    alquiler.Items[0].ID.String(),
		Descripcion:      "rotura",
		TipoIncidente:    model.IncidenteReparable,
		CantidadAfectada: 1,
	})
	require.NoError(t, err)

	err = f.alquilerSvc.Eliminar(context.Background(), alquiler.ID)
	assert.ErrorContains(t, err, "incidente(s) asociados")
	assert.Contains(t, f.alquileres.alquileres, alquiler.ID)
}

func TestEliminarAlquiler_SinIncidentes(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 2, 0)

	require.NoError(t, f.alquilerSvc.Eliminar(context.Background(), alquiler.ID))
	assert.NotContains(t, f.alquileres.alquileres, alquiler.ID)
}
