package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
)

func crearIncidente(t *testing.T, f *fixture, detID string, tipo string, afectada int) *model.Incidente {
	t.Helper()
	inc, err := f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    detID,
		Descripcion:      "daño registrado",
		TipoIncidente:    tipo,
		CantidadAfectada: afectada,
	})
	require.NoError(t, err)
	return inc
}

func TestCrearIncidente_MarcaGarantiaPendiente(t *testing.T) {
	f := newFixture()
	pedido, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 2)
	assert.Equal(t, model.IncidenteAbierto, inc.EstadoIncidente)
	assert.Equal(t, model.ResultadoSinAccion, inc.ResultadoFinal)
	assert.Equal(t, model.GarantiaPedidoPendiente, f.pedidos.pedidos[pedido.ID].GarantiaEstado)
}

func TestCrearIncidente_NoSuperaLoAlquilado(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)
	detID := alquiler.Items[0].ID.String()

	crearIncidente(t, f, detID, model.IncidenteReparable, 3)

	// 3 de 4 ya comprometidas en el incidente abierto
	_, err := f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    detID,
		Descripcion:      "otro daño",
		TipoIncidente:    model.IncidenteReparable,
		CantidadAfectada: 2,
	})
	assert.ErrorContains(t, err, "no puede superar 1")
}

func TestCrearIncidente_ResueltosLiberanCupo(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)
	detID := alquiler.Items[0].ID.String()

	inc := crearIncidente(t, f, detID, model.IncidenteReparable, 3)
	_, err := f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal: model.ResultadoSinAccion,
	})
	require.NoError(t, err)

	// El resuelto ya no ocupa cupo
	crearIncidente(t, f, detID, model.IncidenteReparable, 4)
}

func TestCrearIncidente_AnuladosSiguenOcupandoCupo(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)
	detID := alquiler.Items[0].ID.String()

	inc := crearIncidente(t, f, detID, model.IncidenteReparable, 3)
	_, err := f.incidenteSvc.Anular(context.Background(), inc.ID)
	require.NoError(t, err)

	_, err = f.incidenteSvc.Crear(context.Background(), dto.CrearIncidenteRequest{
		DetAlquilerID:    detID,
		Descripcion:      "otro daño",
		TipoIncidente:    model.IncidenteReparable,
		CantidadAfectada: 2,
	})
	assert.ErrorContains(t, err, "no puede superar")
}

func TestResolver_IrreparableNoReintegra(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteIrreparable, 1)
	_, err := f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal: model.ResultadoReintegrado,
	})
	assert.ErrorContains(t, err, "irreparable")
}

func TestResolver_RepuestoExigeCantidad(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 2)
	_, err := f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal: model.ResultadoRepuesto,
	})
	assert.ErrorContains(t, err, "cantidad_repuesta")

	_, err = f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal:   model.ResultadoRepuesto,
		CantidadRepuesta: 3,
	})
	assert.ErrorContains(t, err, "más de lo afectado")
}

func TestResolver_RepuestoIngresaReposicion(t *testing.T) {
	f := newFixture()
	_, alquiler, p := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 2)
	resuelto, err := f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal:   model.ResultadoRepuesto,
		CantidadRepuesta: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, model.IncidenteResuelto, resuelto.EstadoIncidente)
	assert.Equal(t, 2, resuelto.CantidadRepuesta)
	require.NotNil(t, resuelto.FechaResolucion)
	// 10 - 4 entregadas + 2 repuestas
	assert.Equal(t, 8, f.productos.productos[p.ID].Stock)
}

func TestResolver_SoloAbiertos(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 1)
	_, err := f.incidenteSvc.Anular(context.Background(), inc.ID)
	require.NoError(t, err)

	_, err = f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal: model.ResultadoSinAccion,
	})
	assert.ErrorContains(t, err, "Transicion invalida")
	_, err = f.incidenteSvc.Anular(context.Background(), inc.ID)
	assert.ErrorContains(t, err, "Transicion invalida")
}

func TestAnular_RecalculaGarantia(t *testing.T) {
	f := newFixture()
	pedido, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 1)
	assert.Equal(t, model.GarantiaPedidoPendiente, f.pedidos.pedidos[pedido.ID].GarantiaEstado)

	_, err := f.incidenteSvc.Anular(context.Background(), inc.ID)
	require.NoError(t, err)
	// Sin abiertos ni costo: la garantía vuelve a estar libre
	assert.Equal(t, model.GarantiaPedidoDevuelta, f.pedidos.pedidos[pedido.ID].GarantiaEstado)
}

func TestEliminarIncidente_AbiertoFalla(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 1)
	err := f.incidenteSvc.Eliminar(context.Background(), inc.ID)
	assert.ErrorContains(t, err, "no está resuelto")
	assert.Contains(t, f.incidentes.incidentes, inc.ID)
}

func TestEliminarIncidente_AnuladoFalla(t *testing.T) {
	f := newFixture()
	_, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 1)
	_, err := f.incidenteSvc.Anular(context.Background(), inc.ID)
	require.NoError(t, err)

	// Un reclamo anulado queda en el historial; sólo los resueltos se borran
	err = f.incidenteSvc.Eliminar(context.Background(), inc.ID)
	assert.ErrorContains(t, err, "no está resuelto")
	assert.Contains(t, f.incidentes.incidentes, inc.ID)
}

func TestEliminarIncidente_ResueltoRecalcula(t *testing.T) {
	f := newFixture()
	pedido, alquiler, _ := alquilerEntregado(t, f, 100, 10, 4, 500)

	inc := crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 2)
	_, err := f.incidenteSvc.Resolver(context.Background(), inc.ID, dto.ResolverIncidenteRequest{
		ResultadoFinal:   model.ResultadoRepuesto,
		CantidadRepuesta: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, model.GarantiaPedidoDescontada, f.pedidos.pedidos[pedido.ID].GarantiaEstado)

	require.NoError(t, f.incidenteSvc.Eliminar(context.Background(), inc.ID))
	assert.NotContains(t, f.incidentes.incidentes, inc.ID)
	assert.Equal(t, model.GarantiaPedidoDevuelta, f.pedidos.pedidos[pedido.ID].GarantiaEstado)
}
