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

func TestCrearProducto(t *testing.T) {
	f := newFixture()

	p, err := f.productoSvc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:    "Copa de champagne",
		Categoria: model.CategoriaCristaleria,
		Precio:    decimal.NewFromInt(120),
		Stock:     50,
	})
	require.NoError(t, err)
	assert.True(t, p.Activo)
	assert.Equal(t, 50, p.Stock)
	assert.Equal(t, 0, p.StockReservado)
}

func TestAjustarStock_Reposicion(t *testing.T) {
	f := newFixture()
	p := seedProducto(f, "Plato postre", 40, 10)

	ajustado, err := f.productoSvc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Cantidad: 5,
		Motivo:   "compra de reposición",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, ajustado.Stock)
}

func TestAjustarStock_NoRompeReserva(t *testing.T) {
	f := newFixture()
	p := seedProducto(f, "Silla tiffany", 300, 10)
	require.NoError(t, f.inventarioSvc.ReservarTx(nil, p.ID, 8, nil, "pedido"))

	// Quitar 5 dejaría 5 < 8 reservadas
	_, err := f.productoSvc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Cantidad: -5,
		Motivo:   "rotura en depósito",
	})
	assert.ErrorContains(t, err, "por debajo de lo reservado")

	ajustado, err := f.productoSvc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Cantidad: -2,
		Motivo:   "rotura en depósito",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, ajustado.Stock)
	assert.Equal(t, 8, ajustado.StockReservado)
}

func TestAjustarStock_CantidadCero(t *testing.T) {
	f := newFixture()
	p := seedProducto(f, "Vaso", 30, 10)

	_, err := f.productoSvc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Cantidad: 0,
		Motivo:   "nada",
	})
	assert.ErrorContains(t, err, "no puede ser 0")
}

func TestDesactivarProducto_ConIncidentesAbiertos(t *testing.T) {
	f := newFixture()
	_, alquiler, p := alquilerEntregado(t, f, 100, 10, 4, 500)
	crearIncidente(t, f, alquiler.Items[0].ID.String(), model.IncidenteReparable, 1)

	err := f.productoSvc.Desactivar(context.Background(), p.ID)
	assert.ErrorContains(t, err, "incidente(s) abiertos")
	assert.True(t, f.productos.productos[p.ID].Activo)
}

func TestDesactivarProducto(t *testing.T) {
	f := newFixture()
	p := seedProducto(f, "Mantel viejo", 60, 3)

	require.NoError(t, f.productoSvc.Desactivar(context.Background(), p.ID))
	assert.False(t, f.productos.productos[p.ID].Activo)
}

func TestReactivarProducto(t *testing.T) {
	f := newFixture()
	p := seedProducto(f, "Mantel viejo", 60, 3)
	require.NoError(t, f.productoSvc.Desactivar(context.Background(), p.ID))

	reactivado, err := f.productoSvc.Reactivar(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, reactivado.Activo)
	assert.True(t, f.productos.productos[p.ID].Activo)
}
