package service_test

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/repository"
	"alquilapp/internal/service"
)

// In-memory repository fakes. All Tx variants accept a nil *gorm.DB because
// runTx short-circuits when the repository reports no database.

// ── Productos ────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos  map[uuid.UUID]*model.Producto
	reservados map[uuid.UUID]int // ReservadoEnRango fixture values
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{
		productos:  make(map[uuid.UUID]*model.Producto),
		reservados: make(map[uuid.UUID]int),
	}
}

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) find(id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	return r.find(id)
}

func (r *fakeProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.find(id)
}

func (r *fakeProductoRepo) List(_ context.Context, f dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if f.Buscar != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(f.Buscar)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *fakeProductoRepo) ReservarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p.Stock-p.StockReservado < cantidad {
		return nil, gorm.ErrRecordNotFound
	}
	p.StockReservado += cantidad
	cp := *p
	return &cp, nil
}

func (r *fakeProductoRepo) LiberarReservaTx(_ *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.StockReservado -= cantidad
	if p.StockReservado < 0 {
		p.StockReservado = 0
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductoRepo) ConsumirReservaTx(_ *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p.StockReservado < cantidad || p.Stock < cantidad {
		return nil, gorm.ErrRecordNotFound
	}
	p.Stock -= cantidad
	p.StockReservado -= cantidad
	cp := *p
	return &cp, nil
}

func (r *fakeProductoRepo) DevolverStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Stock += cantidad
	cp := *p
	return &cp, nil
}

func (r *fakeProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p.Stock < cantidad {
		return nil, gorm.ErrRecordNotFound
	}
	p.Stock -= cantidad
	cp := *p
	return &cp, nil
}

func (r *fakeProductoRepo) ReservadoEnRango(_ context.Context, id uuid.UUID, _, _ time.Time) (int, error) {
	return r.reservados[id], nil
}

func (r *fakeProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

// ── Clientes ─────────────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *fakeClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *fakeClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClienteRepo) FindByDNI(_ context.Context, dni string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.DNI == dni {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *fakeClienteRepo) DB() *gorm.DB { return nil }

var _ repository.ClienteRepository = (*fakeClienteRepo)(nil)

// ── Pedidos ──────────────────────────────────────────────────────────────────

type fakePedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
}

func newFakePedidoRepo() *fakePedidoRepo {
	return &fakePedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *fakePedidoRepo) CreateTx(_ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Detalles {
		if p.Detalles[i].ID == uuid.Nil {
			p.Detalles[i].ID = uuid.New()
		}
		p.Detalles[i].PedidoID = p.ID
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *fakePedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePedidoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePedidoRepo) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePedidoRepo) UpdateTx(_ *gorm.DB, p *model.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *fakePedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*fakePedidoRepo)(nil)

// ── Alquileres ───────────────────────────────────────────────────────────────

type fakeAlquilerRepo struct {
	alquileres map[uuid.UUID]*model.Alquiler
	dets       map[uuid.UUID]*model.DetAlquiler
	pedidos    *fakePedidoRepo
}

func newFakeAlquilerRepo(pedidos *fakePedidoRepo) *fakeAlquilerRepo {
	return &fakeAlquilerRepo{
		alquileres: make(map[uuid.UUID]*model.Alquiler),
		dets:       make(map[uuid.UUID]*model.DetAlquiler),
		pedidos:    pedidos,
	}
}

func (r *fakeAlquilerRepo) CreateTx(_ *gorm.DB, a *model.Alquiler) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	for i := range a.Items {
		if a.Items[i].ID == uuid.Nil {
			a.Items[i].ID = uuid.New()
		}
		a.Items[i].AlquilerID = a.ID
		r.dets[a.Items[i].ID] = &a.Items[i]
	}
	r.alquileres[a.ID] = a
	if a.PedidoID != nil {
		if p, ok := r.pedidos.pedidos[*a.PedidoID]; ok {
			p.Alquiler = a
		}
	}
	return nil
}

func (r *fakeAlquilerRepo) find(id uuid.UUID) (*model.Alquiler, error) {
	a, ok := r.alquileres[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAlquilerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Alquiler, error) {
	return r.find(id)
}

func (r *fakeAlquilerRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Alquiler, error) {
	return r.find(id)
}

func (r *fakeAlquilerRepo) FindByPedidoID(_ context.Context, pedidoID uuid.UUID) (*model.Alquiler, error) {
	for _, a := range r.alquileres {
		if a.PedidoID != nil && *a.PedidoID == pedidoID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAlquilerRepo) List(_ context.Context, _ dto.AlquilerFilter) ([]model.Alquiler, int64, error) {
	var out []model.Alquiler
	for _, a := range r.alquileres {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAlquilerRepo) UpdateTx(_ *gorm.DB, a *model.Alquiler) error {
	r.alquileres[a.ID] = a
	return nil
}

func (r *fakeAlquilerRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.alquileres, id)
	return nil
}

func (r *fakeAlquilerRepo) FindDetByID(_ context.Context, id uuid.UUID) (*model.DetAlquiler, error) {
	d, ok := r.dets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *fakeAlquilerRepo) DB() *gorm.DB { return nil }

var _ repository.AlquilerRepository = (*fakeAlquilerRepo)(nil)

// ── Incidentes ───────────────────────────────────────────────────────────────

type fakeIncidenteRepo struct {
	incidentes map[uuid.UUID]*model.Incidente
	alquileres *fakeAlquilerRepo
}

func newFakeIncidenteRepo(alquileres *fakeAlquilerRepo) *fakeIncidenteRepo {
	return &fakeIncidenteRepo{
		incidentes: make(map[uuid.UUID]*model.Incidente),
		alquileres: alquileres,
	}
}

func (r *fakeIncidenteRepo) attachDet(i *model.Incidente) {
	if i.DetAlquiler == nil {
		i.DetAlquiler = r.alquileres.dets[i.DetAlquilerID]
	}
}

func (r *fakeIncidenteRepo) Create(_ context.Context, i *model.Incidente) error {
	return r.CreateTx(nil, i)
}

func (r *fakeIncidenteRepo) CreateTx(_ *gorm.DB, i *model.Incidente) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.FechaIncidente.IsZero() {
		i.FechaIncidente = time.Now()
	}
	r.attachDet(i)
	r.incidentes[i.ID] = i
	return nil
}

func (r *fakeIncidenteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Incidente, error) {
	i, ok := r.incidentes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.attachDet(i)
	return i, nil
}

func (r *fakeIncidenteRepo) List(_ context.Context, _ dto.IncidenteFilter) ([]model.Incidente, int64, error) {
	var out []model.Incidente
	for _, i := range r.incidentes {
		out = append(out, *i)
	}
	return out, int64(len(out)), nil
}

func (r *fakeIncidenteRepo) ListByDetAlquiler(_ context.Context, detID uuid.UUID) ([]model.Incidente, error) {
	var out []model.Incidente
	for _, i := range r.incidentes {
		if i.DetAlquilerID == detID {
			r.attachDet(i)
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *fakeIncidenteRepo) listByAlquiler(alquilerID uuid.UUID) []model.Incidente {
	var out []model.Incidente
	for _, i := range r.incidentes {
		r.attachDet(i)
		if i.DetAlquiler != nil && i.DetAlquiler.AlquilerID == alquilerID {
			out = append(out, *i)
		}
	}
	return out
}

func (r *fakeIncidenteRepo) ListByAlquiler(_ context.Context, alquilerID uuid.UUID) ([]model.Incidente, error) {
	return r.listByAlquiler(alquilerID), nil
}

func (r *fakeIncidenteRepo) ListByAlquilerTx(_ *gorm.DB, alquilerID uuid.UUID) ([]model.Incidente, error) {
	return r.listByAlquiler(alquilerID), nil
}

func (r *fakeIncidenteRepo) Update(_ context.Context, i *model.Incidente) error {
	r.incidentes[i.ID] = i
	return nil
}

func (r *fakeIncidenteRepo) UpdateTx(_ *gorm.DB, i *model.Incidente) error {
	r.incidentes[i.ID] = i
	return nil
}

func (r *fakeIncidenteRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.incidentes, id)
	return nil
}

func (r *fakeIncidenteRepo) CountAbiertosByProducto(_ context.Context, productoID uuid.UUID) (int64, error) {
	var n int64
	for _, i := range r.incidentes {
		r.attachDet(i)
		if i.EstadoIncidente == model.IncidenteAbierto && i.DetAlquiler != nil && i.DetAlquiler.ProductoID == productoID {
			n++
		}
	}
	return n, nil
}

func (r *fakeIncidenteRepo) DB() *gorm.DB { return nil }

var _ repository.IncidenteRepository = (*fakeIncidenteRepo)(nil)

// ── Pagos ────────────────────────────────────────────────────────────────────

type fakePagoRepo struct {
	pagos []*model.Pago
}

func (r *fakePagoRepo) Create(_ context.Context, p *model.Pago) error {
	return r.CreateTx(nil, p)
}

func (r *fakePagoRepo) CreateTx(_ *gorm.DB, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.FechaPago.IsZero() {
		p.FechaPago = time.Now()
	}
	r.pagos = append(r.pagos, p)
	return nil
}

func (r *fakePagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pago, error) {
	for _, p := range r.pagos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePagoRepo) List(_ context.Context, _ dto.PagoFilter) ([]model.Pago, int64, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePagoRepo) ListByCaja(_ context.Context, cajaID uuid.UUID) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.CajaID != nil && *p.CajaID == cajaID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePagoRepo) SumByCaja(_ context.Context, cajaID uuid.UUID, sentido, metodo string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.pagos {
		if p.CajaID != nil && *p.CajaID == cajaID && p.Sentido == sentido && p.MetodoPago == metodo {
			total = total.Add(p.Monto)
		}
	}
	return total, nil
}

func (r *fakePagoRepo) DB() *gorm.DB { return nil }

var _ repository.PagoRepository = (*fakePagoRepo)(nil)

// porTipo filters captured pagos for assertions.
func (r *fakePagoRepo) porTipo(tipo string) []*model.Pago {
	var out []*model.Pago
	for _, p := range r.pagos {
		if p.TipoPago == tipo {
			out = append(out, p)
		}
	}
	return out
}

// ── Cajas ────────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	cajas map[uuid.UUID]*model.Caja
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *fakeCajaRepo) Create(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *fakeCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCajaRepo) FindAbierta(_ context.Context) (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.Estado == model.CajaAbierta {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) List(_ context.Context, _ dto.CajaFilter) ([]model.Caja, int64, error) {
	var out []model.Caja
	for _, c := range r.cajas {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCajaRepo) Update(_ context.Context, c *model.Caja) error {
	r.cajas[c.ID] = c
	return nil
}

func (r *fakeCajaRepo) DB() *gorm.DB { return nil }

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

// ── Entregas ─────────────────────────────────────────────────────────────────

type fakeEntregaRepo struct {
	entregas map[uuid.UUID]*model.Entrega
}

func newFakeEntregaRepo() *fakeEntregaRepo {
	return &fakeEntregaRepo{entregas: make(map[uuid.UUID]*model.Entrega)}
}

func (r *fakeEntregaRepo) Create(_ context.Context, e *model.Entrega) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entregas[e.ID] = e
	return nil
}

func (r *fakeEntregaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Entrega, error) {
	e, ok := r.entregas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *fakeEntregaRepo) List(_ context.Context, _ dto.EntregaFilter) ([]model.Entrega, int64, error) {
	var out []model.Entrega
	for _, e := range r.entregas {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeEntregaRepo) Update(_ context.Context, e *model.Entrega) error {
	r.entregas[e.ID] = e
	return nil
}

func (r *fakeEntregaRepo) DB() *gorm.DB { return nil }

var _ repository.EntregaRepository = (*fakeEntregaRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

// fixture wires the whole service graph over the in-memory fakes.
type fixture struct {
	productos   *fakeProductoRepo
	clientes    *fakeClienteRepo
	pedidos     *fakePedidoRepo
	alquileres  *fakeAlquilerRepo
	incidentes  *fakeIncidenteRepo
	pagos       *fakePagoRepo
	cajas       *fakeCajaRepo
	entregas    *fakeEntregaRepo
	movimientos *fakeMovimientoRepo

	inventarioSvc service.InventarioService
	pedidoSvc     service.PedidoService
	alquilerSvc   service.AlquilerService
	incidenteSvc  service.IncidenteService
	pagoSvc       service.PagoService
	cajaSvc       service.CajaService
	clienteSvc    service.ClienteService
	productoSvc   service.ProductoService
	entregaSvc    service.EntregaService
}

func newFixture() *fixture {
	f := &fixture{
		productos:   newFakeProductoRepo(),
		clientes:    newFakeClienteRepo(),
		pedidos:     newFakePedidoRepo(),
		pagos:       &fakePagoRepo{},
		cajas:       newFakeCajaRepo(),
		entregas:    newFakeEntregaRepo(),
		movimientos: &fakeMovimientoRepo{},
	}
	f.alquileres = newFakeAlquilerRepo(f.pedidos)
	f.incidentes = newFakeIncidenteRepo(f.alquileres)

	f.inventarioSvc = service.NewInventarioService(f.productos, f.movimientos)
	f.pedidoSvc = service.NewPedidoService(f.pedidos, f.alquileres, f.clientes, f.productos, f.pagos, f.cajas, f.inventarioSvc, 15)
	f.alquilerSvc = service.NewAlquilerService(f.alquileres, f.pedidos, f.incidentes, f.pagos, f.cajas, f.inventarioSvc)
	f.incidenteSvc = service.NewIncidenteService(f.incidentes, f.alquileres, f.pedidos, f.inventarioSvc)
	f.pagoSvc = service.NewPagoService(f.pagos, f.pedidos, f.alquileres, f.cajas)
	f.cajaSvc = service.NewCajaService(f.cajas, f.pagos)
	f.clienteSvc = service.NewClienteService(f.clientes)
	f.productoSvc = service.NewProductoService(f.productos, f.incidentes, f.inventarioSvc)
	f.entregaSvc = service.NewEntregaService(f.entregas, f.alquileres)
	return f
}

type fakeMovimientoRepo struct {
	movimientos []*model.MovimientoStock
}

func (r *fakeMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *fakeMovimientoRepo) ListByProducto(_ context.Context, productoID uuid.UUID, _ int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMovimientoRepo) DB() *gorm.DB { return nil }

var _ repository.MovimientoStockRepository = (*fakeMovimientoRepo)(nil)

// ── Seed helpers ─────────────────────────────────────────────────────────────

func seedProducto(f *fixture, nombre string, precio float64, stock int) *model.Producto {
	p := &model.Producto{
		ID:        uuid.New(),
		Nombre:    nombre,
		Categoria: model.CategoriaVajilla,
		Precio:    decimal.NewFromFloat(precio),
		Stock:     stock,
		Activo:    true,
	}
	f.productos.productos[p.ID] = p
	return p
}

func seedCliente(f *fixture) *model.Cliente {
	c := &model.Cliente{
		ID:       uuid.New(),
		Nombre:   "Luciana",
		Apellido: "Gomez",
		DNI:      "30123456",
		Telefono: "1145678901",
		Activo:   true,
	}
	f.clientes.clientes[c.ID] = c
	return c
}

func abrirCaja(f *fixture) *model.Caja {
	c := &model.Caja{
		ID:                uuid.New(),
		UsuarioAperturaID: uuid.New(),
		FechaApertura:     time.Now(),
		Estado:            model.CajaAbierta,
	}
	f.cajas.cajas[c.ID] = c
	return c
}

// crearPedido builds a simple order through the real service.
func crearPedido(f *fixture, cliente *model.Cliente, items []dto.ItemPedidoRequest, garantia decimal.Decimal) (*model.Pedido, *model.Alquiler, error) {
	evento := time.Now().Add(48 * time.Hour)
	return f.pedidoSvc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:           cliente.ID.String(),
		Items:               items,
		FechaHoraEvento:     evento,
		FechaHoraDevolucion: evento.Add(24 * time.Hour),
		GarantiaMonto:       garantia,
	})
}
