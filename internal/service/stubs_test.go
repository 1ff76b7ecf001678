package service

// In-memory repository stubs shared by the service unit tests. The stubs
// honor the same contracts as the GORM implementations: copies out, guarded
// stock decrements, gorm.ErrRecordNotFound on missing rows. DB() returns nil
// so runTx executes the transaction body directly.

import (
	"context"
	"sort"
	"sync"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── ProductoRepository stub ───────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(p model.Producto) uuid.UUID {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = &p
	return p.ID
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cloned := *p
	r.productos[p.ID] = &cloned
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cloned := *p
	r.productos[p.ID] = &cloned
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) CountByCategoria(_ context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.CategoriaID != nil && *p.CategoriaID == categoriaID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Same as the SQL implementation: the caller gets a snapshot struct,
	// later UPDATEs do not mutate it.
	cloned := *p
	return &cloned, nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return repository.ErrStockInsuficiente
	}
	p.Stock -= cantidad
	return nil
}

func (r *stubProductoRepo) ReassignCategoriaTx(_ *gorm.DB, from, to uuid.UUID) error {
	for _, p := range r.productos {
		if p.CategoriaID != nil && *p.CategoriaID == from {
			t := to
			p.CategoriaID = &t
		}
	}
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── CategoriaRepository stub ──────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
	creaciones int // FirstOrCreateTx creations, to assert the sentinel is made at most once
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) agregar(nombre string) uuid.UUID {
	c := &model.Categoria{ID: uuid.New(), Nombre: nombre}
	r.categorias[c.ID] = c
	return c.ID
}

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.categorias[c.ID] = &cloned
	return nil
}

func (r *stubCategoriaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubCategoriaRepo) FindByNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	out := make([]model.Categoria, 0, len(r.categorias))
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubCategoriaRepo) Update(_ context.Context, c *model.Categoria) error {
	if _, ok := r.categorias[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cloned := *c
	r.categorias[c.ID] = &cloned
	return nil
}

func (r *stubCategoriaRepo) FirstOrCreateTx(_ *gorm.DB, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			cloned := *c
			return &cloned, nil
		}
	}
	c := &model.Categoria{ID: uuid.New(), Nombre: nombre}
	r.categorias[c.ID] = c
	r.creaciones++
	cloned := *c
	return &cloned, nil
}

func (r *stubCategoriaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── PedidoRepository stub ─────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cloned := *p
	r.pedidos[p.ID] = &cloned
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubPedidoRepo) Update(_ context.Context, p *model.Pedido) error {
	if _, ok := r.pedidos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cloned := *p
	r.pedidos[p.ID] = &cloned
	return nil
}

func (r *stubPedidoRepo) ListAll(_ context.Context) ([]model.Pedido, error) {
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaCreacion.After(out[j].FechaCreacion) })
	return out, nil
}

func (r *stubPedidoRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Pedido, error) {
	out := make([]model.Pedido, 0)
	for _, p := range r.pedidos {
		if p.UsuarioID != nil && *p.UsuarioID == usuarioID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaCreacion.After(out[j].FechaCreacion) })
	return out, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── MovimientoStockRepository stub ────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	return r.Create(context.Background(), m)
}

func (r *stubMovimientoRepo) List(_ context.Context, limit int) ([]model.MovimientoStock, error) {
	out := make([]model.MovimientoStock, len(r.movimientos))
	copy(out, r.movimientos)
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── UsuarioRepository stub ────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) FindByCorreo(_ context.Context, correo string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Correo == correo {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *u
	return &cloned, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── ConfiguracionRepository stub ──────────────────────────────────────────────

type stubConfiguracionRepo struct {
	config  *model.Configuracion
	upserts int
}

func newStubConfiguracionRepo() *stubConfiguracionRepo { return &stubConfiguracionRepo{} }

func (r *stubConfiguracionRepo) Get(_ context.Context) (*model.Configuracion, error) {
	if r.config == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *r.config
	return &cloned, nil
}

func (r *stubConfiguracionRepo) Upsert(_ context.Context, c *model.Configuracion) error {
	c.ID = model.ConfiguracionID
	cloned := *c
	r.config = &cloned
	r.upserts++
	return nil
}

var _ repository.ConfiguracionRepository = (*stubConfiguracionRepo)(nil)

// ── Notificador stub ──────────────────────────────────────────────────────────

type notificacion struct {
	correo, pedidoID, estado, motivo string
}

// stubNotificador records notifications on a channel because the service
// dispatches them from a goroutine.
type stubNotificador struct {
	mu      sync.Mutex
	enviado chan notificacion
}

func newStubNotificador() *stubNotificador {
	return &stubNotificador{enviado: make(chan notificacion, 8)}
}

func (n *stubNotificador) NotificarEstadoPedido(correo, pedidoID, estado, motivo string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enviado <- notificacion{correo: correo, pedidoID: pedidoID, estado: estado, motivo: motivo}
	return nil
}

var _ Notificador = (*stubNotificador)(nil)
