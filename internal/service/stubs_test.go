package service

// In-memory repository stubs shared by the service tests. Every stub
// satisfies its repository interface; DB() returns nil so transactional
// services run their body directly instead of opening a real transaction.

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
)

// ─── Redis capture ───────────────────────────────────────────────────────────

// capturaRedis is a go-redis hook that records every issued command and
// short-circuits it before the network, so cache interactions can be asserted
// without a Redis server.
type capturaRedis struct {
	comandos [][]interface{}
}

var _ redis.Hook = (*capturaRedis)(nil)

func (h *capturaRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *capturaRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.comandos = append(h.comandos, cmd.Args())
		return nil
	}
}

func (h *capturaRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			h.comandos = append(h.comandos, cmd.Args())
		}
		return nil
	}
}

// borroDashboard reports whether a DEL of the dashboard cache key was issued.
func (h *capturaRedis) borroDashboard() bool {
	for _, args := range h.comandos {
		if len(args) >= 2 && args[0] == "del" && args[1] == cacheKeyDashboard {
			return true
		}
	}
	return false
}

func newRedisCaptura() (*redis.Client, *capturaRedis) {
	captura := &capturaRedis{}
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	rdb.AddHook(captura)
	return rdb, captura
}

// ─── ProductoRepository ──────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos   map[uuid.UUID]*model.Producto
	stockDeltas map[uuid.UUID][]int
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func newStubProductoRepo(productos ...*model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{
		productos:   make(map[uuid.UUID]*model.Producto),
		stockDeltas: make(map[uuid.UUID][]int),
	}
	for _, p := range productos {
		r.productos[p.ID] = p
	}
	return r
}

func (r *stubProductoRepo) Create(ctx context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindBySKU(ctx context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListStockBajo(ctx context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.StockActual <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(ctx context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) SetImagenURL(ctx context.Context, id uuid.UUID, url string) error {
	if p, ok := r.productos[id]; ok {
		p.ImagenURL = &url
	}
	return nil
}

func (r *stubProductoRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockActual += delta
	r.stockDeltas[id] = append(r.stockDeltas[id], delta)
	return nil
}

func (r *stubProductoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ─── VentaRepository ─────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func newStubVentaRepo(ventas ...*model.Venta) *stubVentaRepo {
	r := &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
	for _, v := range ventas {
		r.ventas[v.ID] = v
	}
	return r
}

func (r *stubVentaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Items {
		v.Items[i].ID = uuid.New()
		v.Items[i].VentaID = v.ID
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListEntre(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(desde) && v.CreatedAt.Before(hasta) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) DeleteConItemsTx(tx *gorm.DB, id uuid.UUID) error {
	if _, ok := r.ventas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) ResumenEntre(ctx context.Context, desde, hasta time.Time) (int, decimal.Decimal, error) {
	count, total := 0, decimal.Zero
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(desde) && v.CreatedAt.Before(hasta) {
			count++
			total = total.Add(v.Total)
		}
	}
	return count, total, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ─── ClienteRepository ───────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes    map[uuid.UUID]*model.Cliente
	referencias int64
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func newStubClienteRepo(clientes ...*model.Cliente) *stubClienteRepo {
	r := &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
	for _, c := range clientes {
		r.clientes[c.ID] = c
	}
	return r
}

func (r *stubClienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) CountReferencias(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.referencias, nil
}

// ─── MovimientoRepository ────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoInventario
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

func (r *stubMovimientoRepo) Create(ctx context.Context, m *model.MovimientoInventario) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovimientoRepo) CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(ctx context.Context, filter repository.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	var out []model.MovimientoInventario
	for _, m := range r.movimientos {
		if filter.ProductoID != nil && m.ProductoID != *filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

// porTipo returns the recorded movimientos matching tipo, in insertion order.
func (r *stubMovimientoRepo) porTipo(tipo string) []model.MovimientoInventario {
	var out []model.MovimientoInventario
	for _, m := range r.movimientos {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

// ─── IngredienteRepository ───────────────────────────────────────────────────

type stubIngredienteRepo struct {
	ingredientes map[uuid.UUID]*model.Ingrediente
}

var _ repository.IngredienteRepository = (*stubIngredienteRepo)(nil)

func newStubIngredienteRepo(ingredientes ...*model.Ingrediente) *stubIngredienteRepo {
	r := &stubIngredienteRepo{ingredientes: make(map[uuid.UUID]*model.Ingrediente)}
	for _, i := range ingredientes {
		r.ingredientes[i.ID] = i
	}
	return r
}

func (r *stubIngredienteRepo) Create(ctx context.Context, i *model.Ingrediente) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredientes[i.ID] = i
	return nil
}

func (r *stubIngredienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	i, ok := r.ingredientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubIngredienteRepo) ListActivos(ctx context.Context) ([]model.Ingrediente, error) {
	var out []model.Ingrediente
	for _, i := range r.ingredientes {
		if i.Activo {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubIngredienteRepo) ListAll(ctx context.Context) ([]model.Ingrediente, error) {
	out := make([]model.Ingrediente, 0, len(r.ingredientes))
	for _, i := range r.ingredientes {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubIngredienteRepo) Update(ctx context.Context, i *model.Ingrediente) error {
	r.ingredientes[i.ID] = i
	return nil
}

func (r *stubIngredienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if i, ok := r.ingredientes[id]; ok {
		i.Activo = false
	}
	return nil
}

// ─── CotizacionRepository ────────────────────────────────────────────────────

type stubCotizacionRepo struct {
	cotizaciones map[uuid.UUID]*model.Cotizacion
	creates      int
}

var _ repository.CotizacionRepository = (*stubCotizacionRepo)(nil)

func newStubCotizacionRepo(cotizaciones ...*model.Cotizacion) *stubCotizacionRepo {
	r := &stubCotizacionRepo{cotizaciones: make(map[uuid.UUID]*model.Cotizacion)}
	for _, c := range cotizaciones {
		r.cotizaciones[c.ID] = c
	}
	return r
}

func (r *stubCotizacionRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.cotizaciones[c.ID] = c
	r.creates++
	return nil
}

func (r *stubCotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCotizacionRepo) List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var out []model.Cotizacion
	for _, c := range r.cotizaciones {
		if filter.Tipo != "" && c.Tipo != filter.Tipo {
			continue
		}
		if filter.Estado != "" && c.Estado != filter.Estado {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCotizacionRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	return nil
}

func (r *stubCotizacionRepo) DeleteConLineas(ctx context.Context, id uuid.UUID) error {
	delete(r.cotizaciones, id)
	return nil
}

func (r *stubCotizacionRepo) DB() *gorm.DB { return nil }

// ─── MetaRepository ──────────────────────────────────────────────────────────

type stubMetaRepo struct {
	metas map[[2]int]*model.Meta
}

var _ repository.MetaRepository = (*stubMetaRepo)(nil)

func newStubMetaRepo(metas ...*model.Meta) *stubMetaRepo {
	r := &stubMetaRepo{metas: make(map[[2]int]*model.Meta)}
	for _, m := range metas {
		r.metas[[2]int{m.Anio, m.Mes}] = m
	}
	return r
}

func (r *stubMetaRepo) Upsert(ctx context.Context, m *model.Meta) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.metas[[2]int{m.Anio, m.Mes}] = m
	return nil
}

func (r *stubMetaRepo) FindPorPeriodo(ctx context.Context, anio, mes int) (*model.Meta, error) {
	m, ok := r.metas[[2]int{anio, mes}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMetaRepo) List(ctx context.Context, anio int) ([]model.Meta, error) {
	var out []model.Meta
	for _, m := range r.metas {
		if m.Anio == anio {
			out = append(out, *m)
		}
	}
	return out, nil
}
