package tests

import (
	"context"
	"sort"
	"testing"
	"time"

	"gestinv/internal/dto"
	"gestinv/internal/model"
	"gestinv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
//
// In-memory repositories shared by the unit tests in this package. Lookups
// return copies so that services mutating a loaded record do not touch the
// store; only the Tx methods write through.

// stubCategoriaRepo is an in-memory CategoriaRepository.
type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clon := *c
	r.categorias[c.ID] = &clon
	return nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *c
	return &clon, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			clon := *c
			return &clon, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) Listar(_ context.Context) ([]model.Categoria, error) {
	out := make([]model.Categoria, 0, len(r.categorias))
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	clon := *c
	r.categorias[c.ID] = &clon
	return nil
}

func (r *stubCategoriaRepo) EliminarTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

func (r *stubCategoriaRepo) DB() *gorm.DB { return nil }

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// stubProductoRepo is an in-memory ProductoRepository.
type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Crear(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Estado == "" {
		p.Estado = model.EstadoDisponible
	}
	clon := *p
	r.productos[p.ID] = &clon
	return nil
}

func (r *stubProductoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *p
	return &clon, nil
}

func (r *stubProductoRepo) Listar(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		if filter.Estado != "" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListarBajoStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Cantidad <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cantidad < out[j].Cantidad })
	return out, nil
}

func (r *stubProductoRepo) ListarPorRangoEntrada(_ context.Context, desde, hasta *time.Time) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		// solo un rango presente excluye filas sin fecha, como el WHERE real
		if p.FechaEntrada == nil {
			if desde != nil || hasta != nil {
				continue
			}
			out = append(out, *p)
			continue
		}
		if desde != nil && p.FechaEntrada.Before(*desde) {
			continue
		}
		if hasta != nil && p.FechaEntrada.After(*hasta) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Actualizar(_ context.Context, p *model.Producto) error {
	existente, ok := r.productos[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	clon := *p
	// stock is owned by AjustarStockTx, Save must not clobber it
	clon.Cantidad = existente.Cantidad
	r.productos[p.ID] = &clon
	return nil
}

func (r *stubProductoRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) AjustarStockTx(_ *gorm.DB, id uuid.UUID, delta int) (int64, error) {
	p, ok := r.productos[id]
	if !ok || p.Cantidad+delta < 0 {
		return 0, nil
	}
	p.Cantidad += delta
	return 1, nil
}

func (r *stubProductoRepo) DesvincularCategoriaTx(_ *gorm.DB, categoriaID uuid.UUID) error {
	for _, p := range r.productos {
		if p.CategoriaID != nil && *p.CategoriaID == categoriaID {
			p.CategoriaID = nil
			p.Categoria = nil
		}
	}
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubFacturaRepo is an in-memory FacturaRepository. ObtenerPorID attaches a
// detached copy of the product, mirroring a Preload.
type stubFacturaRepo struct {
	facturas  map[uuid.UUID]*model.Factura
	productos *stubProductoRepo
}

func newStubFacturaRepo(productos *stubProductoRepo) *stubFacturaRepo {
	return &stubFacturaRepo{
		facturas:  make(map[uuid.UUID]*model.Factura),
		productos: productos,
	}
}

func (r *stubFacturaRepo) CrearTx(_ *gorm.DB, f *model.Factura) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	clon := *f
	clon.Producto = nil
	r.facturas[f.ID] = &clon
	return nil
}

func (r *stubFacturaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *f
	if p, ok := r.productos.productos[f.ProductoID]; ok {
		pClon := *p
		clon.Producto = &pClon
	}
	return &clon, nil
}

func (r *stubFacturaRepo) ExisteNumeroTx(_ *gorm.DB, numero string) (bool, error) {
	for _, f := range r.facturas {
		if f.NumeroFactura == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubFacturaRepo) Listar(_ context.Context) ([]model.Factura, error) {
	out := make([]model.Factura, 0, len(r.facturas))
	for id := range r.facturas {
		f, _ := r.ObtenerPorID(context.Background(), id)
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFacturaRepo) ListarPorRangoSalida(_ context.Context, desde, hasta *time.Time) ([]model.Factura, error) {
	var out []model.Factura
	for id, f := range r.facturas {
		if f.FechaSalida == nil {
			if desde != nil || hasta != nil {
				continue
			}
			conProducto, _ := r.ObtenerPorID(context.Background(), id)
			out = append(out, *conProducto)
			continue
		}
		if desde != nil && f.FechaSalida.Before(*desde) {
			continue
		}
		if hasta != nil && f.FechaSalida.After(*hasta) {
			continue
		}
		conProducto, _ := r.ObtenerPorID(context.Background(), id)
		out = append(out, *conProducto)
	}
	return out, nil
}

func (r *stubFacturaRepo) ActualizarTx(_ *gorm.DB, f *model.Factura) error {
	if _, ok := r.facturas[f.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clon := *f
	clon.Producto = nil
	r.facturas[f.ID] = &clon
	return nil
}

func (r *stubFacturaRepo) EliminarTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.facturas, id)
	return nil
}

func (r *stubFacturaRepo) DB() *gorm.DB { return nil }

var _ repository.FacturaRepository = (*stubFacturaRepo)(nil)

// stubActividadRepo is an in-memory append-only ActividadRepository.
type stubActividadRepo struct {
	actividades []model.Actividad
}

func newStubActividadRepo() *stubActividadRepo { return &stubActividadRepo{} }

func (r *stubActividadRepo) Crear(_ context.Context, a *model.Actividad) error {
	return r.CrearTx(nil, a)
}

func (r *stubActividadRepo) CrearTx(_ *gorm.DB, a *model.Actividad) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Fecha = time.Now()
	r.actividades = append(r.actividades, *a)
	return nil
}

func (r *stubActividadRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Actividad, error) {
	for i := range r.actividades {
		if r.actividades[i].ID == id {
			clon := r.actividades[i]
			return &clon, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubActividadRepo) Listar(_ context.Context) ([]model.Actividad, error) {
	out := make([]model.Actividad, len(r.actividades))
	// fecha DESC, newest first
	for i := range r.actividades {
		out[len(out)-1-i] = r.actividades[i]
	}
	return out, nil
}

var _ repository.ActividadRepository = (*stubActividadRepo)(nil)

// stubReporteRepo is an in-memory ReporteRepository.
type stubReporteRepo struct {
	reportes map[uuid.UUID]*model.Reporte
}

func newStubReporteRepo() *stubReporteRepo {
	return &stubReporteRepo{reportes: make(map[uuid.UUID]*model.Reporte)}
}

func (r *stubReporteRepo) Crear(_ context.Context, rep *model.Reporte) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	rep.CreatedAt = time.Now()
	clon := *rep
	r.reportes[rep.ID] = &clon
	return nil
}

func (r *stubReporteRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Reporte, error) {
	rep, ok := r.reportes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *rep
	return &clon, nil
}

func (r *stubReporteRepo) Listar(_ context.Context) ([]model.Reporte, error) {
	out := make([]model.Reporte, 0, len(r.reportes))
	for _, rep := range r.reportes {
		out = append(out, *rep)
	}
	return out, nil
}

func (r *stubReporteRepo) Actualizar(_ context.Context, rep *model.Reporte) error {
	clon := *rep
	r.reportes[rep.ID] = &clon
	return nil
}

func (r *stubReporteRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.reportes, id)
	return nil
}

var _ repository.ReporteRepository = (*stubReporteRepo)(nil)

// stubUsuarioRepo is an in-memory UsuarioRepository.
type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Crear(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.FechaCreacion = time.Now()
	clon := *u
	r.usuarios[u.ID] = &clon
	return nil
}

func (r *stubUsuarioRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *u
	return &clon, nil
}

func (r *stubUsuarioRepo) ObtenerPorUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			clon := *u
			return &clon, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) ObtenerPorEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			clon := *u
			return &clon, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) Listar(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListarPorRangoCreacion(_ context.Context, desde, hasta *time.Time) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if desde != nil && u.FechaCreacion.Before(*desde) {
			continue
		}
		if hasta != nil && !u.FechaCreacion.Before(hasta.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Actualizar(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clon := *u
	r.usuarios[u.ID] = &clon
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// stubResumenRepo derives aggregates from the other stubs, mirroring the SQL
// COALESCE queries.
type stubResumenRepo struct {
	categorias  *stubCategoriaRepo
	productos   *stubProductoRepo
	facturas    *stubFacturaRepo
	actividades *stubActividadRepo
}

func (r *stubResumenRepo) ContarCategorias(_ context.Context) (int64, error) {
	return int64(len(r.categorias.categorias)), nil
}

func (r *stubResumenRepo) ContarProductos(_ context.Context) (int64, error) {
	return int64(len(r.productos.productos)), nil
}

func (r *stubResumenRepo) ContarFacturas(_ context.Context) (int64, error) {
	return int64(len(r.facturas.facturas)), nil
}

func (r *stubResumenRepo) ContarActividades(_ context.Context) (int64, error) {
	return int64(len(r.actividades.actividades)), nil
}

func (r *stubResumenRepo) SumarStock(_ context.Context) (int64, error) {
	var total int64
	for _, p := range r.productos.productos {
		total += int64(p.Cantidad)
	}
	return total, nil
}

func (r *stubResumenRepo) SumarVentas(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, f := range r.facturas.facturas {
		total = total.Add(r.totalDe(f))
	}
	return total, nil
}

func (r *stubResumenRepo) ContarFacturasPorFecha(_ context.Context, fecha time.Time) (int64, error) {
	var n int64
	for _, f := range r.facturas.facturas {
		if f.FechaSalida != nil && mismaFecha(*f.FechaSalida, fecha) {
			n++
		}
	}
	return n, nil
}

func (r *stubResumenRepo) SumarVentasPorFecha(_ context.Context, fecha time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, f := range r.facturas.facturas {
		if f.FechaSalida != nil && mismaFecha(*f.FechaSalida, fecha) {
			total = total.Add(r.totalDe(f))
		}
	}
	return total, nil
}

func (r *stubResumenRepo) totalDe(f *model.Factura) decimal.Decimal {
	p, ok := r.productos.productos[f.ProductoID]
	if !ok || p.Valor == nil {
		return decimal.Zero
	}
	return p.Valor.Mul(decimal.NewFromInt(int64(f.Cantidad)))
}

func mismaFecha(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("uuid invalido %q: %v", s, err)
	}
	return id
}

var _ repository.ResumenRepository = (*stubResumenRepo)(nil)
