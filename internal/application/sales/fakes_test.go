package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// memStore estado en memoria compartido por los fakes. fakeTxRunner trabaja
// sobre una copia y solo la publica si fn no devolvió error, imitando el
// Commit/Rollback del runner real.
type memStore struct {
	productos    map[string]*entity.Producto
	unidades     map[string]*entity.UnidadSerializada
	movimientos  []*entity.MovimientoStock
	alertas      []*entity.AlertaStock
	clientes     map[string]*entity.Cliente
	ventas       map[string]*entity.Venta
	detalles     []*entity.DetalleVenta
	pagos        []*entity.PagoVenta
	lineasConsig []*entity.DetalleConsignacion
}

func newMemStore() *memStore {
	return &memStore{
		productos: make(map[string]*entity.Producto),
		unidades:  make(map[string]*entity.UnidadSerializada),
		clientes:  make(map[string]*entity.Cliente),
		ventas:    make(map[string]*entity.Venta),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.productos {
		cv := *v
		c.productos[k] = &cv
	}
	for k, v := range s.unidades {
		cv := *v
		c.unidades[k] = &cv
	}
	for k, v := range s.clientes {
		cv := *v
		c.clientes[k] = &cv
	}
	for k, v := range s.ventas {
		cv := *v
		c.ventas[k] = &cv
	}
	c.movimientos = append(c.movimientos, s.movimientos...)
	c.alertas = append(c.alertas, s.alertas...)
	c.detalles = append(c.detalles, s.detalles...)
	c.pagos = append(c.pagos, s.pagos...)
	c.lineasConsig = append(c.lineasConsig, s.lineasConsig...)
	return c
}

type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ProductoRepository,
	repository.UnidadRepository,
	repository.MovimientoRepository,
	repository.AlertaRepository,
) error) error {
	work := r.store.clone()
	err := fn(&memProductoRepo{work}, &memUnidadRepo{work}, &memMovimientoRepo{work}, &memAlertaRepo{work})
	if err != nil {
		return err
	}
	*r.store = *work
	return nil
}

func (r *fakeTxRunner) RunVentas(_ context.Context, fn func(
	repository.ProductoRepository,
	repository.UnidadRepository,
	repository.MovimientoRepository,
	repository.AlertaRepository,
	repository.VentaRepository,
) error) error {
	work := r.store.clone()
	err := fn(&memProductoRepo{work}, &memUnidadRepo{work}, &memMovimientoRepo{work}, &memAlertaRepo{work}, &memVentaRepo{work})
	if err != nil {
		return err
	}
	*r.store = *work
	return nil
}

type memProductoRepo struct{ store *memStore }

func (r *memProductoRepo) Crear(p *entity.Producto) error {
	cp := *p
	r.store.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := r.store.productos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	for _, p := range r.store.productos {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductoRepo) GetForUpdate(id string) (*entity.Producto, error) { return r.GetByID(id) }

func (r *memProductoRepo) Actualizar(p *entity.Producto) error {
	cp := *p
	r.store.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) ActualizarStock(id string, stockActual int, estado entity.EstadoProducto) error {
	if p, ok := r.store.productos[id]; ok {
		p.StockActual = stockActual
		p.Estado = estado
	}
	return nil
}

func (r *memProductoRepo) Listar(limit, offset int) ([]*entity.Producto, error) { return nil, nil }

func (r *memProductoRepo) Desactivar(id string) error {
	if p, ok := r.store.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

type memUnidadRepo struct{ store *memStore }

func (r *memUnidadRepo) Crear(u *entity.UnidadSerializada) error {
	cu := *u
	r.store.unidades[u.Serial] = &cu
	return nil
}

func (r *memUnidadRepo) GetBySerial(serial string) (*entity.UnidadSerializada, error) {
	u, ok := r.store.unidades[serial]
	if !ok {
		return nil, nil
	}
	cu := *u
	return &cu, nil
}

func (r *memUnidadRepo) GetBySerialForUpdate(serial string) (*entity.UnidadSerializada, error) {
	return r.GetBySerial(serial)
}

func (r *memUnidadRepo) Actualizar(u *entity.UnidadSerializada) error {
	cu := *u
	r.store.unidades[u.Serial] = &cu
	return nil
}

func (r *memUnidadRepo) ListarPorProducto(string, int, int) ([]*entity.UnidadSerializada, error) {
	return nil, nil
}

func (r *memUnidadRepo) ListarPorEstado(entity.EstadoUnidad, int, int) ([]*entity.UnidadSerializada, error) {
	return nil, nil
}

type memMovimientoRepo struct{ store *memStore }

func (r *memMovimientoRepo) Crear(m *entity.MovimientoStock) error {
	cm := *m
	r.store.movimientos = append(r.store.movimientos, &cm)
	return nil
}

func (r *memMovimientoRepo) ListarPorProducto(string, *time.Time, *time.Time, int, int) ([]*entity.MovimientoStock, error) {
	return nil, nil
}

func (r *memMovimientoRepo) ListarPorReferencia(referencia string) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, m := range r.store.movimientos {
		if m.Referencia == referencia {
			cm := *m
			out = append(out, &cm)
		}
	}
	return out, nil
}

type memAlertaRepo struct{ store *memStore }

func (r *memAlertaRepo) Crear(a *entity.AlertaStock) error {
	ca := *a
	r.store.alertas = append(r.store.alertas, &ca)
	return nil
}

func (r *memAlertaRepo) ListarActivas(int, int) ([]*entity.AlertaStock, error) { return nil, nil }

func (r *memAlertaRepo) ListarPorProducto(string, int, int) ([]*entity.AlertaStock, error) {
	return nil, nil
}

func (r *memAlertaRepo) Resolver(string) error { return nil }

type memVentaRepo struct{ store *memStore }

func (r *memVentaRepo) Crear(v *entity.Venta) error {
	cv := *v
	r.store.ventas[v.ID] = &cv
	return nil
}

func (r *memVentaRepo) CrearDetalle(d *entity.DetalleVenta) error {
	cd := *d
	r.store.detalles = append(r.store.detalles, &cd)
	return nil
}

func (r *memVentaRepo) CrearPago(p *entity.PagoVenta) error {
	cp := *p
	r.store.pagos = append(r.store.pagos, &cp)
	return nil
}

func (r *memVentaRepo) GetByID(id string) (*entity.Venta, error) {
	v, ok := r.store.ventas[id]
	if !ok {
		return nil, nil
	}
	cv := *v
	return &cv, nil
}

func (r *memVentaRepo) ListarDetalles(ventaID string) ([]*entity.DetalleVenta, error) {
	var out []*entity.DetalleVenta
	for _, d := range r.store.detalles {
		if d.VentaID == ventaID {
			cd := *d
			out = append(out, &cd)
		}
	}
	return out, nil
}

func (r *memVentaRepo) ListarPagos(ventaID string) ([]*entity.PagoVenta, error) {
	var out []*entity.PagoVenta
	for _, p := range r.store.pagos {
		if p.VentaID == ventaID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memVentaRepo) Listar(int, int) ([]*entity.Venta, error) { return nil, nil }

func (r *memVentaRepo) Eliminar(id string) error {
	delete(r.store.ventas, id)
	var detalles []*entity.DetalleVenta
	for _, d := range r.store.detalles {
		if d.VentaID != id {
			detalles = append(detalles, d)
		}
	}
	r.store.detalles = detalles
	var pagos []*entity.PagoVenta
	for _, p := range r.store.pagos {
		if p.VentaID != id {
			pagos = append(pagos, p)
		}
	}
	r.store.pagos = pagos
	return nil
}

type memClienteRepo struct{ store *memStore }

func (r *memClienteRepo) Crear(c *entity.Cliente) error {
	cc := *c
	r.store.clientes[c.ID] = &cc
	return nil
}

func (r *memClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	c, ok := r.store.clientes[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memClienteRepo) Listar(int, int) ([]*entity.Cliente, error) { return nil, nil }

// memConsignacionLookup resuelve líneas de consignación por venta.
type memConsignacionLookup struct{ store *memStore }

func (r *memConsignacionLookup) ListarDetallesPorVenta(ventaID string) ([]*entity.DetalleConsignacion, error) {
	var out []*entity.DetalleConsignacion
	for _, d := range r.store.lineasConsig {
		if d.VentaID != nil && *d.VentaID == ventaID {
			cd := *d
			out = append(out, &cd)
		}
	}
	return out, nil
}

// tasaFija oráculo de tasas con valores fijos por moneda.
type tasaFija map[string]decimal.Decimal

func (t tasaFija) TasaActual(moneda string) (decimal.Decimal, error) {
	if moneda == entity.MonedaBase {
		return decimal.NewFromInt(1), nil
	}
	tasa, ok := t[moneda]
	if !ok {
		return decimal.Decimal{}, domain.ErrTasaNoDisponible
	}
	return tasa, nil
}
