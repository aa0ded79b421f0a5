package consignment

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// memStore estado en memoria de los fakes; fakeTxRunner publica la copia de
// trabajo solo si fn no devolvió error (Commit/Rollback simulado).
type memStore struct {
	productos      map[string]*entity.Producto
	unidades       map[string]*entity.UnidadSerializada
	movimientos    []*entity.MovimientoStock
	alertas        []*entity.AlertaStock
	clientes       map[string]*entity.Cliente
	ventas         map[string]*entity.Venta
	detallesVenta  []*entity.DetalleVenta
	pagos          []*entity.PagoVenta
	consignaciones map[string]*entity.Consignacion
	lineas         map[string]*entity.DetalleConsignacion
	abonos         []*entity.AbonoConsignacion
}

func newMemStore() *memStore {
	return &memStore{
		productos:      make(map[string]*entity.Producto),
		unidades:       make(map[string]*entity.UnidadSerializada),
		clientes:       make(map[string]*entity.Cliente),
		ventas:         make(map[string]*entity.Venta),
		consignaciones: make(map[string]*entity.Consignacion),
		lineas:         make(map[string]*entity.DetalleConsignacion),
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
	for k, v := range s.consignaciones {
		cv := *v
		c.consignaciones[k] = &cv
	}
	for k, v := range s.lineas {
		cv := *v
		c.lineas[k] = &cv
	}
	c.movimientos = append(c.movimientos, s.movimientos...)
	c.alertas = append(c.alertas, s.alertas...)
	c.detallesVenta = append(c.detallesVenta, s.detallesVenta...)
	c.pagos = append(c.pagos, s.pagos...)
	c.abonos = append(c.abonos, s.abonos...)
	return c
}

type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) repos(s *memStore) (repository.ProductoRepository, repository.UnidadRepository, repository.MovimientoRepository, repository.AlertaRepository, repository.VentaRepository, repository.ConsignacionRepository) {
	return &memProductoRepo{s}, &memUnidadRepo{s}, &memMovimientoRepo{s}, &memAlertaRepo{s}, &memVentaRepo{s}, &memConsignacionRepo{s}
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ProductoRepository,
	repository.UnidadRepository,
	repository.MovimientoRepository,
	repository.AlertaRepository,
) error) error {
	work := r.store.clone()
	p, u, m, a, _, _ := r.repos(work)
	if err := fn(p, u, m, a); err != nil {
		return err
	}
	*r.store = *work
	return nil
}

func (r *fakeTxRunner) RunConsignacion(_ context.Context, fn func(
	repository.ProductoRepository,
	repository.UnidadRepository,
	repository.MovimientoRepository,
	repository.AlertaRepository,
	repository.VentaRepository,
	repository.ConsignacionRepository,
) error) error {
	work := r.store.clone()
	p, u, m, a, v, c := r.repos(work)
	if err := fn(p, u, m, a, v, c); err != nil {
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

func (r *memProductoRepo) GetByCodigo(string) (*entity.Producto, error) { return nil, nil }

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

func (r *memProductoRepo) Listar(int, int) ([]*entity.Producto, error) { return nil, nil }

func (r *memProductoRepo) Desactivar(string) error { return nil }

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

func (r *memMovimientoRepo) ListarPorReferencia(string) ([]*entity.MovimientoStock, error) {
	return nil, nil
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
	r.store.detallesVenta = append(r.store.detallesVenta, &cd)
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
	for _, d := range r.store.detallesVenta {
		if d.VentaID == ventaID {
			cd := *d
			out = append(out, &cd)
		}
	}
	return out, nil
}

func (r *memVentaRepo) ListarPagos(string) ([]*entity.PagoVenta, error) { return nil, nil }

func (r *memVentaRepo) Listar(int, int) ([]*entity.Venta, error) { return nil, nil }

func (r *memVentaRepo) Eliminar(id string) error {
	delete(r.store.ventas, id)
	return nil
}

type memConsignacionRepo struct{ store *memStore }

func (r *memConsignacionRepo) Crear(c *entity.Consignacion) error {
	cc := *c
	r.store.consignaciones[c.ID] = &cc
	return nil
}

func (r *memConsignacionRepo) CrearDetalle(d *entity.DetalleConsignacion) error {
	cd := *d
	r.store.lineas[d.ID] = &cd
	return nil
}

func (r *memConsignacionRepo) GetByID(id string) (*entity.Consignacion, error) {
	c, ok := r.store.consignaciones[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memConsignacionRepo) GetDetalleForUpdate(id string) (*entity.DetalleConsignacion, error) {
	d, ok := r.store.lineas[id]
	if !ok {
		return nil, nil
	}
	cd := *d
	return &cd, nil
}

func (r *memConsignacionRepo) ActualizarDetalle(d *entity.DetalleConsignacion) error {
	cd := *d
	r.store.lineas[d.ID] = &cd
	return nil
}

func (r *memConsignacionRepo) ListarDetalles(consignacionID string) ([]*entity.DetalleConsignacion, error) {
	var out []*entity.DetalleConsignacion
	for _, d := range r.store.lineas {
		if d.ConsignacionID == consignacionID {
			cd := *d
			out = append(out, &cd)
		}
	}
	return out, nil
}

func (r *memConsignacionRepo) ListarDetallesPorVenta(ventaID string) ([]*entity.DetalleConsignacion, error) {
	var out []*entity.DetalleConsignacion
	for _, d := range r.store.lineas {
		if d.VentaID != nil && *d.VentaID == ventaID {
			cd := *d
			out = append(out, &cd)
		}
	}
	return out, nil
}

func (r *memConsignacionRepo) ListarPendientesPorConsignatario(clienteID string) ([]*entity.DetalleConsignacion, error) {
	var out []*entity.DetalleConsignacion
	for _, d := range r.store.lineas {
		consig := r.store.consignaciones[d.ConsignacionID]
		if consig != nil && consig.ConsignatarioID == clienteID && d.Estado == entity.LineaEntregada {
			cd := *d
			out = append(out, &cd)
		}
	}
	return out, nil
}

func (r *memConsignacionRepo) CrearAbono(a *entity.AbonoConsignacion) error {
	ca := *a
	r.store.abonos = append(r.store.abonos, &ca)
	return nil
}

func (r *memConsignacionRepo) ListarAbonos(clienteID string, limit, offset int) ([]*entity.AbonoConsignacion, error) {
	var out []*entity.AbonoConsignacion
	for _, a := range r.store.abonos {
		if a.ClienteID == clienteID {
			ca := *a
			out = append(out, &ca)
		}
	}
	return out, nil
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
