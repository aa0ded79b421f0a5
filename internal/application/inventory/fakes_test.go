package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// memStore estado compartido de los repos en memoria. fakeTxRunner trabaja
// sobre una copia y solo la publica si fn termina sin error, imitando el
// Commit/Rollback real.
type memStore struct {
	productos   map[string]*entity.Producto
	unidades    map[string]*entity.UnidadSerializada // por serial
	movimientos []*entity.MovimientoStock
	alertas     []*entity.AlertaStock
}

func newMemStore() *memStore {
	return &memStore{
		productos: make(map[string]*entity.Producto),
		unidades:  make(map[string]*entity.UnidadSerializada),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.productos {
		cp := *p
		c.productos[id] = &cp
	}
	for serial, u := range s.unidades {
		cu := *u
		c.unidades[serial] = &cu
	}
	c.movimientos = append(c.movimientos, s.movimientos...)
	c.alertas = append(c.alertas, s.alertas...)
	return c
}

type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productoRepo repository.ProductoRepository,
	unidadRepo repository.UnidadRepository,
	movRepo repository.MovimientoRepository,
	alertaRepo repository.AlertaRepository,
) error) error {
	work := r.store.clone()
	err := fn(
		&memProductoRepo{store: work},
		&memUnidadRepo{store: work},
		&memMovimientoRepo{store: work},
		&memAlertaRepo{store: work},
	)
	if err != nil {
		return err
	}
	*r.store = *work
	return nil
}

type memProductoRepo struct {
	store *memStore
}

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

func (r *memProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	return r.GetByID(id)
}

func (r *memProductoRepo) Actualizar(p *entity.Producto) error {
	cp := *p
	r.store.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) ActualizarStock(id string, stockActual int, estado entity.EstadoProducto) error {
	p, ok := r.store.productos[id]
	if !ok {
		return nil
	}
	p.StockActual = stockActual
	p.Estado = estado
	return nil
}

func (r *memProductoRepo) Listar(limit, offset int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.store.productos {
		if p.Activo {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductoRepo) Desactivar(id string) error {
	if p, ok := r.store.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

type memUnidadRepo struct {
	store *memStore
}

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

func (r *memUnidadRepo) ListarPorProducto(productoID string, limit, offset int) ([]*entity.UnidadSerializada, error) {
	var out []*entity.UnidadSerializada
	for _, u := range r.store.unidades {
		if u.ProductoID == productoID {
			cu := *u
			out = append(out, &cu)
		}
	}
	return out, nil
}

func (r *memUnidadRepo) ListarPorEstado(estado entity.EstadoUnidad, limit, offset int) ([]*entity.UnidadSerializada, error) {
	var out []*entity.UnidadSerializada
	for _, u := range r.store.unidades {
		if u.Estado == estado {
			cu := *u
			out = append(out, &cu)
		}
	}
	return out, nil
}

type memMovimientoRepo struct {
	store *memStore
}

func (r *memMovimientoRepo) Crear(m *entity.MovimientoStock) error {
	cm := *m
	r.store.movimientos = append(r.store.movimientos, &cm)
	return nil
}

func (r *memMovimientoRepo) ListarPorProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, m := range r.store.movimientos {
		if m.ProductoID != productoID {
			continue
		}
		if desde != nil && m.CreatedAt.Before(*desde) {
			continue
		}
		if hasta != nil && m.CreatedAt.After(*hasta) {
			continue
		}
		cm := *m
		out = append(out, &cm)
	}
	return out, nil
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

type memAlertaRepo struct {
	store *memStore
}

func (r *memAlertaRepo) Crear(a *entity.AlertaStock) error {
	ca := *a
	r.store.alertas = append(r.store.alertas, &ca)
	return nil
}

func (r *memAlertaRepo) ListarActivas(limit, offset int) ([]*entity.AlertaStock, error) {
	var out []*entity.AlertaStock
	for _, a := range r.store.alertas {
		if !a.Resuelta {
			ca := *a
			out = append(out, &ca)
		}
	}
	return out, nil
}

func (r *memAlertaRepo) ListarPorProducto(productoID string, limit, offset int) ([]*entity.AlertaStock, error) {
	var out []*entity.AlertaStock
	for _, a := range r.store.alertas {
		if a.ProductoID == productoID {
			ca := *a
			out = append(out, &ca)
		}
	}
	return out, nil
}

func (r *memAlertaRepo) Resolver(id string) error {
	for _, a := range r.store.alertas {
		if a.ID == id {
			a.Resuelta = true
		}
	}
	return nil
}
