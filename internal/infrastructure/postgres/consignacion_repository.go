package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ConsignacionRepository = (*ConsignacionRepo)(nil)

const detalleConsigColumns = `id, consignacion_id, producto_id, serial,
	precio_consignacion, estado, venta_id, fecha_resuelto`

// ConsignacionRepo implementación sobre PostgreSQL (usable con pool o tx).
type ConsignacionRepo struct {
	q Querier
}

// NewConsignacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsignacionRepository(q Querier) *ConsignacionRepo {
	return &ConsignacionRepo{q: q}
}

// Crear persiste la cabecera de la consignación.
func (r *ConsignacionRepo) Crear(c *entity.Consignacion) error {
	query := `
		INSERT INTO consignaciones (id, consignatario_id, fecha_entrega, fecha_limite, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ConsignatarioID, c.FechaEntrega, c.FechaLimite, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consignacion: %w", err)
	}
	return nil
}

// CrearDetalle persiste una línea de consignación.
func (r *ConsignacionRepo) CrearDetalle(d *entity.DetalleConsignacion) error {
	query := `
		INSERT INTO detalles_consignacion (` + detalleConsigColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.ConsignacionID, d.ProductoID, d.Serial,
		d.PrecioConsignacion, d.Estado, d.VentaID, d.FechaResuelto,
	)
	if err != nil {
		return fmt.Errorf("insert detalle consignacion: %w", err)
	}
	return nil
}

// GetByID obtiene una consignación.
func (r *ConsignacionRepo) GetByID(id string) (*entity.Consignacion, error) {
	query := `
		SELECT id, consignatario_id, fecha_entrega, fecha_limite, created_at
		FROM consignaciones WHERE id = $1`
	var c entity.Consignacion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ConsignatarioID, &c.FechaEntrega, &c.FechaLimite, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consignacion: %w", err)
	}
	return &c, nil
}

// GetDetalleForUpdate obtiene la línea y bloquea la fila (SELECT FOR UPDATE).
func (r *ConsignacionRepo) GetDetalleForUpdate(id string) (*entity.DetalleConsignacion, error) {
	query := `
		SELECT ` + detalleConsigColumns + `
		FROM detalles_consignacion WHERE id = $1 FOR UPDATE`
	var d entity.DetalleConsignacion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.ConsignacionID, &d.ProductoID, &d.Serial,
		&d.PrecioConsignacion, &d.Estado, &d.VentaID, &d.FechaResuelto,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detalle consignacion: %w", err)
	}
	return &d, nil
}

// ActualizarDetalle guarda estado y resolución de la línea.
func (r *ConsignacionRepo) ActualizarDetalle(d *entity.DetalleConsignacion) error {
	query := `
		UPDATE detalles_consignacion
		SET estado = $2, venta_id = $3, fecha_resuelto = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, d.ID, d.Estado, d.VentaID, d.FechaResuelto)
	if err != nil {
		return fmt.Errorf("update detalle consignacion: %w", err)
	}
	return nil
}

// ListarDetalles lista las líneas de una consignación.
func (r *ConsignacionRepo) ListarDetalles(consignacionID string) ([]*entity.DetalleConsignacion, error) {
	query := `
		SELECT ` + detalleConsigColumns + `
		FROM detalles_consignacion WHERE consignacion_id = $1 ORDER BY id`
	return r.listDetalles(query, consignacionID)
}

// ListarDetallesPorVenta lista las líneas resueltas contra una venta.
func (r *ConsignacionRepo) ListarDetallesPorVenta(ventaID string) ([]*entity.DetalleConsignacion, error) {
	query := `
		SELECT ` + detalleConsigColumns + `
		FROM detalles_consignacion WHERE venta_id = $1 ORDER BY id`
	return r.listDetalles(query, ventaID)
}

// ListarPendientesPorConsignatario lista líneas ENTREGADO de un consignatario.
func (r *ConsignacionRepo) ListarPendientesPorConsignatario(clienteID string) ([]*entity.DetalleConsignacion, error) {
	query := `
		SELECT d.id, d.consignacion_id, d.producto_id, d.serial,
		       d.precio_consignacion, d.estado, d.venta_id, d.fecha_resuelto
		FROM detalles_consignacion d
		JOIN consignaciones c ON c.id = d.consignacion_id
		WHERE c.consignatario_id = $1 AND d.estado = $2
		ORDER BY c.fecha_entrega`
	return r.listDetalles(query, clienteID, entity.LineaEntregada)
}

func (r *ConsignacionRepo) listDetalles(query string, args ...any) ([]*entity.DetalleConsignacion, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list detalles consignacion: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleConsignacion
	for rows.Next() {
		var d entity.DetalleConsignacion
		if err := rows.Scan(
			&d.ID, &d.ConsignacionID, &d.ProductoID, &d.Serial,
			&d.PrecioConsignacion, &d.Estado, &d.VentaID, &d.FechaResuelto,
		); err != nil {
			return nil, fmt.Errorf("scan detalle consignacion: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CrearAbono persiste un abono de consignatario.
func (r *ConsignacionRepo) CrearAbono(a *entity.AbonoConsignacion) error {
	query := `
		INSERT INTO abonos_consignacion (id, cliente_id, consignacion_id, monto, metodo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ClienteID, a.ConsignacionID, a.Monto, a.Metodo, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert abono: %w", err)
	}
	return nil
}

// ListarAbonos lista abonos de un consignatario, más recientes primero.
func (r *ConsignacionRepo) ListarAbonos(clienteID string, limit, offset int) ([]*entity.AbonoConsignacion, error) {
	query := `
		SELECT id, cliente_id, consignacion_id, monto, metodo, created_at
		FROM abonos_consignacion WHERE cliente_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clienteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list abonos: %w", err)
	}
	defer rows.Close()
	var list []*entity.AbonoConsignacion
	for rows.Next() {
		var a entity.AbonoConsignacion
		if err := rows.Scan(&a.ID, &a.ClienteID, &a.ConsignacionID, &a.Monto, &a.Metodo, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan abono: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
