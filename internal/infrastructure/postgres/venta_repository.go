package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

const ventaColumns = `id, numero_orden, cliente_id, usuario_id, fecha, subtotal, descuento,
	impuesto, total, estado_pago, estado_entrega, tipo, created_at`

// VentaRepo implementación de VentaRepository sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Crear persiste la cabecera de la venta.
func (r *VentaRepo) Crear(v *entity.Venta) error {
	query := `
		INSERT INTO ventas (` + ventaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.NumeroOrden, v.ClienteID, v.UsuarioID, v.Fecha, v.Subtotal, v.Descuento,
		v.Impuesto, v.Total, v.EstadoPago, v.EstadoEntrega, v.Tipo, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CrearDetalle persiste una línea de la venta.
func (r *VentaRepo) CrearDetalle(d *entity.DetalleVenta) error {
	query := `
		INSERT INTO detalles_venta (id, venta_id, producto_id, cantidad, precio_unitario, descuento, subtotal, serial)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.VentaID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.Descuento, d.Subtotal, d.Serial,
	)
	if err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// CrearPago persiste un pago de la venta.
func (r *VentaRepo) CrearPago(p *entity.PagoVenta) error {
	query := `
		INSERT INTO pagos_venta (id, venta_id, metodo, moneda, monto, monto_base, referencia, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.VentaID, p.Metodo, p.Moneda, p.Monto, p.MontoBase, p.Referencia, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pago venta: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE id = $1`
	var v entity.Venta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.NumeroOrden, &v.ClienteID, &v.UsuarioID, &v.Fecha, &v.Subtotal, &v.Descuento,
		&v.Impuesto, &v.Total, &v.EstadoPago, &v.EstadoEntrega, &v.Tipo, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &v, nil
}

// ListarDetalles lista las líneas de una venta.
func (r *VentaRepo) ListarDetalles(ventaID string) ([]*entity.DetalleVenta, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, descuento, subtotal, serial
		FROM detalles_venta WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad,
			&d.PrecioUnitario, &d.Descuento, &d.Subtotal, &d.Serial); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListarPagos lista los pagos de una venta.
func (r *VentaRepo) ListarPagos(ventaID string) ([]*entity.PagoVenta, error) {
	query := `
		SELECT id, venta_id, metodo, moneda, monto, monto_base, referencia, created_at
		FROM pagos_venta WHERE venta_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list pagos venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.PagoVenta
	for rows.Next() {
		var p entity.PagoVenta
		if err := rows.Scan(&p.ID, &p.VentaID, &p.Metodo, &p.Moneda,
			&p.Monto, &p.MontoBase, &p.Referencia, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pago venta: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Listar lista ventas paginadas, más recientes primero.
func (r *VentaRepo) Listar(limit, offset int) ([]*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(
			&v.ID, &v.NumeroOrden, &v.ClienteID, &v.UsuarioID, &v.Fecha, &v.Subtotal, &v.Descuento,
			&v.Impuesto, &v.Total, &v.EstadoPago, &v.EstadoEntrega, &v.Tipo, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Eliminar borra la venta con pagos y detalles. Solo lo usa AnularVenta,
// en la misma tx que revierte el stock.
func (r *VentaRepo) Eliminar(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM pagos_venta WHERE venta_id = $1`, id); err != nil {
		return fmt.Errorf("delete pagos venta: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM detalles_venta WHERE venta_id = $1`, id); err != nil {
		return fmt.Errorf("delete detalles venta: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM ventas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	return nil
}
