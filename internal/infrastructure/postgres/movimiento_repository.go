package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

const movimientoColumns = `id, producto_id, tipo, cantidad, stock_anterior, stock_posterior,
	referencia, motivo, creado_por, created_at`

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: la tabla es el ledger de auditoría.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Crear persiste un movimiento de stock.
func (r *MovimientoRepo) Crear(m *entity.MovimientoStock) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_stock (` + movimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	creadoPor := (*string)(nil)
	if m.CreadoPor != "" {
		creadoPor = &m.CreadoPor
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductoID, m.Tipo, m.Cantidad, m.StockAnterior, m.StockPosterior,
		m.Referencia, m.Motivo, creadoPor, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListarPorProducto lista movimientos de un producto en un rango de fechas.
func (r *MovimientoRepo) ListarPorProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos_stock WHERE producto_id = $1`
	args := []any{productoID}
	pos := 2
	if desde != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *desde)
		pos++
	}
	if hasta != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *hasta)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListarPorReferencia lista todos los movimientos con una referencia
// (los de una venta o una consignación), en orden de inserción.
func (r *MovimientoRepo) ListarPorReferencia(referencia string) ([]*entity.MovimientoStock, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos_stock WHERE referencia = $1 ORDER BY created_at`
	return r.list(query, referencia)
}

func (r *MovimientoRepo) list(query string, args ...any) ([]*entity.MovimientoStock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoStock
	for rows.Next() {
		var m entity.MovimientoStock
		var creadoPor *string
		if err := rows.Scan(
			&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.StockAnterior, &m.StockPosterior,
			&m.Referencia, &m.Motivo, &creadoPor, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if creadoPor != nil {
			m.CreadoPor = *creadoPor
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
