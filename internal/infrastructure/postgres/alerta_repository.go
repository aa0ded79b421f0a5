package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.AlertaRepository = (*AlertaRepo)(nil)

const alertaColumns = `id, producto_id, tipo, stock_al_crear, umbral_al_crear,
	mensaje, resuelta, resuelta_at, created_at`

// AlertaRepo implementación sobre PostgreSQL (usable con pool o tx).
type AlertaRepo struct {
	q Querier
}

// NewAlertaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertaRepository(q Querier) *AlertaRepo {
	return &AlertaRepo{q: q}
}

// Crear persiste una alerta de stock.
func (r *AlertaRepo) Crear(a *entity.AlertaStock) error {
	query := `
		INSERT INTO alertas_stock (` + alertaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ProductoID, a.Tipo, a.StockAlCrear, a.UmbralAlCrear,
		a.Mensaje, a.Resuelta, a.ResueltaAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alerta: %w", err)
	}
	return nil
}

// ListarActivas lista alertas no resueltas, más recientes primero.
func (r *AlertaRepo) ListarActivas(limit, offset int) ([]*entity.AlertaStock, error) {
	query := `
		SELECT ` + alertaColumns + `
		FROM alertas_stock WHERE NOT resuelta ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListarPorProducto lista alertas de un producto.
func (r *AlertaRepo) ListarPorProducto(productoID string, limit, offset int) ([]*entity.AlertaStock, error) {
	query := `
		SELECT ` + alertaColumns + `
		FROM alertas_stock WHERE producto_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, productoID, limit, offset)
}

// Resolver marca la alerta como resuelta (única mutación permitida).
func (r *AlertaRepo) Resolver(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE alertas_stock SET resuelta = true, resuelta_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("resolver alerta: %w", err)
	}
	return nil
}

func (r *AlertaRepo) list(query string, args ...any) ([]*entity.AlertaStock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alertas: %w", err)
	}
	defer rows.Close()
	var list []*entity.AlertaStock
	for rows.Next() {
		var a entity.AlertaStock
		if err := rows.Scan(
			&a.ID, &a.ProductoID, &a.Tipo, &a.StockAlCrear, &a.UmbralAlCrear,
			&a.Mensaje, &a.Resuelta, &a.ResueltaAt, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alerta: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
