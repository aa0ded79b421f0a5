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

var _ repository.UnidadRepository = (*UnidadRepo)(nil)

const unidadColumns = `id, serial, producto_id, estado, costo_unitario, garantia_meses,
	origen, precio_venta, fecha_venta, vence_garantia, cliente_id, created_at, updated_at`

// UnidadRepo implementación de UnidadRepository sobre PostgreSQL (usable con pool o tx).
type UnidadRepo struct {
	q Querier
}

// NewUnidadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnidadRepository(q Querier) *UnidadRepo {
	return &UnidadRepo{q: q}
}

// Crear persiste una unidad nueva. Serial tiene constraint único.
func (r *UnidadRepo) Crear(u *entity.UnidadSerializada) error {
	query := `
		INSERT INTO unidades (` + unidadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Serial, u.ProductoID, u.Estado, u.CostoUnitario, u.GarantiaMeses,
		u.Origen, u.PrecioVenta, u.FechaVenta, u.VenceGarantia, u.ClienteID,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSerialDuplicado
		}
		return fmt.Errorf("insert unidad: %w", err)
	}
	return nil
}

// GetBySerial obtiene una unidad por serial.
func (r *UnidadRepo) GetBySerial(serial string) (*entity.UnidadSerializada, error) {
	return r.get(`SELECT `+unidadColumns+` FROM unidades WHERE serial = $1`, serial)
}

// GetBySerialForUpdate obtiene la unidad y bloquea la fila (SELECT FOR UPDATE).
func (r *UnidadRepo) GetBySerialForUpdate(serial string) (*entity.UnidadSerializada, error) {
	return r.get(`SELECT `+unidadColumns+` FROM unidades WHERE serial = $1 FOR UPDATE`, serial)
}

func (r *UnidadRepo) get(query string, arg any) (*entity.UnidadSerializada, error) {
	var u entity.UnidadSerializada
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Serial, &u.ProductoID, &u.Estado, &u.CostoUnitario, &u.GarantiaMeses,
		&u.Origen, &u.PrecioVenta, &u.FechaVenta, &u.VenceGarantia, &u.ClienteID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unidad: %w", err)
	}
	return &u, nil
}

// Actualizar guarda estado y metadatos de venta de la unidad.
func (r *UnidadRepo) Actualizar(u *entity.UnidadSerializada) error {
	query := `
		UPDATE unidades
		SET estado = $2, precio_venta = $3, fecha_venta = $4, vence_garantia = $5,
		    cliente_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Estado, u.PrecioVenta, u.FechaVenta, u.VenceGarantia, u.ClienteID, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update unidad: %w", err)
	}
	return nil
}

// ListarPorProducto lista unidades de un producto.
func (r *UnidadRepo) ListarPorProducto(productoID string, limit, offset int) ([]*entity.UnidadSerializada, error) {
	query := `
		SELECT ` + unidadColumns + `
		FROM unidades WHERE producto_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, productoID, limit, offset)
}

// ListarPorEstado lista unidades en un estado dado.
func (r *UnidadRepo) ListarPorEstado(estado entity.EstadoUnidad, limit, offset int) ([]*entity.UnidadSerializada, error) {
	query := `
		SELECT ` + unidadColumns + `
		FROM unidades WHERE estado = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, estado, limit, offset)
}

func (r *UnidadRepo) list(query string, args ...any) ([]*entity.UnidadSerializada, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list unidades: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnidadSerializada
	for rows.Next() {
		var u entity.UnidadSerializada
		if err := rows.Scan(
			&u.ID, &u.Serial, &u.ProductoID, &u.Estado, &u.CostoUnitario, &u.GarantiaMeses,
			&u.Origen, &u.PrecioVenta, &u.FechaVenta, &u.VenceGarantia, &u.ClienteID,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan unidad: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
