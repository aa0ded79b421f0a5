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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, codigo, nombre, descripcion, precio_venta, precio_costo,
	stock_actual, stock_minimo, stock_advertencia, estado, serializado, activo, created_at, updated_at`

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Crear persiste un nuevo producto.
func (r *ProductoRepo) Crear(p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.PrecioVenta, p.PrecioCosto,
		p.StockActual, p.StockMinimo, p.StockAdvertencia, p.Estado, p.Serializado,
		p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	return r.get(`SELECT `+productoColumns+` FROM productos WHERE id = $1`, id)
}

// GetByCodigo obtiene un producto por su código único.
func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	return r.get(`SELECT `+productoColumns+` FROM productos WHERE codigo = $1`, codigo)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// El lock vive hasta el Commit/Rollback de la tx del Querier.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	return r.get(`SELECT `+productoColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductoRepo) get(query string, arg any) (*entity.Producto, error) {
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.PrecioVenta, &p.PrecioCosto,
		&p.StockActual, &p.StockMinimo, &p.StockAdvertencia, &p.Estado, &p.Serializado,
		&p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// Actualizar guarda los campos de catálogo, umbrales y estado reclasificado.
func (r *ProductoRepo) Actualizar(p *entity.Producto) error {
	query := `
		UPDATE productos
		SET nombre = $2, descripcion = $3, precio_venta = $4, precio_costo = $5,
		    stock_minimo = $6, stock_advertencia = $7, estado = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Descripcion, p.PrecioVenta, p.PrecioCosto,
		p.StockMinimo, p.StockAdvertencia, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// ActualizarStock escribe stock y estado derivado. Solo lo llama el ledger,
// dentro de la tx que sostiene el lock de GetForUpdate.
func (r *ProductoRepo) ActualizarStock(id string, stockActual int, estado entity.EstadoProducto) error {
	query := `UPDATE productos SET stock_actual = $2, estado = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, stockActual, estado)
	if err != nil {
		return fmt.Errorf("update stock producto: %w", err)
	}
	return nil
}

// Listar lista productos activos paginados.
func (r *ProductoRepo) Listar(limit, offset int) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos WHERE activo ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(
			&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.PrecioVenta, &p.PrecioCosto,
			&p.StockActual, &p.StockMinimo, &p.StockAdvertencia, &p.Estado, &p.Serializado,
			&p.Activo, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Desactivar baja suave del producto.
func (r *ProductoRepo) Desactivar(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("desactivar producto: %w", err)
	}
	return nil
}
