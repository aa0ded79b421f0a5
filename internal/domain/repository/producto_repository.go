package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ProductoRepository define el puerto de persistencia para Producto (DIP).
// StockActual y Estado solo se escriben vía ActualizarStock, dentro de la
// transacción que sostiene el bloqueo de GetForUpdate.
type ProductoRepository interface {
	Crear(p *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByCodigo(codigo string) (*entity.Producto, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE).
	GetForUpdate(id string) (*entity.Producto, error)
	Actualizar(p *entity.Producto) error
	ActualizarStock(id string, stockActual int, estado entity.EstadoProducto) error
	Listar(limit, offset int) ([]*entity.Producto, error)
	Desactivar(id string) error
}
