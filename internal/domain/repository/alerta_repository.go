package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// AlertaRepository puerto para alertas de stock. Inserción append-only;
// resolver es la única mutación permitida.
type AlertaRepository interface {
	Crear(a *entity.AlertaStock) error
	ListarActivas(limit, offset int) ([]*entity.AlertaStock, error)
	ListarPorProducto(productoID string, limit, offset int) ([]*entity.AlertaStock, error)
	Resolver(id string) error
}
