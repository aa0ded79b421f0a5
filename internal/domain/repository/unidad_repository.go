package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// UnidadRepository puerto de persistencia para unidades serializadas.
// Las unidades nunca se eliminan: solo transicionan de estado.
type UnidadRepository interface {
	Crear(u *entity.UnidadSerializada) error
	GetBySerial(serial string) (*entity.UnidadSerializada, error)
	// GetBySerialForUpdate bloquea la fila de la unidad (SELECT ... FOR UPDATE).
	GetBySerialForUpdate(serial string) (*entity.UnidadSerializada, error)
	Actualizar(u *entity.UnidadSerializada) error
	ListarPorProducto(productoID string, limit, offset int) ([]*entity.UnidadSerializada, error)
	ListarPorEstado(estado entity.EstadoUnidad, limit, offset int) ([]*entity.UnidadSerializada, error)
}
