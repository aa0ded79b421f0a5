package repository

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// MovimientoRepository puerto para el ledger de movimientos de stock.
// Solo inserción: los movimientos son el registro de auditoría y no se
// editan ni se borran.
type MovimientoRepository interface {
	Crear(m *entity.MovimientoStock) error
	ListarPorProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error)
	ListarPorReferencia(referencia string) ([]*entity.MovimientoStock, error)
}
