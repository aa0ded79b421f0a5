package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ConsignacionRepository puerto de persistencia para consignaciones,
// sus líneas y los abonos de consignatarios.
type ConsignacionRepository interface {
	Crear(c *entity.Consignacion) error
	CrearDetalle(d *entity.DetalleConsignacion) error
	GetByID(id string) (*entity.Consignacion, error)
	// GetDetalleForUpdate bloquea la línea (SELECT ... FOR UPDATE).
	GetDetalleForUpdate(id string) (*entity.DetalleConsignacion, error)
	ActualizarDetalle(d *entity.DetalleConsignacion) error
	ListarDetalles(consignacionID string) ([]*entity.DetalleConsignacion, error)
	// ListarDetallesPorVenta líneas resueltas contra una venta (reporte de
	// vendidas); identifica ventas de origen consignación.
	ListarDetallesPorVenta(ventaID string) ([]*entity.DetalleConsignacion, error)
	ListarPendientesPorConsignatario(clienteID string) ([]*entity.DetalleConsignacion, error)
	CrearAbono(a *entity.AbonoConsignacion) error
	ListarAbonos(clienteID string, limit, offset int) ([]*entity.AbonoConsignacion, error)
}
