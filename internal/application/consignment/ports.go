package consignment

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ConsignacionTxRunner abre una transacción con los repositorios del ciclo de
// consignación: inventario, ventas (para reportar vendidas) y consignaciones.
type ConsignacionTxRunner interface {
	RunConsignacion(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
		ventaRepo repository.VentaRepository,
		consigRepo repository.ConsignacionRepository,
	) error) error
}
