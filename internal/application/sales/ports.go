package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// VentasTxRunner abre una transacción con los repositorios que necesita la
// liquidación de una venta: inventario más ventas, atados a la misma tx.
type VentasTxRunner interface {
	RunVentas(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}

// TasaProvider oráculo de solo lectura para convertir pagos a la moneda base.
type TasaProvider interface {
	TasaActual(moneda string) (decimal.Decimal, error)
}

// ConsignacionLookup consulta de solo lectura: líneas de consignación
// resueltas contra una venta. Una venta referenciada por alguna línea se
// originó al reportar consignación vendida.
type ConsignacionLookup interface {
	ListarDetallesPorVenta(ventaID string) ([]*entity.DetalleConsignacion, error)
}
