package sales

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// AnularVenta acción compensatoria (corrección administrativa y flujos de
// verificación): reacredita cada línea debitada y elimina la venta con sus
// dependientes, todo en una transacción. Las unidades vendidas vuelven a
// DISPONIBLE con sus metadatos de venta limpios. Una venta originada al
// reportar consignación vendida se rechaza: su único débito fue la entrega
// y reacreditarlo aquí descuadraría el ledger además de dejar las líneas
// de consignación colgando en VENDIDO.
func (uc *LiquidarVentaUseCase) AnularVenta(ctx context.Context, ventaID, usuarioID string) error {
	if ventaID == "" {
		return domain.ErrEntradaInvalida
	}
	lineasConsig, err := uc.consignaciones.ListarDetallesPorVenta(ventaID)
	if err != nil {
		return err
	}
	if len(lineasConsig) > 0 {
		return domain.ErrVentaDeConsignacion
	}
	return uc.txRunner.RunVentas(ctx, func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
		ventaRepo repository.VentaRepository,
	) error {
		venta, err := ventaRepo.GetByID(ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrVentaNoEncontrada
		}
		detalles, err := ventaRepo.ListarDetalles(ventaID)
		if err != nil {
			return err
		}
		for _, d := range detalles {
			if d.Serial != nil {
				u, err := unidadRepo.GetBySerialForUpdate(*d.Serial)
				if err != nil {
					return err
				}
				if u == nil {
					return domain.ErrUnidadNoEncontrada
				}
				if err := u.RevertirVenta(); err != nil {
					return err
				}
				u.UpdatedAt = time.Now()
				if err := unidadRepo.Actualizar(u); err != nil {
					return err
				}
			}
			if _, err := uc.ledger.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, inventory.DeltaInput{
				ProductoID: d.ProductoID,
				Cantidad:   d.Cantidad,
				Tipo:       entity.MovimientoDevolucion,
				Referencia: ventaID,
				Motivo:     "anulación de venta " + venta.NumeroOrden,
				UsuarioID:  usuarioID,
			}); err != nil {
				return err
			}
		}
		return ventaRepo.Eliminar(ventaID)
	})
}
