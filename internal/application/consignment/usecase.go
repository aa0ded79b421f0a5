package consignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ConsignacionUseCase ciclo de consignación: entrega (única deducción de
// stock), reporte de vendidas (crea la venta, sin tocar stock otra vez),
// reporte de devueltas (reacredita) y abonos (contabilidad pura).
type ConsignacionUseCase struct {
	txRunner    ConsignacionTxRunner
	clienteRepo repository.ClienteRepository
	consigRepo  repository.ConsignacionRepository
	ledger      *inventory.StockLedger
}

// NewConsignacionUseCase construye el caso de uso.
func NewConsignacionUseCase(
	txRunner ConsignacionTxRunner,
	clienteRepo repository.ClienteRepository,
	consigRepo repository.ConsignacionRepository,
	ledger *inventory.StockLedger,
) *ConsignacionUseCase {
	return &ConsignacionUseCase{
		txRunner:    txRunner,
		clienteRepo: clienteRepo,
		consigRepo:  consigRepo,
		ledger:      ledger,
	}
}

// LineaConsignacionInput unidad serializada a entregar con su precio pactado.
type LineaConsignacionInput struct {
	Serial             string
	PrecioConsignacion decimal.Decimal
}

// CrearConsignacion entrega mercancía al consignatario. Cada unidad pasa
// DISPONIBLE → CONSIGNADO y el agregado se debita con SALIDA referenciando la
// consignación; la entrega es el único débito de stock del ciclo completo.
// Todo-o-nada entre líneas.
func (uc *ConsignacionUseCase) CrearConsignacion(
	ctx context.Context,
	consignatarioID, usuarioID string,
	fechaLimite time.Time,
	lineas []LineaConsignacionInput,
) (*entity.Consignacion, error) {
	if consignatarioID == "" || len(lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	cliente, err := uc.clienteRepo.GetByID(consignatarioID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrClienteNoEncontrado
	}

	now := time.Now()
	consig := &entity.Consignacion{
		ID:              uuid.New().String(),
		ConsignatarioID: consignatarioID,
		FechaEntrega:    now,
		FechaLimite:     fechaLimite,
		CreatedAt:       now,
	}

	err = uc.txRunner.RunConsignacion(ctx, func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
		_ repository.VentaRepository,
		consigRepo repository.ConsignacionRepository,
	) error {
		if err := consigRepo.Crear(consig); err != nil {
			return err
		}
		for _, linea := range lineas {
			if linea.Serial == "" || linea.PrecioConsignacion.IsNegative() {
				return domain.ErrEntradaInvalida
			}
			u, err := unidadRepo.GetBySerialForUpdate(linea.Serial)
			if err != nil {
				return err
			}
			if u == nil {
				return domain.ErrUnidadNoEncontrada
			}
			if u.Estado != entity.UnidadDisponible {
				return fmt.Errorf("%w: serial %s", domain.ErrUnidadNoDisponible, linea.Serial)
			}
			if err := u.TransicionarA(entity.UnidadConsignado); err != nil {
				return err
			}
			u.UpdatedAt = time.Now()
			if err := unidadRepo.Actualizar(u); err != nil {
				return err
			}
			if _, err := uc.ledger.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, inventory.DeltaInput{
				ProductoID: u.ProductoID,
				Cantidad:   -1,
				Tipo:       entity.MovimientoSalida,
				Referencia: consig.ID,
				Motivo:     "entrega en consignación",
				UsuarioID:  usuarioID,
			}); err != nil {
				return err
			}
			detalle := &entity.DetalleConsignacion{
				ID:                 uuid.New().String(),
				ConsignacionID:     consig.ID,
				ProductoID:         u.ProductoID,
				Serial:             linea.Serial,
				PrecioConsignacion: linea.PrecioConsignacion,
				Estado:             entity.LineaEntregada,
			}
			if err := consigRepo.CrearDetalle(detalle); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return consig, nil
}

// ReportarVendidas convierte líneas ENTREGADO en una sola venta agregada,
// a precio de consignación. No pasa por el ledger: el stock ya fue debitado
// en la entrega y volver a debitarlo sería un bug de doble descuento.
func (uc *ConsignacionUseCase) ReportarVendidas(
	ctx context.Context,
	lineaIDs []string,
	fechaVenta time.Time,
	usuarioID string,
) (*entity.Venta, error) {
	if len(lineaIDs) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	if fechaVenta.IsZero() {
		fechaVenta = time.Now()
	}

	var venta *entity.Venta
	err := uc.txRunner.RunConsignacion(ctx, func(
		_ repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		_ repository.MovimientoRepository,
		_ repository.AlertaRepository,
		ventaRepo repository.VentaRepository,
		consigRepo repository.ConsignacionRepository,
	) error {
		now := time.Now()
		ventaID := uuid.New().String()

		var consignatarioID string
		subtotal := decimal.Zero
		type lineaVendida struct {
			detalle *entity.DetalleConsignacion
			unidad  *entity.UnidadSerializada
		}
		vendidas := make([]lineaVendida, 0, len(lineaIDs))

		for _, id := range lineaIDs {
			detalle, err := consigRepo.GetDetalleForUpdate(id)
			if err != nil {
				return err
			}
			if detalle == nil {
				return domain.ErrNoEncontrado
			}
			if detalle.Estado != entity.LineaEntregada {
				return fmt.Errorf("%w: línea %s en estado %s", domain.ErrLineaNoPendiente, id, detalle.Estado)
			}
			consig, err := consigRepo.GetByID(detalle.ConsignacionID)
			if err != nil {
				return err
			}
			if consig == nil {
				return domain.ErrConsignacionNoEncontrada
			}
			if consignatarioID == "" {
				consignatarioID = consig.ConsignatarioID
			} else if consignatarioID != consig.ConsignatarioID {
				return fmt.Errorf("%w: líneas de consignatarios distintos", domain.ErrEntradaInvalida)
			}
			u, err := unidadRepo.GetBySerialForUpdate(detalle.Serial)
			if err != nil {
				return err
			}
			if u == nil {
				return domain.ErrUnidadNoEncontrada
			}
			// CONSIGNADO → VENDIDO fija metadatos de venta en la unidad;
			// el agregado no se toca.
			if err := u.MarcarVendida(consignatarioID, detalle.PrecioConsignacion, fechaVenta); err != nil {
				return err
			}
			u.UpdatedAt = now
			if err := unidadRepo.Actualizar(u); err != nil {
				return err
			}
			subtotal = subtotal.Add(detalle.PrecioConsignacion)
			vendidas = append(vendidas, lineaVendida{detalle: detalle, unidad: u})
		}

		venta = &entity.Venta{
			ID:            ventaID,
			NumeroOrden:   fmt.Sprintf("C-%d", fechaVenta.Unix()),
			ClienteID:     consignatarioID,
			UsuarioID:     usuarioID,
			Fecha:         fechaVenta,
			Subtotal:      subtotal,
			Descuento:     decimal.Zero,
			Impuesto:      decimal.Zero,
			Total:         subtotal,
			EstadoPago:    entity.PagoPendiente,
			EstadoEntrega: entity.EntregaEntregado,
			Tipo:          entity.TipoVenta,
			CreatedAt:     now,
		}
		if err := ventaRepo.Crear(venta); err != nil {
			return err
		}
		for _, v := range vendidas {
			serial := v.detalle.Serial
			d := &entity.DetalleVenta{
				ID:             uuid.New().String(),
				VentaID:        ventaID,
				ProductoID:     v.detalle.ProductoID,
				Cantidad:       1,
				PrecioUnitario: v.detalle.PrecioConsignacion,
				Descuento:      decimal.Zero,
				Subtotal:       v.detalle.PrecioConsignacion,
				Serial:         &serial,
			}
			if err := ventaRepo.CrearDetalle(d); err != nil {
				return err
			}
			v.detalle.Estado = entity.LineaVendida
			v.detalle.VentaID = &ventaID
			resuelto := now
			v.detalle.FechaResuelto = &resuelto
			if err := consigRepo.ActualizarDetalle(v.detalle); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return venta, nil
}

// ReportarDevueltas marca líneas ENTREGADO como DEVUELTO: las unidades
// vuelven CONSIGNADO → DISPONIBLE y el agregado se reacredita con DEVOLUCION.
func (uc *ConsignacionUseCase) ReportarDevueltas(
	ctx context.Context,
	lineaIDs []string,
	fechaDevolucion time.Time,
	usuarioID string,
) error {
	if len(lineaIDs) == 0 {
		return domain.ErrEntradaInvalida
	}
	if fechaDevolucion.IsZero() {
		fechaDevolucion = time.Now()
	}
	return uc.txRunner.RunConsignacion(ctx, func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
		_ repository.VentaRepository,
		consigRepo repository.ConsignacionRepository,
	) error {
		for _, id := range lineaIDs {
			detalle, err := consigRepo.GetDetalleForUpdate(id)
			if err != nil {
				return err
			}
			if detalle == nil {
				return domain.ErrNoEncontrado
			}
			if detalle.Estado != entity.LineaEntregada {
				return fmt.Errorf("%w: línea %s en estado %s", domain.ErrLineaNoPendiente, id, detalle.Estado)
			}
			u, err := unidadRepo.GetBySerialForUpdate(detalle.Serial)
			if err != nil {
				return err
			}
			if u == nil {
				return domain.ErrUnidadNoEncontrada
			}
			if err := u.TransicionarA(entity.UnidadDisponible); err != nil {
				return err
			}
			u.UpdatedAt = time.Now()
			if err := unidadRepo.Actualizar(u); err != nil {
				return err
			}
			if _, err := uc.ledger.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, inventory.DeltaInput{
				ProductoID: detalle.ProductoID,
				Cantidad:   1,
				Tipo:       entity.MovimientoDevolucion,
				Referencia: detalle.ConsignacionID,
				Motivo:     "devolución de consignación",
				UsuarioID:  usuarioID,
			}); err != nil {
				return err
			}
			detalle.Estado = entity.LineaDevuelta
			resuelto := fechaDevolucion
			detalle.FechaResuelto = &resuelto
			if err := consigRepo.ActualizarDetalle(detalle); err != nil {
				return err
			}
		}
		return nil
	})
}

// RegistrarAbono registra un pago del consignatario contra su saldo.
// Contabilidad pura: sin efecto sobre stock. El método de pago se clasifica
// a su variante cerrada; lo no reconocido queda NO_CLASIFICADO explícito.
func (uc *ConsignacionUseCase) RegistrarAbono(
	ctx context.Context,
	consignatarioID string,
	monto decimal.Decimal,
	metodoPago string,
	consignacionID *string,
) (*entity.AbonoConsignacion, error) {
	if consignatarioID == "" || !monto.IsPositive() {
		return nil, domain.ErrEntradaInvalida
	}
	cliente, err := uc.clienteRepo.GetByID(consignatarioID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrClienteNoEncontrado
	}
	if consignacionID != nil {
		consig, err := uc.consigRepo.GetByID(*consignacionID)
		if err != nil {
			return nil, err
		}
		if consig == nil {
			return nil, domain.ErrConsignacionNoEncontrada
		}
	}
	abono := &entity.AbonoConsignacion{
		ID:             uuid.New().String(),
		ClienteID:      consignatarioID,
		ConsignacionID: consignacionID,
		Monto:          monto,
		Metodo:         entity.ClasificarMetodoPago(metodoPago),
		CreatedAt:      time.Now(),
	}
	if err := uc.consigRepo.CrearAbono(abono); err != nil {
		return nil, err
	}
	return abono, nil
}
