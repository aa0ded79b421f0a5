package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// RegistroUnidades registra y transiciona unidades serializadas manteniendo
// el conteo agregado consistente: cada transición que saca o reingresa una
// unidad de DISPONIBLE pasa por el StockLedger en la misma transacción.
type RegistroUnidades struct {
	txRunner TxRunner
	ledger   *StockLedger
}

// NewRegistroUnidades construye el registro de unidades.
func NewRegistroUnidades(txRunner TxRunner, ledger *StockLedger) *RegistroUnidades {
	return &RegistroUnidades{txRunner: txRunner, ledger: ledger}
}

// RegistrarUnidades crea un lote de unidades en DISPONIBLE y acredita el
// stock agregado con un solo movimiento ENTRADA. El lote es todo-o-nada: un
// serial duplicado rechaza el lote completo para que registro y ledger no
// queden desalineados.
func (r *RegistroUnidades) RegistrarUnidades(
	ctx context.Context,
	productoID string,
	seriales []string,
	costoUnitario decimal.Decimal,
	garantiaMeses int,
	origen string,
	usuarioID string,
) (int, error) {
	if productoID == "" || len(seriales) == 0 || garantiaMeses < 0 {
		return 0, domain.ErrEntradaInvalida
	}
	vistos := make(map[string]struct{}, len(seriales))
	for _, s := range seriales {
		if s == "" {
			return 0, domain.ErrEntradaInvalida
		}
		if _, dup := vistos[s]; dup {
			return 0, fmt.Errorf("%w: %s", domain.ErrSerialDuplicado, s)
		}
		vistos[s] = struct{}{}
	}

	err := r.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
	) error {
		now := time.Now()
		for _, serial := range seriales {
			existente, err := unidadRepo.GetBySerial(serial)
			if err != nil {
				return err
			}
			if existente != nil {
				return fmt.Errorf("%w: %s", domain.ErrSerialDuplicado, serial)
			}
			u := &entity.UnidadSerializada{
				ID:            uuid.New().String(),
				Serial:        serial,
				ProductoID:    productoID,
				Estado:        entity.UnidadDisponible,
				CostoUnitario: costoUnitario,
				GarantiaMeses: garantiaMeses,
				Origen:        origen,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := unidadRepo.Crear(u); err != nil {
				return err
			}
		}
		_, err := r.ledger.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, DeltaInput{
			ProductoID: productoID,
			Cantidad:   len(seriales),
			Tipo:       entity.MovimientoEntrada,
			Referencia: origen,
			Motivo:     fmt.Sprintf("registro de %d unidades", len(seriales)),
			UsuarioID:  usuarioID,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return len(seriales), nil
}

// VenderUnidadEnTx vende una unidad dentro de una transacción ya abierta por
// el caller (la liquidación de venta comparte transacción con el registro).
// DISPONIBLE → VENDIDO, fija metadatos de venta y vencimiento de garantía, y
// debita el agregado con SALIDA referenciando la venta.
func (r *RegistroUnidades) VenderUnidadEnTx(
	productoRepo repository.ProductoRepository,
	unidadRepo repository.UnidadRepository,
	movRepo repository.MovimientoRepository,
	alertaRepo repository.AlertaRepository,
	serial, ventaID, clienteID, usuarioID string,
	precio decimal.Decimal,
	fecha time.Time,
) (*entity.UnidadSerializada, error) {
	u, err := unidadRepo.GetBySerialForUpdate(serial)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnidadNoEncontrada
	}
	if u.Estado != entity.UnidadDisponible {
		return nil, fmt.Errorf("%w: serial %s en estado %s", domain.ErrUnidadNoDisponible, serial, u.Estado)
	}
	if err := u.MarcarVendida(clienteID, precio, fecha); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now()
	if err := unidadRepo.Actualizar(u); err != nil {
		return nil, err
	}
	_, err = r.ledger.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, DeltaInput{
		ProductoID: u.ProductoID,
		Cantidad:   -1,
		Tipo:       entity.MovimientoSalida,
		Referencia: ventaID,
		Motivo:     "venta de unidad " + serial,
		UsuarioID:  usuarioID,
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// DevolverUnidad devolución posventa: VENDIDO → DEVUELTO y acredita el stock
// con DEVOLUCION. La unidad queda en DEVUELTO (no DISPONIBLE) hasta que un
// ReingresarUnidad explícito la reincorpore tras inspección.
func (r *RegistroUnidades) DevolverUnidad(ctx context.Context, serial, motivo, usuarioID string) (*entity.UnidadSerializada, error) {
	var devuelta *entity.UnidadSerializada
	err := r.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
	) error {
		u, err := unidadRepo.GetBySerialForUpdate(serial)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUnidadNoEncontrada
		}
		if u.Estado != entity.UnidadVendido {
			return fmt.Errorf("%w: serial %s en estado %s", domain.ErrUnidadNoDisponible, serial, u.Estado)
		}
		if err := u.TransicionarA(entity.UnidadDevuelto); err != nil {
			return err
		}
		u.UpdatedAt = time.Now()
		if err := unidadRepo.Actualizar(u); err != nil {
			return err
		}
		_, err = r.ledger.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, DeltaInput{
			ProductoID: u.ProductoID,
			Cantidad:   1,
			Tipo:       entity.MovimientoDevolucion,
			Referencia: serial,
			Motivo:     motivo,
			UsuarioID:  usuarioID,
		})
		if err != nil {
			return err
		}
		devuelta = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return devuelta, nil
}

// MarcarDefectuosa DISPONIBLE → DEFECTUOSO; debita el agregado con AJUSTE.
func (r *RegistroUnidades) MarcarDefectuosa(ctx context.Context, serial, motivo, usuarioID string) (*entity.UnidadSerializada, error) {
	var marcada *entity.UnidadSerializada
	err := r.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
	) error {
		u, err := unidadRepo.GetBySerialForUpdate(serial)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUnidadNoEncontrada
		}
		if err := u.TransicionarA(entity.UnidadDefectuoso); err != nil {
			return err
		}
		u.UpdatedAt = time.Now()
		if err := unidadRepo.Actualizar(u); err != nil {
			return err
		}
		_, err = r.ledger.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, DeltaInput{
			ProductoID: u.ProductoID,
			Cantidad:   -1,
			Tipo:       entity.MovimientoAjuste,
			Referencia: serial,
			Motivo:     motivo,
			UsuarioID:  usuarioID,
		})
		if err != nil {
			return err
		}
		marcada = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return marcada, nil
}

// ReingresarUnidad reincorpora una unidad DEVUELTO tras inspección:
// DEVUELTO → DISPONIBLE con los metadatos de venta limpios. No toca el
// agregado: el stock ya fue acreditado por la devolución.
func (r *RegistroUnidades) ReingresarUnidad(ctx context.Context, serial, usuarioID string) (*entity.UnidadSerializada, error) {
	var reingresada *entity.UnidadSerializada
	err := r.txRunner.Run(ctx, func(
		_ repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		_ repository.MovimientoRepository,
		_ repository.AlertaRepository,
	) error {
		u, err := unidadRepo.GetBySerialForUpdate(serial)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUnidadNoEncontrada
		}
		// Solo DEVUELTO reingresa sin delta; una unidad CONSIGNADO también
		// puede transicionar a DISPONIBLE pero ese camino reacredita stock y
		// pertenece a ReportarDevueltas.
		if u.Estado != entity.UnidadDevuelto {
			return fmt.Errorf("%w: serial %s en estado %s", domain.ErrTransicionInvalida, serial, u.Estado)
		}
		if err := u.TransicionarA(entity.UnidadDisponible); err != nil {
			return err
		}
		u.ClienteID = nil
		u.PrecioVenta = nil
		u.FechaVenta = nil
		u.VenceGarantia = nil
		u.UpdatedAt = time.Now()
		if err := unidadRepo.Actualizar(u); err != nil {
			return err
		}
		reingresada = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reingresada, nil
}
