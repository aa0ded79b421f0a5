package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/domain/stock"
)

// StockLedger única fuente de verdad para Producto.StockActual y su Estado
// derivado. Toda mutación de stock pasa por AplicarDelta: lee la fila con
// bloqueo (SELECT FOR UPDATE), recalcula el estado, persiste stock+estado,
// agrega el MovimientoStock y, si la severidad empeora, la AlertaStock,
// todo en una transacción.
type StockLedger struct {
	txRunner TxRunner
}

// NewStockLedger construye el ledger.
func NewStockLedger(txRunner TxRunner) *StockLedger {
	return &StockLedger{txRunner: txRunner}
}

// DeltaInput entrada para aplicar un delta de stock.
type DeltaInput struct {
	ProductoID string
	Cantidad   int // con signo: positivo acredita, negativo debita
	Tipo       string
	Referencia string
	Motivo     string
	UsuarioID  string
	// PermitirNegativo permite que el resultado quede bajo cero (solo
	// ajustes manuales de carga; las ventas nunca lo activan).
	PermitirNegativo bool
}

// ResultadoDelta estado del stock antes y después de aplicar el delta.
type ResultadoDelta struct {
	StockAnterior   int
	StockPosterior  int
	EstadoAnterior  entity.EstadoProducto
	EstadoPosterior entity.EstadoProducto
}

// AplicarDelta aplica el delta en su propia transacción (Commit/Rollback).
func (l *StockLedger) AplicarDelta(ctx context.Context, in DeltaInput) (*ResultadoDelta, error) {
	var res *ResultadoDelta
	err := l.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		_ repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
	) error {
		r, err := l.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, in)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AplicarDeltaEnTx aplica el delta usando repositorios de una transacción ya
// abierta por el caller (ventas y consignaciones se integran por aquí, igual
// que la facturación comparte transacción con inventario).
func (l *StockLedger) AplicarDeltaEnTx(
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoRepository,
	alertaRepo repository.AlertaRepository,
	in DeltaInput,
) (*ResultadoDelta, error) {
	if err := validarDelta(in); err != nil {
		return nil, err
	}

	// Bloquea la fila del producto para serializar deltas concurrentes
	producto, err := productoRepo.GetForUpdate(in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil || !producto.Activo {
		return nil, domain.ErrProductoNoEncontrado
	}

	anterior := producto.StockActual
	posterior := anterior + in.Cantidad
	if posterior < 0 && !in.PermitirNegativo {
		return nil, domain.ErrStockInsuficiente
	}

	estadoAnterior := producto.Estado
	estadoPosterior := stock.Clasificar(posterior, producto.StockMinimo, producto.StockAdvertencia)

	if err := productoRepo.ActualizarStock(producto.ID, posterior, estadoPosterior); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.MovimientoStock{
		ID:             uuid.New().String(),
		ProductoID:     producto.ID,
		Tipo:           in.Tipo,
		Cantidad:       in.Cantidad,
		StockAnterior:  anterior,
		StockPosterior: posterior,
		Referencia:     in.Referencia,
		Motivo:         in.Motivo,
		CreadoPor:      in.UsuarioID,
		CreatedAt:      now,
	}
	if err := movRepo.Crear(mov); err != nil {
		return nil, err
	}

	// Alerta solo cuando la severidad estrictamente empeora: sin spam de
	// alertas repetidas para severidad sin cambios.
	if stock.Severidad(estadoPosterior) > stock.Severidad(estadoAnterior) {
		alerta := &entity.AlertaStock{
			ID:            uuid.New().String(),
			ProductoID:    producto.ID,
			Tipo:          stock.TipoAlertaPara(estadoPosterior),
			StockAlCrear:  posterior,
			UmbralAlCrear: stock.UmbralPara(estadoPosterior, producto.StockMinimo, producto.StockAdvertencia),
			Mensaje:       fmt.Sprintf("%s: stock %d (mínimo %d, advertencia %d)", producto.Codigo, posterior, producto.StockMinimo, producto.StockAdvertencia),
			CreatedAt:     now,
		}
		if err := alertaRepo.Crear(alerta); err != nil {
			return nil, err
		}
	}

	return &ResultadoDelta{
		StockAnterior:   anterior,
		StockPosterior:  posterior,
		EstadoAnterior:  estadoAnterior,
		EstadoPosterior: estadoPosterior,
	}, nil
}

// validarDelta coherencia entre tipo de movimiento y signo de la cantidad.
func validarDelta(in DeltaInput) error {
	if in.ProductoID == "" || in.Cantidad == 0 {
		return domain.ErrEntradaInvalida
	}
	switch in.Tipo {
	case entity.MovimientoEntrada, entity.MovimientoDevolucion:
		if in.Cantidad < 0 {
			return domain.ErrEntradaInvalida
		}
	case entity.MovimientoSalida:
		if in.Cantidad > 0 {
			return domain.ErrEntradaInvalida
		}
	case entity.MovimientoAjuste:
		// cualquier signo
	default:
		return domain.ErrEntradaInvalida
	}
	return nil
}
