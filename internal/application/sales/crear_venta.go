package sales

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

// toleranciaPagos diferencia máxima admitida entre el total de la venta y la
// suma de pagos convertidos a moneda base (redondeo de conversión).
var toleranciaPagos = decimal.NewFromFloat(0.01)

// LiquidarVentaUseCase liquida una venta contra el stock: valida, calcula
// totales, persiste venta+detalles+pagos y debita stock (agregado o por
// unidad) en una sola transacción. Cualquier fallo en la secuencia revierte
// todo: no sobrevive venta, movimiento ni alerta de una liquidación fallida.
type LiquidarVentaUseCase struct {
	txRunner       VentasTxRunner
	clienteRepo    repository.ClienteRepository
	productoRepo   repository.ProductoRepository
	unidadRepo     repository.UnidadRepository
	unidades       *inventory.RegistroUnidades
	ledger         *inventory.StockLedger
	tasas          TasaProvider
	consignaciones ConsignacionLookup
}

// NewLiquidarVentaUseCase construye el caso de uso.
func NewLiquidarVentaUseCase(
	txRunner VentasTxRunner,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	unidadRepo repository.UnidadRepository,
	unidades *inventory.RegistroUnidades,
	ledger *inventory.StockLedger,
	tasas TasaProvider,
	consignaciones ConsignacionLookup,
) *LiquidarVentaUseCase {
	return &LiquidarVentaUseCase{
		txRunner:       txRunner,
		clienteRepo:    clienteRepo,
		productoRepo:   productoRepo,
		unidadRepo:     unidadRepo,
		unidades:       unidades,
		ledger:         ledger,
		tasas:          tasas,
		consignaciones: consignaciones,
	}
}

// LineaInput línea solicitada. Serial no vacío indica producto serializado
// (Cantidad debe ser 1 y el serial pertenecer al producto).
type LineaInput struct {
	ProductoID     string
	Cantidad       int
	PrecioUnitario decimal.Decimal // cero = usar precio de venta del producto
	Descuento      decimal.Decimal
	Serial         string
}

// PagoInput pago aplicado a la venta.
type PagoInput struct {
	Metodo     string
	Moneda     string // vacío = moneda base
	Monto      decimal.Decimal
	Referencia string
}

// CrearVentaInput entrada ya validada por la capa de request.
type CrearVentaInput struct {
	ClienteID string
	UsuarioID string
	Fecha     time.Time
	Descuento decimal.Decimal
	Impuesto  decimal.Decimal
	Lineas    []LineaInput
	Pagos     []PagoInput
}

// VentaCreada venta persistida con sus detalles.
type VentaCreada struct {
	Venta    *entity.Venta
	Detalles []*entity.DetalleVenta
}

// CrearVenta ejecuta la liquidación. Valida-luego-muta: toda línea se
// comprueba antes de la primera escritura, y el debito real vuelve a
// verificarse bajo bloqueo de fila dentro de la transacción.
func (uc *LiquidarVentaUseCase) CrearVenta(ctx context.Context, in CrearVentaInput) (*VentaCreada, error) {
	if in.ClienteID == "" || in.UsuarioID == "" || len(in.Lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Descuento.IsNegative() || in.Impuesto.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Fecha.IsZero() {
		in.Fecha = time.Now()
	}

	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrClienteNoEncontrado
	}

	// Validación de líneas fuera de la tx (solo lectura, fail-fast).
	productosPorID := make(map[string]*entity.Producto, len(in.Lineas))
	for i := range in.Lineas {
		linea := &in.Lineas[i]
		if linea.ProductoID == "" || linea.Cantidad <= 0 || linea.Descuento.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		producto, err := uc.productoRepo.GetByID(linea.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil || !producto.Activo {
			return nil, domain.ErrProductoNoEncontrado
		}
		productosPorID[linea.ProductoID] = producto
		if linea.PrecioUnitario.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		if linea.PrecioUnitario.IsZero() {
			linea.PrecioUnitario = producto.PrecioVenta
		}
		if linea.Serial != "" {
			if linea.Cantidad != 1 {
				return nil, domain.ErrEntradaInvalida
			}
			u, err := uc.unidadRepo.GetBySerial(linea.Serial)
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, domain.ErrUnidadNoEncontrada
			}
			if u.ProductoID != linea.ProductoID {
				return nil, fmt.Errorf("%w: serial %s no pertenece al producto", domain.ErrEntradaInvalida, linea.Serial)
			}
			if u.Estado != entity.UnidadDisponible {
				return nil, fmt.Errorf("%w: serial %s", domain.ErrUnidadNoDisponible, linea.Serial)
			}
		} else if producto.StockActual < linea.Cantidad {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrStockInsuficiente, producto.Codigo)
		}
	}

	// Totales: subtotal = Σ líneas; total = subtotal − descuento + impuesto.
	subtotal := decimal.Zero
	subtotalesLinea := make([]decimal.Decimal, len(in.Lineas))
	for i, linea := range in.Lineas {
		st := linea.PrecioUnitario.Mul(decimal.NewFromInt(int64(linea.Cantidad))).Sub(linea.Descuento)
		if st.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		subtotalesLinea[i] = st
		subtotal = subtotal.Add(st)
	}
	total := subtotal.Sub(in.Descuento).Add(in.Impuesto)
	if total.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}

	// Conciliación de pagos contra el total, convertidos a moneda base con la
	// tasa vigente. Precondición dura: si hay pagos deben cuadrar completos.
	pagos, estadoPago, err := uc.conciliarPagos(in.Pagos, total)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ventaID := uuid.New().String()
	venta := &entity.Venta{
		ID:            ventaID,
		NumeroOrden:   fmt.Sprintf("V-%d", in.Fecha.Unix()),
		ClienteID:     in.ClienteID,
		UsuarioID:     in.UsuarioID,
		Fecha:         in.Fecha,
		Subtotal:      subtotal,
		Descuento:     in.Descuento,
		Impuesto:      in.Impuesto,
		Total:         total,
		EstadoPago:    estadoPago,
		EstadoEntrega: entity.EntregaEntregado,
		Tipo:          entity.TipoVenta,
		CreatedAt:     now,
	}

	var detalles []*entity.DetalleVenta
	err = uc.txRunner.RunVentas(ctx, func(
		productoRepo repository.ProductoRepository,
		unidadRepo repository.UnidadRepository,
		movRepo repository.MovimientoRepository,
		alertaRepo repository.AlertaRepository,
		ventaRepo repository.VentaRepository,
	) error {
		// Debita stock línea por línea; el primer error revierte todo.
		for i := range in.Lineas {
			linea := &in.Lineas[i]
			if linea.Serial != "" {
				if _, err := uc.unidades.VenderUnidadEnTx(
					productoRepo, unidadRepo, movRepo, alertaRepo,
					linea.Serial, ventaID, in.ClienteID, in.UsuarioID,
					linea.PrecioUnitario, in.Fecha,
				); err != nil {
					return err
				}
			} else {
				if _, err := uc.ledger.AplicarDeltaEnTx(productoRepo, movRepo, alertaRepo, inventory.DeltaInput{
					ProductoID: linea.ProductoID,
					Cantidad:   -linea.Cantidad,
					Tipo:       entity.MovimientoSalida,
					Referencia: ventaID,
					Motivo:     "venta " + venta.NumeroOrden,
					UsuarioID:  in.UsuarioID,
				}); err != nil {
					return err
				}
			}
		}

		if err := ventaRepo.Crear(venta); err != nil {
			return err
		}
		for i := range in.Lineas {
			linea := &in.Lineas[i]
			d := &entity.DetalleVenta{
				ID:             uuid.New().String(),
				VentaID:        ventaID,
				ProductoID:     linea.ProductoID,
				Cantidad:       linea.Cantidad,
				PrecioUnitario: linea.PrecioUnitario,
				Descuento:      linea.Descuento,
				Subtotal:       subtotalesLinea[i],
			}
			if linea.Serial != "" {
				serial := linea.Serial
				d.Serial = &serial
			}
			if err := ventaRepo.CrearDetalle(d); err != nil {
				return err
			}
			detalles = append(detalles, d)
		}
		for _, p := range pagos {
			p.VentaID = ventaID
			if err := ventaRepo.CrearPago(p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &VentaCreada{Venta: venta, Detalles: detalles}, nil
}

// conciliarPagos convierte cada pago a moneda base y exige que la suma cuadre
// con el total. Sin pagos la venta queda PENDIENTE.
func (uc *LiquidarVentaUseCase) conciliarPagos(in []PagoInput, total decimal.Decimal) ([]*entity.PagoVenta, string, error) {
	if len(in) == 0 {
		return nil, entity.PagoPendiente, nil
	}
	now := time.Now()
	suma := decimal.Zero
	pagos := make([]*entity.PagoVenta, 0, len(in))
	for _, p := range in {
		if !p.Monto.IsPositive() {
			return nil, "", domain.ErrEntradaInvalida
		}
		moneda := p.Moneda
		if moneda == "" {
			moneda = entity.MonedaBase
		}
		montoBase := p.Monto
		if moneda != entity.MonedaBase {
			tasa, err := uc.tasas.TasaActual(moneda)
			if err != nil {
				return nil, "", err
			}
			montoBase = p.Monto.DivRound(tasa, 2)
		}
		suma = suma.Add(montoBase)
		pagos = append(pagos, &entity.PagoVenta{
			ID:         uuid.New().String(),
			Metodo:     entity.ClasificarMetodoPago(p.Metodo),
			Moneda:     moneda,
			Monto:      p.Monto,
			MontoBase:  montoBase,
			Referencia: p.Referencia,
			CreatedAt:  now,
		})
	}
	if suma.Sub(total).Abs().GreaterThan(toleranciaPagos) {
		return nil, "", fmt.Errorf("%w: total %s, pagos %s", domain.ErrPagosInconsistentes, total.StringFixed(2), suma.StringFixed(2))
	}
	return pagos, entity.PagoPagado, nil
}
