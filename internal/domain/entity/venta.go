package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de venta. Las ventas originadas al reportar consignación vendida
// también son VENTA; su origen queda en DetalleConsignacion.VentaID.
const (
	TipoVenta = "VENTA"
)

// Estado de pago de una venta.
const (
	PagoPendiente = "PENDIENTE"
	PagoPagado    = "PAGADO"
)

// Estado de entrega.
const (
	EntregaPendiente = "PENDIENTE"
	EntregaEntregado = "ENTREGADO"
)

// Métodos de pago (variantes cerradas; entrada no reconocida se clasifica
// explícitamente, nunca se asume un valor por defecto).
const (
	MetodoEfectivo      = "EFECTIVO"
	MetodoZelle         = "ZELLE"
	MetodoPagoMovil     = "PAGO_MOVIL"
	MetodoTransferencia = "TRANSFERENCIA"
	MetodoPunto         = "PUNTO"
	MetodoNoClasificado = "NO_CLASIFICADO"
)

// ClasificarMetodoPago normaliza un método de pago a su variante cerrada.
func ClasificarMetodoPago(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case MetodoEfectivo, "CASH":
		return MetodoEfectivo
	case MetodoZelle:
		return MetodoZelle
	case MetodoPagoMovil, "PAGOMOVIL", "PM":
		return MetodoPagoMovil
	case MetodoTransferencia:
		return MetodoTransferencia
	case MetodoPunto, "PUNTO_VENTA", "POS":
		return MetodoPunto
	default:
		return MetodoNoClasificado
	}
}

// Venta cabecera de una venta confirmada. Invariantes:
// Total = Subtotal − Descuento + Impuesto; Subtotal = Σ detalles.Subtotal.
// Se crea atómicamente con sus detalles y pagos; los detalles son inmutables.
type Venta struct {
	ID            string
	NumeroOrden   string
	ClienteID     string
	UsuarioID     string
	Fecha         time.Time
	Subtotal      decimal.Decimal
	Descuento     decimal.Decimal
	Impuesto      decimal.Decimal
	Total         decimal.Decimal
	EstadoPago    string
	EstadoEntrega string
	Tipo          string
	CreatedAt     time.Time
}

// DetalleVenta línea de una venta. Subtotal = Cantidad × PrecioUnitario − Descuento.
type DetalleVenta struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Descuento      decimal.Decimal
	Subtotal       decimal.Decimal
	Serial         *string // cuando el producto vendido es serializado
}

// PagoVenta un pago aplicado a una venta. MontoBase es el monto convertido a
// la moneda base de la venta con la tasa vigente al registrarlo.
type PagoVenta struct {
	ID         string
	VentaID    string
	Metodo     string
	Moneda     string
	Monto      decimal.Decimal
	MontoBase  decimal.Decimal
	Referencia string
	CreatedAt  time.Time
}
