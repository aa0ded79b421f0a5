package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaVentaRequest línea de una venta. Serial presente = producto serializado.
type LineaVentaRequest struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario,omitempty"` // cero = precio del catálogo
	Descuento      decimal.Decimal `json:"descuento,omitempty"`
	Serial         string          `json:"serial,omitempty"`
}

// PagoVentaRequest pago aplicado a la venta.
type PagoVentaRequest struct {
	Metodo     string          `json:"metodo"`
	Moneda     string          `json:"moneda,omitempty"` // vacío = moneda base
	Monto      decimal.Decimal `json:"monto"`
	Referencia string          `json:"referencia,omitempty"`
}

// CrearVentaRequest body para POST /api/ventas.
type CrearVentaRequest struct {
	ClienteID string              `json:"cliente_id"`
	Fecha     *time.Time          `json:"fecha,omitempty"`
	Descuento decimal.Decimal     `json:"descuento,omitempty"`
	Impuesto  decimal.Decimal     `json:"impuesto,omitempty"`
	Lineas    []LineaVentaRequest `json:"lineas"`
	Pagos     []PagoVentaRequest  `json:"pagos,omitempty"`
}

// DetalleVentaResponse línea persistida.
type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Serial         *string         `json:"serial,omitempty"`
}

// VentaResponse cabecera persistida con sus detalles.
type VentaResponse struct {
	ID          string                 `json:"id"`
	NumeroOrden string                 `json:"numero_orden"`
	ClienteID   string                 `json:"cliente_id"`
	Fecha       time.Time              `json:"fecha"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
	Descuento   decimal.Decimal        `json:"descuento"`
	Impuesto    decimal.Decimal        `json:"impuesto"`
	Total       decimal.Decimal        `json:"total"`
	EstadoPago  string                 `json:"estado_pago"`
	Tipo        string                 `json:"tipo"`
	Detalles    []DetalleVentaResponse `json:"detalles,omitempty"`
}
