package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una línea de consignación. ENTREGADO es el único estado
// pendiente; VENDIDO y DEVUELTO son terminales.
const (
	LineaEntregada = "ENTREGADO"
	LineaVendida   = "VENDIDO"
	LineaDevuelta  = "DEVUELTO"
)

// Consignacion mercancía entregada a un tercero que aún no es venta.
// El stock se debita en la entrega; reportar vendida no vuelve a debitar.
type Consignacion struct {
	ID              string
	ConsignatarioID string // ClienteID
	FechaEntrega    time.Time
	FechaLimite     time.Time
	CreatedAt       time.Time
}

// DetalleConsignacion una unidad serializada entregada en consignación.
type DetalleConsignacion struct {
	ID                 string
	ConsignacionID     string
	ProductoID         string
	Serial             string
	PrecioConsignacion decimal.Decimal
	Estado             string
	VentaID            *string // venta creada al reportar vendida
	FechaResuelto      *time.Time
}

// AbonoConsignacion pago de un consignatario contra su saldo pendiente.
// Contabilidad pura: no tiene efecto sobre stock.
type AbonoConsignacion struct {
	ID             string
	ClienteID      string
	ConsignacionID *string
	Monto          decimal.Decimal
	Metodo         string
	CreatedAt      time.Time
}
