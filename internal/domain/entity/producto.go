package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoProducto clasifica el producto según su stock frente a los umbrales.
type EstadoProducto string

const (
	EstadoOK      EstadoProducto = "OK"
	EstadoAlertaW EstadoProducto = "ALERTA_W" // por debajo del umbral de advertencia
	EstadoAlerta  EstadoProducto = "ALERTA"   // por debajo del stock mínimo
	EstadoAgotado EstadoProducto = "AGOTADO"
)

// Producto representa un producto del catálogo con su stock agregado.
// StockActual se muta exclusivamente a través del ledger de stock; Estado es
// siempre función pura de (StockActual, StockMinimo, StockAdvertencia).
type Producto struct {
	ID               string
	Codigo           string // único
	Nombre           string
	Descripcion      string
	PrecioVenta      decimal.Decimal
	PrecioCosto      decimal.Decimal
	StockActual      int // entero con signo; negativo solo como artefacto de carga
	StockMinimo      int
	StockAdvertencia int
	Estado           EstadoProducto
	Serializado      bool // true si el stock se controla por unidades con serial
	Activo           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
