package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonedaBase moneda en la que se expresan precios y totales.
const MonedaBase = "USD"

// TasaCambio tasa almacenada para convertir pagos a la moneda base.
// Este núcleo la consume como oráculo de solo lectura; la captura de tasas
// es un servicio externo.
type TasaCambio struct {
	ID     string
	Moneda string          // VES, EUR, ...
	Tasa   decimal.Decimal // unidades de Moneda por 1 unidad de MonedaBase
	Fecha  time.Time
}
