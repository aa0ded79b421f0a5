package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AjusteStockRequest body para POST /api/inventario/ajustes.
type AjusteStockRequest struct {
	ProductoID       string `json:"producto_id"`
	Cantidad         int    `json:"cantidad"` // con signo
	Motivo           string `json:"motivo"`
	PermitirNegativo bool   `json:"permitir_negativo,omitempty"`
}

// ResultadoDeltaResponse estado del stock antes y después del ajuste.
type ResultadoDeltaResponse struct {
	StockAnterior   int    `json:"stock_anterior"`
	StockPosterior  int    `json:"stock_posterior"`
	EstadoAnterior  string `json:"estado_anterior"`
	EstadoPosterior string `json:"estado_posterior"`
}

// RegistrarUnidadesRequest body para POST /api/unidades.
type RegistrarUnidadesRequest struct {
	ProductoID    string          `json:"producto_id"`
	Seriales      []string        `json:"seriales"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	GarantiaMeses int             `json:"garantia_meses"`
	Origen        string          `json:"origen"`
}

// UnidadResponse representación HTTP de una unidad serializada.
type UnidadResponse struct {
	Serial        string           `json:"serial"`
	ProductoID    string           `json:"producto_id"`
	Estado        string           `json:"estado"`
	CostoUnitario decimal.Decimal  `json:"costo_unitario"`
	GarantiaMeses int              `json:"garantia_meses"`
	PrecioVenta   *decimal.Decimal `json:"precio_venta,omitempty"`
	FechaVenta    *time.Time       `json:"fecha_venta,omitempty"`
	VenceGarantia *time.Time       `json:"vence_garantia,omitempty"`
	ClienteID     *string          `json:"cliente_id,omitempty"`
}

// MovimientoResponse una fila del ledger de movimientos.
type MovimientoResponse struct {
	ID             string    `json:"id"`
	ProductoID     string    `json:"producto_id"`
	Tipo           string    `json:"tipo"`
	Cantidad       int       `json:"cantidad"`
	StockAnterior  int       `json:"stock_anterior"`
	StockPosterior int       `json:"stock_posterior"`
	Referencia     string    `json:"referencia,omitempty"`
	Motivo         string    `json:"motivo,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AlertaResponse una alerta de stock.
type AlertaResponse struct {
	ID            string    `json:"id"`
	ProductoID    string    `json:"producto_id"`
	Tipo          string    `json:"tipo"`
	StockAlCrear  int       `json:"stock_al_crear"`
	UmbralAlCrear int       `json:"umbral_al_crear"`
	Mensaje       string    `json:"mensaje"`
	Resuelta      bool      `json:"resuelta"`
	CreatedAt     time.Time `json:"created_at"`
}
