package entity

import "time"

// Tipos de alerta de stock.
const (
	AlertaStockBajo   = "STOCK_BAJO"   // bajo el umbral de advertencia
	AlertaStockMinimo = "STOCK_MINIMO" // bajo el stock mínimo
	AlertaAgotado     = "AGOTADO"
	AlertaSobrestock  = "SOBRESTOCK" // creada manualmente desde revisión de inventario
)

// AlertaStock se crea solo cuando una mutación empeora la severidad del
// estado del producto; la resolución es una acción explícita posterior.
type AlertaStock struct {
	ID            string
	ProductoID    string
	Tipo          string
	StockAlCrear  int
	UmbralAlCrear int
	Mensaje       string
	Resuelta      bool
	ResueltaAt    *time.Time
	CreatedAt     time.Time
}
