package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovimientoEntrada    = "ENTRADA"
	MovimientoSalida     = "SALIDA"
	MovimientoAjuste     = "AJUSTE"
	MovimientoDevolucion = "DEVOLUCION"
)

// MovimientoStock registro de auditoría de cada mutación de stock.
// Append-only: nunca se edita ni se borra. Invariante:
// StockPosterior = StockAnterior + Cantidad.
type MovimientoStock struct {
	ID             string
	ProductoID     string
	Tipo           string
	Cantidad       int // con signo: positivo entrada/devolución, negativo salida
	StockAnterior  int
	StockPosterior int
	Referencia     string // id de venta, consignación, lote de entrada, etc.
	Motivo         string
	CreadoPor      string // UsuarioID
	CreatedAt      time.Time
}
