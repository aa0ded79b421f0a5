package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaConsignacionRequest unidad a entregar con su precio pactado.
type LineaConsignacionRequest struct {
	Serial             string          `json:"serial"`
	PrecioConsignacion decimal.Decimal `json:"precio_consignacion"`
}

// CrearConsignacionRequest body para POST /api/consignaciones.
type CrearConsignacionRequest struct {
	ConsignatarioID string                     `json:"consignatario_id"`
	FechaLimite     time.Time                  `json:"fecha_limite"`
	Lineas          []LineaConsignacionRequest `json:"lineas"`
}

// ReportarLineasRequest body para reportar líneas vendidas o devueltas.
type ReportarLineasRequest struct {
	LineaIDs []string   `json:"linea_ids"`
	Fecha    *time.Time `json:"fecha,omitempty"`
}

// RegistrarAbonoRequest body para POST /api/consignaciones/abonos.
type RegistrarAbonoRequest struct {
	ConsignatarioID string          `json:"consignatario_id"`
	Monto           decimal.Decimal `json:"monto"`
	MetodoPago      string          `json:"metodo_pago"`
	ConsignacionID  *string         `json:"consignacion_id,omitempty"`
}

// ConsignacionResponse cabecera de consignación.
type ConsignacionResponse struct {
	ID              string    `json:"id"`
	ConsignatarioID string    `json:"consignatario_id"`
	FechaEntrega    time.Time `json:"fecha_entrega"`
	FechaLimite     time.Time `json:"fecha_limite"`
}
