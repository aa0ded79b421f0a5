package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CrearProductoRequest body para POST /api/productos.
type CrearProductoRequest struct {
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Descripcion      string          `json:"descripcion,omitempty"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	PrecioCosto      decimal.Decimal `json:"precio_costo"`
	StockMinimo      int             `json:"stock_minimo"`
	StockAdvertencia int             `json:"stock_advertencia"`
	Serializado      bool            `json:"serializado"`
}

// ActualizarProductoRequest body para PUT /api/productos/:id. Stock y estado
// no se tocan por aquí: se mutan solo vía movimientos.
type ActualizarProductoRequest struct {
	Nombre           *string          `json:"nombre,omitempty"`
	Descripcion      *string          `json:"descripcion,omitempty"`
	PrecioVenta      *decimal.Decimal `json:"precio_venta,omitempty"`
	PrecioCosto      *decimal.Decimal `json:"precio_costo,omitempty"`
	StockMinimo      *int             `json:"stock_minimo,omitempty"`
	StockAdvertencia *int             `json:"stock_advertencia,omitempty"`
}

// ProductoResponse representación HTTP de un producto.
type ProductoResponse struct {
	ID               string          `json:"id"`
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Descripcion      string          `json:"descripcion,omitempty"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	PrecioCosto      decimal.Decimal `json:"precio_costo"`
	StockActual      int             `json:"stock_actual"`
	StockMinimo      int             `json:"stock_minimo"`
	StockAdvertencia int             `json:"stock_advertencia"`
	Estado           string          `json:"estado"`
	Serializado      bool            `json:"serializado"`
	Activo           bool            `json:"activo"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToProductoResponse mapea la entidad a su representación HTTP.
func ToProductoResponse(p *entity.Producto) *ProductoResponse {
	return &ProductoResponse{
		ID:               p.ID,
		Codigo:           p.Codigo,
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		PrecioVenta:      p.PrecioVenta,
		PrecioCosto:      p.PrecioCosto,
		StockActual:      p.StockActual,
		StockMinimo:      p.StockMinimo,
		StockAdvertencia: p.StockAdvertencia,
		Estado:           string(p.Estado),
		Serializado:      p.Serializado,
		Activo:           p.Activo,
		CreatedAt:        p.CreatedAt,
	}
}
