package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// VentaRepository puerto de persistencia para ventas, detalles y pagos.
// Eliminar solo se usa desde la acción compensatoria AnularVenta, dentro de
// la misma transacción que revierte los efectos de stock.
type VentaRepository interface {
	Crear(v *entity.Venta) error
	CrearDetalle(d *entity.DetalleVenta) error
	CrearPago(p *entity.PagoVenta) error
	GetByID(id string) (*entity.Venta, error)
	ListarDetalles(ventaID string) ([]*entity.DetalleVenta, error)
	ListarPagos(ventaID string) ([]*entity.PagoVenta, error)
	Listar(limit, offset int) ([]*entity.Venta, error)
	Eliminar(id string) error
}
