package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// VentaHandler maneja la liquidación y consulta de ventas (protegido).
type VentaHandler struct {
	uc        *sales.LiquidarVentaUseCase
	ventaRepo repository.VentaRepository
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *sales.LiquidarVentaUseCase, ventaRepo repository.VentaRepository) *VentaHandler {
	return &VentaHandler{uc: uc, ventaRepo: ventaRepo}
}

// Crear liquida una venta completa: stock, detalles y pagos en una
// transacción.
func (h *VentaHandler) Crear(c *fiber.Ctx) error {
	usuarioID := GetUsuarioID(c)
	var in dto.CrearVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := sales.CrearVentaInput{
		ClienteID: in.ClienteID,
		UsuarioID: usuarioID,
		Descuento: in.Descuento,
		Impuesto:  in.Impuesto,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	} else {
		input.Fecha = time.Now()
	}
	for _, l := range in.Lineas {
		input.Lineas = append(input.Lineas, sales.LineaInput{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Descuento:      l.Descuento,
			Serial:         l.Serial,
		})
	}
	for _, p := range in.Pagos {
		input.Pagos = append(input.Pagos, sales.PagoInput{
			Metodo:     p.Metodo,
			Moneda:     p.Moneda,
			Monto:      p.Monto,
			Referencia: p.Referencia,
		})
	}
	out, err := h.uc.CrearVenta(c.Context(), input)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toVentaResponse(out.Venta, out.Detalles))
}

// GetByID obtiene una venta con sus detalles.
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	venta, err := h.ventaRepo.GetByID(id)
	if err != nil {
		return errorJSON(c, err)
	}
	if venta == nil {
		return errorJSON(c, domain.ErrVentaNoEncontrada)
	}
	detalles, err := h.ventaRepo.ListarDetalles(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toVentaResponse(venta, detalles))
}

// Listar lista ventas paginadas.
func (h *VentaHandler) Listar(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	ventas, err := h.ventaRepo.Listar(page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.VentaResponse, len(ventas))
	for i, v := range ventas {
		out[i] = toVentaResponse(v, nil)
	}
	return c.JSON(fiber.Map{"total": len(out), "ventas": out})
}

// Anular revierte la venta completa: stock, unidades y registros.
func (h *VentaHandler) Anular(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.AnularVenta(c.Context(), id, GetUsuarioID(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta anulada"})
}

func toVentaResponse(v *entity.Venta, detalles []*entity.DetalleVenta) dto.VentaResponse {
	out := dto.VentaResponse{
		ID:          v.ID,
		NumeroOrden: v.NumeroOrden,
		ClienteID:   v.ClienteID,
		Fecha:       v.Fecha,
		Subtotal:    v.Subtotal,
		Descuento:   v.Descuento,
		Impuesto:    v.Impuesto,
		Total:       v.Total,
		EstadoPago:  v.EstadoPago,
		Tipo:        v.Tipo,
	}
	for _, d := range detalles {
		out.Detalles = append(out.Detalles, dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Descuento:      d.Descuento,
			Subtotal:       d.Subtotal,
			Serial:         d.Serial,
		})
	}
	return out
}
