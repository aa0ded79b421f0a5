package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/consignment"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ConsignacionHandler maneja entregas en consignación y su resolución (protegido).
type ConsignacionHandler struct {
	uc         *consignment.ConsignacionUseCase
	consigRepo repository.ConsignacionRepository
}

// NewConsignacionHandler construye el handler.
func NewConsignacionHandler(uc *consignment.ConsignacionUseCase, consigRepo repository.ConsignacionRepository) *ConsignacionHandler {
	return &ConsignacionHandler{uc: uc, consigRepo: consigRepo}
}

// Crear entrega unidades serializadas a un consignatario.
func (h *ConsignacionHandler) Crear(c *fiber.Ctx) error {
	usuarioID := GetUsuarioID(c)
	var in dto.CrearConsignacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lineas := make([]consignment.LineaConsignacionInput, len(in.Lineas))
	for i, l := range in.Lineas {
		lineas[i] = consignment.LineaConsignacionInput{Serial: l.Serial, PrecioConsignacion: l.PrecioConsignacion}
	}
	out, err := h.uc.CrearConsignacion(c.Context(), in.ConsignatarioID, usuarioID, in.FechaLimite, lineas)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ConsignacionResponse{
		ID:              out.ID,
		ConsignatarioID: out.ConsignatarioID,
		FechaEntrega:    out.FechaEntrega,
		FechaLimite:     out.FechaLimite,
	})
}

// GetByID devuelve la consignación con sus líneas.
func (h *ConsignacionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	consig, err := h.consigRepo.GetByID(id)
	if err != nil {
		return errorJSON(c, err)
	}
	if consig == nil {
		return errorJSON(c, domain.ErrConsignacionNoEncontrada)
	}
	detalles, err := h.consigRepo.ListarDetalles(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"consignacion": dto.ConsignacionResponse{
			ID:              consig.ID,
			ConsignatarioID: consig.ConsignatarioID,
			FechaEntrega:    consig.FechaEntrega,
			FechaLimite:     consig.FechaLimite,
		},
		"detalles": toDetallesConsignacion(detalles),
	})
}

// Pendientes lista las líneas ENTREGADO de un consignatario.
func (h *ConsignacionHandler) Pendientes(c *fiber.Ctx) error {
	clienteID := c.Query("consignatario_id")
	if clienteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "consignatario_id es requerido"})
	}
	detalles, err := h.consigRepo.ListarPendientesPorConsignatario(clienteID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(detalles), "detalles": toDetallesConsignacion(detalles)})
}

// ReportarVendidas convierte líneas entregadas en una venta agregada.
func (h *ConsignacionHandler) ReportarVendidas(c *fiber.Ctx) error {
	usuarioID := GetUsuarioID(c)
	var in dto.ReportarLineasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fecha := time.Now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	venta, err := h.uc.ReportarVendidas(c.Context(), in.LineaIDs, fecha, usuarioID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toVentaResponse(venta, nil))
}

// ReportarDevueltas devuelve líneas entregadas al stock disponible.
func (h *ConsignacionHandler) ReportarDevueltas(c *fiber.Ctx) error {
	usuarioID := GetUsuarioID(c)
	var in dto.ReportarLineasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fecha := time.Now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	if err := h.uc.ReportarDevueltas(c.Context(), in.LineaIDs, fecha, usuarioID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "líneas devueltas"})
}

// RegistrarAbono registra un pago del consignatario.
func (h *ConsignacionHandler) RegistrarAbono(c *fiber.Ctx) error {
	var in dto.RegistrarAbonoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	abono, err := h.uc.RegistrarAbono(c.Context(), in.ConsignatarioID, in.Monto, in.MetodoPago, in.ConsignacionID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(abono)
}

// ListarAbonos lista los abonos de un consignatario.
func (h *ConsignacionHandler) ListarAbonos(c *fiber.Ctx) error {
	clienteID := c.Query("consignatario_id")
	if clienteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "consignatario_id es requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	abonos, err := h.consigRepo.ListarAbonos(clienteID, page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(abonos), "abonos": abonos})
}

func toDetallesConsignacion(list []*entity.DetalleConsignacion) []fiber.Map {
	out := make([]fiber.Map, len(list))
	for i, d := range list {
		out[i] = fiber.Map{
			"id":                  d.ID,
			"consignacion_id":     d.ConsignacionID,
			"producto_id":         d.ProductoID,
			"serial":              d.Serial,
			"precio_consignacion": d.PrecioConsignacion,
			"estado":              d.Estado,
			"venta_id":            d.VentaID,
			"fecha_resuelto":      d.FechaResuelto,
		}
	}
	return out
}
