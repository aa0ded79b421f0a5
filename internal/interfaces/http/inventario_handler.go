package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// InventarioHandler maneja ajustes de stock, unidades serializadas,
// movimientos y alertas (protegido).
type InventarioHandler struct {
	ledger     *inventory.StockLedger
	unidades   *inventory.RegistroUnidades
	unidadRepo repository.UnidadRepository
	movRepo    repository.MovimientoRepository
	alertaRepo repository.AlertaRepository
}

// NewInventarioHandler construye el handler. Los repos se usan solo para
// lecturas; toda mutación pasa por los casos de uso.
func NewInventarioHandler(
	ledger *inventory.StockLedger,
	unidades *inventory.RegistroUnidades,
	unidadRepo repository.UnidadRepository,
	movRepo repository.MovimientoRepository,
	alertaRepo repository.AlertaRepository,
) *InventarioHandler {
	return &InventarioHandler{
		ledger:     ledger,
		unidades:   unidades,
		unidadRepo: unidadRepo,
		movRepo:    movRepo,
		alertaRepo: alertaRepo,
	}
}

// AjustarStock aplica un delta manual (AJUSTE) sobre el stock agregado.
func (h *InventarioHandler) AjustarStock(c *fiber.Ctx) error {
	usuarioID := GetUsuarioID(c)
	var in dto.AjusteStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ledger.AplicarDelta(c.Context(), inventory.DeltaInput{
		ProductoID:       in.ProductoID,
		Cantidad:         in.Cantidad,
		Tipo:             entity.MovimientoAjuste,
		Motivo:           in.Motivo,
		UsuarioID:        usuarioID,
		PermitirNegativo: in.PermitirNegativo,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.ResultadoDeltaResponse{
		StockAnterior:   res.StockAnterior,
		StockPosterior:  res.StockPosterior,
		EstadoAnterior:  string(res.EstadoAnterior),
		EstadoPosterior: string(res.EstadoPosterior),
	})
}

// RegistrarUnidades registra un lote de unidades serializadas (todo-o-nada).
func (h *InventarioHandler) RegistrarUnidades(c *fiber.Ctx) error {
	usuarioID := GetUsuarioID(c)
	var in dto.RegistrarUnidadesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	n, err := h.unidades.RegistrarUnidades(c.Context(), in.ProductoID, in.Seriales, in.CostoUnitario, in.GarantiaMeses, in.Origen, usuarioID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"registradas": n})
}

// GetUnidad consulta una unidad por serial.
func (h *InventarioHandler) GetUnidad(c *fiber.Ctx) error {
	serial := c.Params("serial")
	u, err := h.unidadRepo.GetBySerial(serial)
	if err != nil {
		return errorJSON(c, err)
	}
	if u == nil {
		return errorJSON(c, domain.ErrUnidadNoEncontrada)
	}
	return c.JSON(toUnidadResponse(u))
}

// ListarUnidades lista unidades de un producto, opcionalmente por estado.
func (h *InventarioHandler) ListarUnidades(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if estado := c.Query("estado"); estado != "" {
		list, err := h.unidadRepo.ListarPorEstado(entity.EstadoUnidad(estado), page.Limit, page.Offset)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(toUnidadesResponse(list))
	}
	productoID := c.Query("producto_id")
	if productoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id o estado es requerido"})
	}
	list, err := h.unidadRepo.ListarPorProducto(productoID, page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toUnidadesResponse(list))
}

// DevolverUnidad procesa la devolución de una unidad vendida.
func (h *InventarioHandler) DevolverUnidad(c *fiber.Ctx) error {
	serial := c.Params("serial")
	var in struct {
		Motivo string `json:"motivo"`
	}
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	u, err := h.unidades.DevolverUnidad(c.Context(), serial, in.Motivo, GetUsuarioID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toUnidadResponse(u))
}

// MarcarDefectuosa saca una unidad disponible del stock vendible.
func (h *InventarioHandler) MarcarDefectuosa(c *fiber.Ctx) error {
	serial := c.Params("serial")
	var in struct {
		Motivo string `json:"motivo"`
	}
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	u, err := h.unidades.MarcarDefectuosa(c.Context(), serial, in.Motivo, GetUsuarioID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toUnidadResponse(u))
}

// ReingresarUnidad vuelve a poner en venta una unidad devuelta.
func (h *InventarioHandler) ReingresarUnidad(c *fiber.Ctx) error {
	serial := c.Params("serial")
	u, err := h.unidades.ReingresarUnidad(c.Context(), serial, GetUsuarioID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toUnidadResponse(u))
}

// ListarMovimientos lista el ledger de un producto con filtros de fecha
// opcionales (RFC 3339) o, alternativamente, por referencia exacta.
func (h *InventarioHandler) ListarMovimientos(c *fiber.Ctx) error {
	if ref := c.Query("referencia"); ref != "" {
		list, err := h.movRepo.ListarPorReferencia(ref)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(toMovimientosResponse(list))
	}
	productoID := c.Query("producto_id")
	if productoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id o referencia es requerido"})
	}
	var desde, hasta *time.Time
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC 3339"})
		}
		desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC 3339"})
		}
		hasta = &t
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.movRepo.ListarPorProducto(productoID, desde, hasta, page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toMovimientosResponse(list))
}

// ListarAlertas lista alertas sin resolver, o todas las de un producto.
func (h *InventarioHandler) ListarAlertas(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	var (
		list []*entity.AlertaStock
		err  error
	)
	if productoID := c.Query("producto_id"); productoID != "" {
		list, err = h.alertaRepo.ListarPorProducto(productoID, page.Limit, page.Offset)
	} else {
		list, err = h.alertaRepo.ListarActivas(page.Limit, page.Offset)
	}
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.AlertaResponse, len(list))
	for i, a := range list {
		out[i] = dto.AlertaResponse{
			ID:            a.ID,
			ProductoID:    a.ProductoID,
			Tipo:          a.Tipo,
			StockAlCrear:  a.StockAlCrear,
			UmbralAlCrear: a.UmbralAlCrear,
			Mensaje:       a.Mensaje,
			Resuelta:      a.Resuelta,
			CreatedAt:     a.CreatedAt,
		}
	}
	return c.JSON(fiber.Map{"total": len(out), "alertas": out})
}

// ResolverAlerta marca una alerta como atendida.
func (h *InventarioHandler) ResolverAlerta(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.alertaRepo.Resolver(id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "alerta resuelta"})
}

func toUnidadResponse(u *entity.UnidadSerializada) dto.UnidadResponse {
	return dto.UnidadResponse{
		Serial:        u.Serial,
		ProductoID:    u.ProductoID,
		Estado:        string(u.Estado),
		CostoUnitario: u.CostoUnitario,
		GarantiaMeses: u.GarantiaMeses,
		PrecioVenta:   u.PrecioVenta,
		FechaVenta:    u.FechaVenta,
		VenceGarantia: u.VenceGarantia,
		ClienteID:     u.ClienteID,
	}
}

func toUnidadesResponse(list []*entity.UnidadSerializada) fiber.Map {
	out := make([]dto.UnidadResponse, len(list))
	for i, u := range list {
		out[i] = toUnidadResponse(u)
	}
	return fiber.Map{"total": len(out), "unidades": out}
}

func toMovimientosResponse(list []*entity.MovimientoStock) fiber.Map {
	out := make([]dto.MovimientoResponse, len(list))
	for i, m := range list {
		out[i] = dto.MovimientoResponse{
			ID:             m.ID,
			ProductoID:     m.ProductoID,
			Tipo:           m.Tipo,
			Cantidad:       m.Cantidad,
			StockAnterior:  m.StockAnterior,
			StockPosterior: m.StockPosterior,
			Referencia:     m.Referencia,
			Motivo:         m.Motivo,
			CreatedAt:      m.CreatedAt,
		}
	}
	return fiber.Map{"total": len(out), "movimientos": out}
}
