package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TasaHandler captura y consulta de tasas de cambio (protegido). La
// liquidación de ventas lee la tasa vigente; este handler la alimenta.
type TasaHandler struct {
	repo repository.TasaRepository
}

// NewTasaHandler construye el handler.
func NewTasaHandler(repo repository.TasaRepository) *TasaHandler {
	return &TasaHandler{repo: repo}
}

// Guardar registra la tasa del día para una moneda.
func (h *TasaHandler) Guardar(c *fiber.Ctx) error {
	var in struct {
		Moneda string          `json:"moneda"`
		Tasa   decimal.Decimal `json:"tasa"`
		Fecha  *time.Time      `json:"fecha,omitempty"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Moneda == "" || !in.Tasa.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "moneda y tasa positiva son requeridas"})
	}
	fecha := time.Now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	t := &entity.TasaCambio{ID: uuid.NewString(), Moneda: in.Moneda, Tasa: in.Tasa, Fecha: fecha}
	if err := h.repo.Guardar(t); err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// TasaActual devuelve la tasa vigente para una moneda.
func (h *TasaHandler) TasaActual(c *fiber.Ctx) error {
	moneda := c.Params("moneda")
	t, err := h.repo.TasaActual(moneda)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(t)
}
