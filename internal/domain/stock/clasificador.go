package stock

import (
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// Clasificar deriva el estado de un producto a partir de su stock y umbrales
// (servicio de dominio puro, sin efectos secundarios):
//
//	stockActual ≤ 0                → AGOTADO
//	stockActual ≤ stockMinimo      → ALERTA
//	stockActual ≤ stockAdvertencia → ALERTA_W
//	en otro caso                   → OK
//
// Contrato: el caller garantiza stockMinimo ≤ stockAdvertencia (validado al
// escribir el producto con ValidarUmbrales, no aquí).
func Clasificar(stockActual, stockMinimo, stockAdvertencia int) entity.EstadoProducto {
	switch {
	case stockActual <= 0:
		return entity.EstadoAgotado
	case stockActual <= stockMinimo:
		return entity.EstadoAlerta
	case stockActual <= stockAdvertencia:
		return entity.EstadoAlertaW
	default:
		return entity.EstadoOK
	}
}

// Severidad orden total de severidad: OK < ALERTA_W < ALERTA < AGOTADO.
func Severidad(e entity.EstadoProducto) int {
	switch e {
	case entity.EstadoAlertaW:
		return 1
	case entity.EstadoAlerta:
		return 2
	case entity.EstadoAgotado:
		return 3
	default:
		return 0
	}
}

// TipoAlertaPara tipo de alerta que corresponde a un estado degradado.
func TipoAlertaPara(e entity.EstadoProducto) string {
	switch e {
	case entity.EstadoAlertaW:
		return entity.AlertaStockBajo
	case entity.EstadoAlerta:
		return entity.AlertaStockMinimo
	case entity.EstadoAgotado:
		return entity.AlertaAgotado
	default:
		return ""
	}
}

// UmbralPara umbral vigente que disparó un estado (para registrarlo en la alerta).
func UmbralPara(e entity.EstadoProducto, stockMinimo, stockAdvertencia int) int {
	switch e {
	case entity.EstadoAlertaW:
		return stockAdvertencia
	case entity.EstadoAlerta:
		return stockMinimo
	default:
		return 0
	}
}

// ValidarUmbrales rechaza umbrales incoherentes al crear o editar un producto.
func ValidarUmbrales(stockMinimo, stockAdvertencia int) error {
	if stockMinimo < 0 || stockAdvertencia < 0 || stockMinimo > stockAdvertencia {
		return fmt.Errorf("%w: minimo=%d advertencia=%d", domain.ErrUmbralesInvalidos, stockMinimo, stockAdvertencia)
	}
	return nil
}
