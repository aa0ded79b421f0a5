package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// TasaRepository puerto para tasas de cambio almacenadas. Este núcleo solo
// lee la tasa vigente; la captura la alimenta un servicio externo.
type TasaRepository interface {
	Guardar(t *entity.TasaCambio) error
	// TasaActual devuelve la tasa más reciente para la moneda, o
	// domain.ErrTasaNoDisponible si no hay ninguna.
	TasaActual(moneda string) (*entity.TasaCambio, error)
}
