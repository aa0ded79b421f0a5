package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado             = errors.New("recurso no encontrado")
	ErrProductoNoEncontrado     = errors.New("producto no encontrado o inactivo")
	ErrUnidadNoEncontrada       = errors.New("unidad serializada no encontrada")
	ErrVentaNoEncontrada        = errors.New("venta no encontrada")
	ErrConsignacionNoEncontrada = errors.New("consignación no encontrada")
	ErrClienteNoEncontrado      = errors.New("cliente no encontrado")

	ErrEntradaInvalida     = errors.New("entrada inválida")
	ErrTransicionInvalida  = errors.New("transición de estado no permitida")
	ErrUnidadNoDisponible  = errors.New("la unidad no está disponible")
	ErrLineaNoPendiente    = errors.New("la línea de consignación no está pendiente")
	ErrVentaDeConsignacion = errors.New("la venta proviene de una consignación y no puede anularse")

	ErrStockInsuficiente = errors.New("stock insuficiente")
	ErrSerialDuplicado   = errors.New("serial ya registrado")
	ErrDuplicado         = errors.New("recurso duplicado")

	ErrPagosInconsistentes = errors.New("los pagos no cuadran con el total de la venta")
	ErrUmbralesInvalidos   = errors.New("stock mínimo debe ser menor o igual al de advertencia")
	ErrTasaNoDisponible    = errors.New("tasa de cambio no disponible")

	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrNoAutorizado          = errors.New("no autorizado")
)
