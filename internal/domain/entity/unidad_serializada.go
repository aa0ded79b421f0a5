package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// EstadoUnidad estado de ciclo de vida de una unidad serializada.
type EstadoUnidad string

const (
	UnidadDisponible EstadoUnidad = "DISPONIBLE"
	UnidadConsignado EstadoUnidad = "CONSIGNADO" // entregada a un tercero, aún no vendida
	UnidadVendido    EstadoUnidad = "VENDIDO"
	UnidadDefectuoso EstadoUnidad = "DEFECTUOSO"
	UnidadDevuelto   EstadoUnidad = "DEVUELTO"
)

// transicionesUnidad máquina de estados permitida. El agregado se mueve en
// los bordes venta/devolución del ciclo; el reingreso DEVUELTO → DISPONIBLE
// es solo un cambio de estado.
var transicionesUnidad = map[EstadoUnidad][]EstadoUnidad{
	UnidadDisponible: {UnidadVendido, UnidadDefectuoso, UnidadConsignado},
	UnidadConsignado: {UnidadVendido, UnidadDisponible},
	UnidadVendido:    {UnidadDevuelto},
	UnidadDevuelto:   {UnidadDisponible},
}

// UnidadSerializada una fila por unidad física. Nunca se elimina: solo cambia
// de estado, para conservar la traza de auditoría.
type UnidadSerializada struct {
	ID            string
	Serial        string // único
	ProductoID    string
	Estado        EstadoUnidad
	CostoUnitario decimal.Decimal
	GarantiaMeses int
	Origen        string // compra, importación, etc.
	PrecioVenta   *decimal.Decimal
	FechaVenta    *time.Time
	VenceGarantia *time.Time // FechaVenta + GarantiaMeses
	ClienteID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TransicionarA cambia el estado si la transición está permitida.
func (u *UnidadSerializada) TransicionarA(nuevo EstadoUnidad) error {
	for _, permitido := range transicionesUnidad[u.Estado] {
		if permitido == nuevo {
			u.Estado = nuevo
			return nil
		}
	}
	return domain.ErrTransicionInvalida
}

// MarcarVendida transiciona a VENDIDO y fija los metadatos de la venta,
// incluida la fecha de vencimiento de garantía.
func (u *UnidadSerializada) MarcarVendida(clienteID string, precio decimal.Decimal, fecha time.Time) error {
	if err := u.TransicionarA(UnidadVendido); err != nil {
		return err
	}
	vence := fecha.AddDate(0, u.GarantiaMeses, 0)
	u.ClienteID = &clienteID
	u.PrecioVenta = &precio
	u.FechaVenta = &fecha
	u.VenceGarantia = &vence
	return nil
}

// RevertirVenta deshace una venta (acción compensatoria de AnularVenta):
// la unidad vuelve a DISPONIBLE y se limpian los metadatos de venta.
func (u *UnidadSerializada) RevertirVenta() error {
	if u.Estado != UnidadVendido {
		return domain.ErrTransicionInvalida
	}
	u.Estado = UnidadDisponible
	u.ClienteID = nil
	u.PrecioVenta = nil
	u.FechaVenta = nil
	u.VenceGarantia = nil
	return nil
}
