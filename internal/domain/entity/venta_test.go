package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClasificarMetodoPago(t *testing.T) {
	casos := map[string]string{
		"efectivo":    MetodoEfectivo,
		"  EFECTIVO ": MetodoEfectivo,
		"cash":        MetodoEfectivo,
		"Zelle":       MetodoZelle,
		"pago_movil":  MetodoPagoMovil,
		"pagomovil":   MetodoPagoMovil,
		"pm":          MetodoPagoMovil,
		"TRANSFERENCIA": MetodoTransferencia,
		"punto":         MetodoPunto,
		"POS":           MetodoPunto,
		"punto_venta":   MetodoPunto,
		"":              MetodoNoClasificado,
		"cripto":        MetodoNoClasificado,
	}
	for in, want := range casos {
		require.Equal(t, want, ClasificarMetodoPago(in), "entrada %q", in)
	}
}
