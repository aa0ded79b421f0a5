package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func nuevoEscenario() (*memStore, *LiquidarVentaUseCase) {
	store := newMemStore()
	store.clientes["c1"] = &entity.Cliente{ID: "c1", Nombre: "Cliente Uno"}
	runner := &fakeTxRunner{store: store}
	ledger := inventory.NewStockLedger(runner)
	unidades := inventory.NewRegistroUnidades(runner, ledger)
	uc := NewLiquidarVentaUseCase(
		runner,
		&memClienteRepo{store},
		&memProductoRepo{store},
		&memUnidadRepo{store},
		unidades,
		ledger,
		tasaFija{"VES": decimal.NewFromInt(40)},
		&memConsignacionLookup{store},
	)
	return store, uc
}

func producto(id string, stock int, precio int64) *entity.Producto {
	return &entity.Producto{
		ID:               id,
		Codigo:           "P-" + id,
		Nombre:           "producto " + id,
		PrecioVenta:      decimal.NewFromInt(precio),
		StockActual:      stock,
		StockMinimo:      3,
		StockAdvertencia: 5,
		Estado:           entity.EstadoOK,
		Activo:           true,
	}
}

func TestCrearVentaCalculaTotalesYDebita(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 10, 50)
	store.productos["p2"] = producto("p2", 10, 70)

	// 2×50 + 1×70 = 170
	out, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Lineas: []LineaInput{
			{ProductoID: "p1", Cantidad: 2},
			{ProductoID: "p2", Cantidad: 1},
		},
	})
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(170).Equal(out.Venta.Subtotal), "subtotal %s", out.Venta.Subtotal)
	require.True(t, decimal.NewFromInt(170).Equal(out.Venta.Total))
	require.Equal(t, entity.PagoPendiente, out.Venta.EstadoPago)
	require.Equal(t, entity.TipoVenta, out.Venta.Tipo)
	require.Len(t, out.Detalles, 2)

	require.Equal(t, 8, store.productos["p1"].StockActual)
	require.Equal(t, 9, store.productos["p2"].StockActual)

	// dos movimientos SALIDA referenciando la venta
	require.Len(t, store.movimientos, 2)
	for _, m := range store.movimientos {
		require.Equal(t, entity.MovimientoSalida, m.Tipo)
		require.Equal(t, out.Venta.ID, m.Referencia)
	}
	require.Equal(t, -2, store.movimientos[0].Cantidad)
	require.Equal(t, -1, store.movimientos[1].Cantidad)
}

func TestCrearVentaConDescuentoEImpuesto(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 10, 100)

	out, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Descuento: decimal.NewFromInt(20),
		Impuesto:  decimal.NewFromInt(16),
		Lineas: []LineaInput{
			{ProductoID: "p1", Cantidad: 2, Descuento: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	// línea: 2×100 − 10 = 190; total: 190 − 20 + 16 = 186
	require.True(t, decimal.NewFromInt(190).Equal(out.Venta.Subtotal))
	require.True(t, decimal.NewFromInt(186).Equal(out.Venta.Total))
}

func TestCrearVentaAtomicidadConLineaInvalida(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 10, 50)
	store.productos["p2"] = producto("p2", 10, 70)
	store.productos["p3"] = producto("p3", 10, 90)
	store.productos["p3"].Serializado = true
	store.unidades["S-X"] = &entity.UnidadSerializada{
		ID: "ux", Serial: "S-X", ProductoID: "p3", Estado: entity.UnidadVendido,
	}

	// la tercera línea referencia una unidad no disponible
	_, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Lineas: []LineaInput{
			{ProductoID: "p1", Cantidad: 2},
			{ProductoID: "p2", Cantidad: 1},
			{ProductoID: "p3", Cantidad: 1, Serial: "S-X"},
		},
	})
	require.ErrorIs(t, err, domain.ErrUnidadNoDisponible)

	// nada cambió: ni stock, ni venta, ni movimientos
	require.Equal(t, 10, store.productos["p1"].StockActual)
	require.Equal(t, 10, store.productos["p2"].StockActual)
	require.Empty(t, store.ventas)
	require.Empty(t, store.movimientos)
}

func TestCrearVentaSerializadaDebitaUnaUnidad(t *testing.T) {
	store, uc := nuevoEscenario()
	p := producto("p1", 1, 200)
	p.Serializado = true
	store.productos["p1"] = p
	store.unidades["S-1"] = &entity.UnidadSerializada{
		ID: "u1", Serial: "S-1", ProductoID: "p1", Estado: entity.UnidadDisponible, GarantiaMeses: 12,
	}

	fecha := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	out, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Fecha:     fecha,
		Lineas:    []LineaInput{{ProductoID: "p1", Cantidad: 1, Serial: "S-1"}},
	})
	require.NoError(t, err)
	require.Equal(t, 0, store.productos["p1"].StockActual)

	u := store.unidades["S-1"]
	require.Equal(t, entity.UnidadVendido, u.Estado)
	require.Equal(t, "c1", *u.ClienteID)
	require.Equal(t, fecha.AddDate(0, 12, 0), *u.VenceGarantia)
	require.NotNil(t, out.Detalles[0].Serial)
	require.Equal(t, "S-1", *out.Detalles[0].Serial)

	// cantidad ≠ 1 con serial es inválido
	_, err = uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1", UsuarioID: "u1",
		Lineas: []LineaInput{{ProductoID: "p1", Cantidad: 2, Serial: "S-1"}},
	})
	require.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCrearVentaConciliacionDePagos(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 10, 100)

	// pago completo en base + pago en VES convertido (tasa 40): 60 + 1600/40 = 100
	out, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Lineas:    []LineaInput{{ProductoID: "p1", Cantidad: 1}},
		Pagos: []PagoInput{
			{Metodo: "efectivo", Monto: decimal.NewFromInt(60)},
			{Metodo: "pago_movil", Moneda: "VES", Monto: decimal.NewFromInt(1600)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, entity.PagoPagado, out.Venta.EstadoPago)
	require.Len(t, store.pagos, 2)
	require.Equal(t, entity.MetodoEfectivo, store.pagos[0].Metodo)
	require.Equal(t, entity.MetodoPagoMovil, store.pagos[1].Metodo)
	require.True(t, decimal.NewFromInt(40).Equal(store.pagos[1].MontoBase))
}

func TestCrearVentaPagosQueNoCuadranRechazaTodo(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 10, 100)

	_, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Lineas:    []LineaInput{{ProductoID: "p1", Cantidad: 1}},
		Pagos:     []PagoInput{{Metodo: "efectivo", Monto: decimal.NewFromInt(90)}},
	})
	require.ErrorIs(t, err, domain.ErrPagosInconsistentes)
	require.Equal(t, 10, store.productos["p1"].StockActual)
	require.Empty(t, store.ventas)
	require.Empty(t, store.pagos)
}

func TestCrearVentaMonedaSinTasa(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 10, 100)

	_, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Lineas:    []LineaInput{{ProductoID: "p1", Cantidad: 1}},
		Pagos:     []PagoInput{{Metodo: "efectivo", Moneda: "EUR", Monto: decimal.NewFromInt(90)}},
	})
	require.ErrorIs(t, err, domain.ErrTasaNoDisponible)
}

func TestCrearVentaStockInsuficiente(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 2, 100)

	_, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Lineas:    []LineaInput{{ProductoID: "p1", Cantidad: 3}},
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	require.Equal(t, 2, store.productos["p1"].StockActual)
}

func TestCrearVentaClienteDesconocido(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 10, 100)

	_, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "fantasma",
		UsuarioID: "u1",
		Lineas:    []LineaInput{{ProductoID: "p1", Cantidad: 1}},
	})
	require.ErrorIs(t, err, domain.ErrClienteNoEncontrado)
}

func TestAnularVentaRestauraStockYUnidades(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 10, 50)
	p2 := producto("p2", 1, 200)
	p2.Serializado = true
	store.productos["p2"] = p2
	store.unidades["S-1"] = &entity.UnidadSerializada{
		ID: "u1", Serial: "S-1", ProductoID: "p2", Estado: entity.UnidadDisponible, GarantiaMeses: 6,
	}

	out, err := uc.CrearVenta(context.Background(), CrearVentaInput{
		ClienteID: "c1",
		UsuarioID: "u1",
		Lineas: []LineaInput{
			{ProductoID: "p1", Cantidad: 3},
			{ProductoID: "p2", Cantidad: 1, Serial: "S-1"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 7, store.productos["p1"].StockActual)
	require.Equal(t, 0, store.productos["p2"].StockActual)

	require.NoError(t, uc.AnularVenta(context.Background(), out.Venta.ID, "admin"))

	require.Equal(t, 10, store.productos["p1"].StockActual)
	require.Equal(t, 1, store.productos["p2"].StockActual)
	// la unidad vuelve DISPONIBLE con metadatos limpios
	u := store.unidades["S-1"]
	require.Equal(t, entity.UnidadDisponible, u.Estado)
	require.Nil(t, u.ClienteID)
	require.Nil(t, u.VenceGarantia)
	// venta y dependientes eliminados; la traza de movimientos queda
	require.Empty(t, store.ventas)
	require.Empty(t, store.detalles)
	require.Len(t, store.movimientos, 4)

	require.ErrorIs(t, uc.AnularVenta(context.Background(), out.Venta.ID, "admin"),
		domain.ErrVentaNoEncontrada)
}

func TestAnularVentaDeConsignacionRechazada(t *testing.T) {
	store, uc := nuevoEscenario()
	store.productos["p1"] = producto("p1", 0, 50)
	store.unidades["S-1"] = &entity.UnidadSerializada{
		ID: "u1", Serial: "S-1", ProductoID: "p1", Estado: entity.UnidadVendido,
	}

	// venta creada al reportar consignación vendida: su único débito de stock
	// fue la entrega, y la línea de consignación la referencia
	ventaID := "v-consig"
	store.ventas[ventaID] = &entity.Venta{
		ID: ventaID, NumeroOrden: "C-1", ClienteID: "c1",
		Tipo: entity.TipoVenta, EstadoPago: entity.PagoPendiente,
	}
	serial := "S-1"
	store.detalles = append(store.detalles, &entity.DetalleVenta{
		ID: "d1", VentaID: ventaID, ProductoID: "p1", Cantidad: 1, Serial: &serial,
	})
	store.lineasConsig = append(store.lineasConsig, &entity.DetalleConsignacion{
		ID: "l1", ConsignacionID: "cons-1", ProductoID: "p1", Serial: "S-1",
		Estado: entity.LineaVendida, VentaID: &ventaID,
	})

	err := uc.AnularVenta(context.Background(), ventaID, "admin")
	require.ErrorIs(t, err, domain.ErrVentaDeConsignacion)

	// nada se tocó: ni stock, ni unidad, ni la venta
	require.Equal(t, 0, store.productos["p1"].StockActual)
	require.Equal(t, entity.UnidadVendido, store.unidades["S-1"].Estado)
	require.Contains(t, store.ventas, ventaID)
	require.Empty(t, store.movimientos)
}
