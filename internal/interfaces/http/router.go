package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/consignment"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductoUC    *usecase.ProductoUseCase
	ClienteUC     *usecase.ClienteUseCase
	Ledger        *inventory.StockLedger
	Unidades      *inventory.RegistroUnidades
	LiquidarVenta *sales.LiquidarVentaUseCase
	Consignacion  *consignment.ConsignacionUseCase
	UnidadRepo    repository.UnidadRepository
	MovRepo       repository.MovimientoRepository
	AlertaRepo    repository.AlertaRepository
	VentaRepo     repository.VentaRepository
	ConsigRepo    repository.ConsignacionRepository
	TasaRepo      repository.TasaRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Crear)
	productos.Get("/", productoHandler.Listar)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Actualizar)
	productos.Delete("/:id", productoHandler.Desactivar)

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Crear)
	clientes.Get("/", clienteHandler.Listar)
	clientes.Get("/:id", clienteHandler.GetByID)

	// Inventario: ajustes, unidades, movimientos y alertas
	inv := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.Ledger, deps.Unidades, deps.UnidadRepo, deps.MovRepo, deps.AlertaRepo)
	inv.Post("/ajustes", inventarioHandler.AjustarStock)
	inv.Post("/unidades", inventarioHandler.RegistrarUnidades)
	inv.Get("/unidades", inventarioHandler.ListarUnidades)
	inv.Get("/unidades/:serial", inventarioHandler.GetUnidad)
	inv.Post("/unidades/:serial/devolucion", inventarioHandler.DevolverUnidad)
	inv.Post("/unidades/:serial/defectuosa", inventarioHandler.MarcarDefectuosa)
	inv.Post("/unidades/:serial/reingreso", inventarioHandler.ReingresarUnidad)
	inv.Get("/movimientos", inventarioHandler.ListarMovimientos)
	inv.Get("/alertas", inventarioHandler.ListarAlertas)
	inv.Post("/alertas/:id/resolver", inventarioHandler.ResolverAlerta)

	// Ventas
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.LiquidarVenta, deps.VentaRepo)
	ventas.Post("/", ventaHandler.Crear)
	ventas.Get("/", ventaHandler.Listar)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Delete("/:id", ventaHandler.Anular)

	// Consignaciones
	consig := protected.Group("/consignaciones")
	consignacionHandler := NewConsignacionHandler(deps.Consignacion, deps.ConsigRepo)
	consig.Post("/", consignacionHandler.Crear)
	consig.Get("/pendientes", consignacionHandler.Pendientes)
	consig.Post("/reportar-vendidas", consignacionHandler.ReportarVendidas)
	consig.Post("/reportar-devueltas", consignacionHandler.ReportarDevueltas)
	consig.Post("/abonos", consignacionHandler.RegistrarAbono)
	consig.Get("/abonos", consignacionHandler.ListarAbonos)
	consig.Get("/:id", consignacionHandler.GetByID)

	// Tasas de cambio
	tasas := protected.Group("/tasas")
	tasaHandler := NewTasaHandler(deps.TasaRepo)
	tasas.Post("/", tasaHandler.Guardar)
	tasas.Get("/:moneda", tasaHandler.TasaActual)
}
