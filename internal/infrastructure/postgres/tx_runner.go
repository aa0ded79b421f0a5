package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/application/consignment"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner satisface los puertos de transacción de cada paquete de aplicación.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.VentasTxRunner = (*TxRunner)(nil)
var _ consignment.ConsignacionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los locks
// de fila tomados con SELECT FOR UPDATE viven hasta Commit/Rollback, lo que
// serializa deltas de stock concurrentes sobre el mismo producto.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de inventario y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productoRepo repository.ProductoRepository,
	unidadRepo repository.UnidadRepository,
	movRepo repository.MovimientoRepository,
	alertaRepo repository.AlertaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductoRepository(tx),
		NewUnidadRepository(tx),
		NewMovimientoRepository(tx),
		NewAlertaRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVentas inicia una transacción con repos de inventario y ventas (para la liquidación de ventas).
func (r *TxRunner) RunVentas(ctx context.Context, fn func(
	productoRepo repository.ProductoRepository,
	unidadRepo repository.UnidadRepository,
	movRepo repository.MovimientoRepository,
	alertaRepo repository.AlertaRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductoRepository(tx),
		NewUnidadRepository(tx),
		NewMovimientoRepository(tx),
		NewAlertaRepository(tx),
		NewVentaRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunConsignacion inicia una transacción con los repos del ciclo de consignación.
func (r *TxRunner) RunConsignacion(ctx context.Context, fn func(
	productoRepo repository.ProductoRepository,
	unidadRepo repository.UnidadRepository,
	movRepo repository.MovimientoRepository,
	alertaRepo repository.AlertaRepository,
	ventaRepo repository.VentaRepository,
	consigRepo repository.ConsignacionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductoRepository(tx),
		NewUnidadRepository(tx),
		NewMovimientoRepository(tx),
		NewAlertaRepository(tx),
		NewVentaRepository(tx),
		NewConsignacionRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
