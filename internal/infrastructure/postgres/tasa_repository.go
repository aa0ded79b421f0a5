package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.TasaRepository = (*TasaRepo)(nil)

// TasaRepo implementación de TasaRepository sobre la tabla tasas_cambio.
type TasaRepo struct {
	q Querier
}

func NewTasaRepository(q Querier) *TasaRepo {
	return &TasaRepo{q: q}
}

// Guardar persiste una nueva tasa capturada.
func (r *TasaRepo) Guardar(t *entity.TasaCambio) error {
	query := `
		INSERT INTO tasas_cambio (id, moneda, tasa, fecha)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, t.ID, t.Moneda, t.Tasa, t.Fecha)
	if err != nil {
		return fmt.Errorf("insert tasa: %w", err)
	}
	return nil
}

// TasaActual devuelve la tasa más reciente registrada para la moneda.
func (r *TasaRepo) TasaActual(moneda string) (*entity.TasaCambio, error) {
	query := `
		SELECT id, moneda, tasa, fecha
		FROM tasas_cambio WHERE moneda = $1
		ORDER BY fecha DESC LIMIT 1`
	var t entity.TasaCambio
	err := r.q.QueryRow(context.Background(), query, moneda).Scan(&t.ID, &t.Moneda, &t.Tasa, &t.Fecha)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTasaNoDisponible
		}
		return nil, fmt.Errorf("get tasa: %w", err)
	}
	return &t, nil
}

// TasaProviderAdapter expone un TasaRepository como oráculo de conversión
// para la liquidación de ventas (moneda base se resuelve a tasa 1).
type TasaProviderAdapter struct {
	repo repository.TasaRepository
}

func NewTasaProviderAdapter(repo repository.TasaRepository) *TasaProviderAdapter {
	return &TasaProviderAdapter{repo: repo}
}

func (a *TasaProviderAdapter) TasaActual(moneda string) (decimal.Decimal, error) {
	if moneda == "" || moneda == entity.MonedaBase {
		return decimal.NewFromInt(1), nil
	}
	t, err := a.repo.TasaActual(moneda)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return t.Tasa, nil
}
