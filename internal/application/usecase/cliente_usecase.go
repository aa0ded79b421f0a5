package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ClienteUseCase alta y consulta de clientes/consignatarios.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Crear registra un cliente.
func (uc *ClienteUseCase) Crear(in dto.CrearClienteRequest) (*entity.Cliente, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Documento: in.Documento,
		Telefono:  in.Telefono,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Crear(cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

// GetByID obtiene un cliente.
func (uc *ClienteUseCase) GetByID(id string) (*entity.Cliente, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrClienteNoEncontrado
	}
	return cliente, nil
}

// Listar lista clientes paginados.
func (uc *ClienteUseCase) Listar(limit, offset int) ([]*entity.Cliente, error) {
	return uc.repo.Listar(limit, offset)
}
