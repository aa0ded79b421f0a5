package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ClienteRepository puerto de persistencia para clientes/consignatarios.
type ClienteRepository interface {
	Crear(c *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	Listar(limit, offset int) ([]*entity.Cliente, error)
}
