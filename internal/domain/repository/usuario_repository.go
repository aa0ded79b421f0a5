package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// UsuarioRepository puerto de persistencia para operadores.
type UsuarioRepository interface {
	Crear(u *entity.Usuario) error
	GetByEmail(email string) (*entity.Usuario, error)
	GetByID(id string) (*entity.Usuario, error)
}
