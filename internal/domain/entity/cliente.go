package entity

import "time"

// Cliente comprador o consignatario.
type Cliente struct {
	ID        string
	Nombre    string
	Documento string // cédula o RIF
	Telefono  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
