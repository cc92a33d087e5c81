package entity

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Material representa un tipo de material reciclable perteneciente a un usuario.
// Name es único por usuario (constraint uq_materiais_usuario_nome).
type Material struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Unit        string // unidad de medida (kg, un, l...)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeName recorta espacios y lleva el nombre a NFC para que "Papelão" compuesto
// y descompuesto se consideren el mismo nombre.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
