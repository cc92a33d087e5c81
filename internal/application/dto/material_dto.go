package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MaterialRequest entrada para crear o actualizar un material (PUT reemplaza nome, descricao y unidade).
type MaterialRequest struct {
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Unit        string `json:"unidade"`
}

// Validate valida los campos obligatorios y sus longitudes.
func (r *MaterialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Description, validation.RuneLength(0, 255)),
		validation.Field(&r.Unit, validation.Required, validation.RuneLength(1, 20)),
	)
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao"`
	Unit        string    `json:"unidade"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
