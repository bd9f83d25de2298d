package dto

import (
	"time"

	"github.com/google/uuid"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=1,max=150"`
	Contacto *string `json:"contacto" validate:"omitempty,max=200"`
}

// ActualizarProveedorRequest is a partial update: absent fields keep their value.
type ActualizarProveedorRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=1,max=150"`
	Contacto *string `json:"contacto" validate:"omitempty,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Contacto  *string   `json:"contacto"`
	CreatedAt time.Time `json:"created_at"`
}
