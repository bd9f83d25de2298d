package dto

import "github.com/google/uuid"

type PronelisRequest struct {
	Nombre    string   `json:"nombre"    validate:"required,min=1,max=150"`
	Productos []string `json:"productos"`
}

type PronelisResponse struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Productos []string  `json:"productos"`
}
