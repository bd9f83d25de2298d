package dto

import (
	"time"

	"mireparto/internal/format"
	"mireparto/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PrecioInput struct {
	Producto string        `json:"producto"`
	Precio   format.Amount `json:"precio"`
}

type ListaPreciosRequest struct {
	ProveedorID uuid.UUID     `json:"proveedor_id" validate:"required"`
	Paquete     string        `json:"paquete"      validate:"max=150"`
	Fecha       string        `json:"fecha"        validate:"omitempty,datetime=2006-01-02"`
	Precios     []PrecioInput `json:"precios"`
	Notas       *string       `json:"notas"        validate:"omitempty,max=1000"`
}

// ListaPreciosMasivaRequest saves the same prices for several suppliers.
type ListaPreciosMasivaRequest struct {
	ProveedorIDs []uuid.UUID   `json:"proveedor_ids" validate:"required,min=1"`
	Paquete      string        `json:"paquete"       validate:"max=150"`
	Fecha        string        `json:"fecha"         validate:"omitempty,datetime=2006-01-02"`
	Precios      []PrecioInput `json:"precios"`
	Notas        *string       `json:"notas"         validate:"omitempty,max=1000"`
}

type CompararPreciosQuery struct {
	Paquete string `form:"paquete" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ListaPreciosResponse struct {
	ID              uuid.UUID              `json:"id"`
	ProveedorID     uuid.UUID              `json:"proveedor_id"`
	ProveedorNombre string                 `json:"proveedor_nombre"`
	Paquete         string                 `json:"paquete"`
	Fecha           string                 `json:"fecha"`
	FechaDisplay    string                 `json:"fecha_display"`
	Precios         []model.PrecioProducto `json:"precios"`
	Notas           *string                `json:"notas"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ResultadoMasivo is the outcome of one supplier's write. Writes are
// independent, so some may succeed while others fail.
type ResultadoMasivo struct {
	ProveedorID uuid.UUID  `json:"proveedor_id"`
	Proveedor   string     `json:"proveedor,omitempty"`
	ListaID     *uuid.UUID `json:"lista_id,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type ListaPreciosMasivaResponse struct {
	Exitosos   int               `json:"exitosos"`
	Fallidos   int               `json:"fallidos"`
	Resultados []ResultadoMasivo `json:"resultados"`
}

type ImportacionPreciosResponse struct {
	Precios       []model.PrecioProducto `json:"precios"`
	FilasLeidas   int                    `json:"filas_leidas"`
	FilasOmitidas int                    `json:"filas_omitidas"`
	Hoja          string                 `json:"hoja"`
}

type PrecioProveedor struct {
	ProveedorID uuid.UUID       `json:"proveedor_id"`
	Proveedor   string          `json:"proveedor"`
	Precio      decimal.Decimal `json:"precio"`
	Fecha       string          `json:"fecha"`
}

type ComparacionProducto struct {
	Producto  string            `json:"producto"`
	Precios   []PrecioProveedor `json:"precios"`
	MasBarato *PrecioProveedor  `json:"mas_barato"`
}

type ComparacionResponse struct {
	Paquete   string                `json:"paquete"`
	Productos []ComparacionProducto `json:"productos"`
}
