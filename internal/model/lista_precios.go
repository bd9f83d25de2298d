package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrecioProducto is one priced product in a supplier's list.
type PrecioProducto struct {
	Producto string          `json:"producto"`
	Precio   decimal.Decimal `json:"precio"`
}

// ListaPrecios is one supplier's prices for a package on a given date.
// ProveedorNombre is copied at write time so lists survive supplier edits.
type ListaPrecios struct {
	Documento
	ProveedorID     uuid.UUID        `gorm:"type:uuid;index;not null"`
	ProveedorNombre string           `gorm:"not null"`
	Paquete         string           `gorm:"index"`
	Fecha           string           `gorm:"type:varchar(10);index;not null"`
	Precios         []PrecioProducto `gorm:"type:jsonb;serializer:json"`
	Notas           *string
}

func (ListaPrecios) TableName() string { return "listas_precios" }

// PrecioDe returns the price of producto, matched case-insensitively.
func (l ListaPrecios) PrecioDe(producto string) (decimal.Decimal, bool) {
	for _, p := range l.Precios {
		if equalFoldTrim(p.Producto, producto) {
			return p.Precio, true
		}
	}
	return decimal.Zero, false
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
