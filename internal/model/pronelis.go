package model

// Pronelis is a named template of product slots used to line up supplier
// prices. It carries no prices.
type Pronelis struct {
	Documento
	Nombre    string   `gorm:"index;not null"`
	Productos []string `gorm:"type:jsonb;serializer:json"`
}

func (Pronelis) TableName() string { return "pronelis" }
