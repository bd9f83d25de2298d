package model

// Proveedor is a supplier referenced by price lists.
type Proveedor struct {
	Documento
	Nombre   string `gorm:"index;not null"`
	Contacto *string
}

func (Proveedor) TableName() string { return "proveedores" }
