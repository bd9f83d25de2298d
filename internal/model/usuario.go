package model

// Usuario is an operator account. Its id also keys the weekly ledger.
type Usuario struct {
	Documento
	Username     string `gorm:"uniqueIndex;not null"`
	Nombre       string `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Activo       bool   `gorm:"not null;default:true"`
}
