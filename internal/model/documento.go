package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Documento carries the id and timestamps every collection shares.
// Ids are generated in Go so SQLite-backed tests behave like Postgres.
type Documento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Documento) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
