package infra

import (
	"fmt"

	"mireparto/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, then creates or
// updates every table and applies the idempotent SQL patches GORM cannot
// express on its own.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Models lists every persisted document type in migration order.
func Models() []any {
	return []any{
		&model.Usuario{},
		&model.Reparto{},
		&model.SaldoCliente{},
		&model.TransferenciaCliente{},
		&model.Proveedor{},
		&model.Pronelis{},
		&model.ListaPrecios{},
		&model.Semana{},
	}
}

// RunMigrations runs AutoMigrate and the Postgres schema patches. Integration
// tests call it against their container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches creates the expression indexes behind the ordered
// listings and case-insensitive lookups. Each statement uses IF NOT EXISTS
// so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE INDEX IF NOT EXISTS idx_saldos_clientes_cliente_fecha
		    ON saldos_clientes (cliente ASC, fecha DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_listas_precios_paquete_fecha
		    ON listas_precios (lower(paquete), fecha DESC, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_pronelis_nombre_lower
		    ON pronelis (lower(nombre))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_usuarios_email_lower
		    ON usuarios (lower(email)) WHERE email IS NOT NULL`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
