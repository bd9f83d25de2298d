package dto

import (
	"time"

	"mireparto/internal/model"

	"github.com/google/uuid"
)

// SemanaRequest replaces the whole ledger.
type SemanaRequest struct {
	FechaInicio string                    `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	Mercaderia  []model.EntradaMercaderia `json:"mercaderia"`
	Embutidos   []model.EntradaEmbutidos  `json:"embutidos"`
	Empleados   []model.Empleado          `json:"empleados"`
	Adelantos   []model.Adelanto          `json:"adelantos"`
	Gastos      []model.Gasto             `json:"gastos"`
	Cuentas     []model.CuentaCliente     `json:"cuentas"`
}

type SemanaResponse struct {
	UsuarioID   uuid.UUID                 `json:"usuario_id"`
	FechaInicio string                    `json:"fecha_inicio"`
	Mercaderia  []model.EntradaMercaderia `json:"mercaderia"`
	Embutidos   []model.EntradaEmbutidos  `json:"embutidos"`
	Empleados   []model.Empleado          `json:"empleados"`
	Adelantos   []model.Adelanto          `json:"adelantos"`
	Gastos      []model.Gasto             `json:"gastos"`
	Cuentas     []model.CuentaCliente     `json:"cuentas"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

type ResumenSemanaResponse struct {
	FechaInicio string `json:"fecha_inicio"`
	model.ResumenSemana
}
