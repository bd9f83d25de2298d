package model

import (
	"time"

	"mireparto/internal/format"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pesada is a weighed item: a cut of meat or a sausage type.
type Pesada struct {
	Nombre string        `json:"nombre"`
	Kg     format.Amount `json:"kg"`
	Precio format.Amount `json:"precio"`
}

func (p Pesada) Subtotal() decimal.Decimal {
	return p.Kg.Value().Mul(p.Precio.Value())
}

type EntradaMercaderia struct {
	Dia       string   `json:"dia"`
	Proveedor string   `json:"proveedor"`
	Cortes    []Pesada `json:"cortes"`
}

type EntradaEmbutidos struct {
	Dia   string   `json:"dia"`
	Tipos []Pesada `json:"tipos"`
}

type Empleado struct {
	Nombre string        `json:"nombre"`
	Sueldo format.Amount `json:"sueldo"`
}

type Adelanto struct {
	Empleado    string        `json:"empleado"`
	Dia         string        `json:"dia"`
	Monto       format.Amount `json:"monto"`
	Descripcion string        `json:"descripcion,omitempty"`
}

type Gasto struct {
	Fecha       string        `json:"fecha"`
	Descripcion string        `json:"descripcion"`
	Monto       format.Amount `json:"monto"`
}

type CargoDia struct {
	Dia   string        `json:"dia"`
	Monto format.Amount `json:"monto"`
}

type CuentaCliente struct {
	Nombre string     `json:"nombre"`
	Cargos []CargoDia `json:"cargos"`
}

// Semana is the weekly ledger of one user. There is at most one per user.
type Semana struct {
	UsuarioID   uuid.UUID           `gorm:"type:uuid;primaryKey"`
	FechaInicio string              `gorm:"type:varchar(10);not null"`
	Mercaderia  []EntradaMercaderia `gorm:"type:jsonb;serializer:json"`
	Embutidos   []EntradaEmbutidos  `gorm:"type:jsonb;serializer:json"`
	Empleados   []Empleado          `gorm:"type:jsonb;serializer:json"`
	Adelantos   []Adelanto          `gorm:"type:jsonb;serializer:json"`
	Gastos      []Gasto             `gorm:"type:jsonb;serializer:json"`
	Cuentas     []CuentaCliente     `gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaldoEmpleado is what is still owed to an employee this week.
type SaldoEmpleado struct {
	Nombre    string          `json:"nombre"`
	Sueldo    decimal.Decimal `json:"sueldo"`
	Adelantos decimal.Decimal `json:"adelantos"`
	Saldo     decimal.Decimal `json:"saldo"`
}

type ResumenSemana struct {
	TotalMercaderia decimal.Decimal `json:"total_mercaderia"`
	TotalEmbutidos  decimal.Decimal `json:"total_embutidos"`
	TotalSueldos    decimal.Decimal `json:"total_sueldos"`
	TotalAdelantos  decimal.Decimal `json:"total_adelantos"`
	TotalGastos     decimal.Decimal `json:"total_gastos"`
	TotalCuentas    decimal.Decimal `json:"total_cuentas"`
	TotalEgresos    decimal.Decimal `json:"total_egresos"`
	Empleados       []SaldoEmpleado `json:"empleados"`
}

// Resumen totals the week. Advances are matched to employees by name.
func (s Semana) Resumen() ResumenSemana {
	r := ResumenSemana{
		TotalMercaderia: decimal.Zero,
		TotalEmbutidos:  decimal.Zero,
		TotalSueldos:    decimal.Zero,
		TotalAdelantos:  decimal.Zero,
		TotalGastos:     decimal.Zero,
		TotalCuentas:    decimal.Zero,
		Empleados:       make([]SaldoEmpleado, 0, len(s.Empleados)),
	}
	for _, m := range s.Mercaderia {
		for _, c := range m.Cortes {
			r.TotalMercaderia = r.TotalMercaderia.Add(c.Subtotal())
		}
	}
	for _, e := range s.Embutidos {
		for _, t := range e.Tipos {
			r.TotalEmbutidos = r.TotalEmbutidos.Add(t.Subtotal())
		}
	}
	for _, a := range s.Adelantos {
		r.TotalAdelantos = r.TotalAdelantos.Add(a.Monto.Value())
	}
	for _, e := range s.Empleados {
		sueldo := e.Sueldo.Value()
		adelantos := decimal.Zero
		for _, a := range s.Adelantos {
			if equalFoldTrim(a.Empleado, e.Nombre) {
				adelantos = adelantos.Add(a.Monto.Value())
			}
		}
		r.TotalSueldos = r.TotalSueldos.Add(sueldo)
		r.Empleados = append(r.Empleados, SaldoEmpleado{
			Nombre:    e.Nombre,
			Sueldo:    sueldo,
			Adelantos: adelantos,
			Saldo:     sueldo.Sub(adelantos),
		})
	}
	for _, g := range s.Gastos {
		r.TotalGastos = r.TotalGastos.Add(g.Monto.Value())
	}
	for _, c := range s.Cuentas {
		for _, cargo := range c.Cargos {
			r.TotalCuentas = r.TotalCuentas.Add(cargo.Monto.Value())
		}
	}
	r.TotalEgresos = r.TotalMercaderia.
		Add(r.TotalEmbutidos).
		Add(r.TotalSueldos).
		Add(r.TotalGastos)
	return r
}
