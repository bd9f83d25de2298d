package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mireparto/internal/dto"
	"mireparto/internal/format"
	"mireparto/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanaObtener_SemanaVaciaDesdeHoy(t *testing.T) {
	prev := format.Clock
	defer func() { format.Clock = prev }()
	format.Clock = func() time.Time { return time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC) }

	repo := newStubSemanaRepo()
	svc := NewSemanaService(repo, time.UTC)

	s, err := svc.Obtener(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", s.FechaInicio)
	assert.NotNil(t, s.Gastos)
	assert.Empty(t, repo.semanas)
}

func TestSemanaAgregarYResumen(t *testing.T) {
	svc := NewSemanaService(newStubSemanaRepo(), time.UTC)
	ctx := context.Background()
	uid := uuid.New()

	entradas := []struct {
		lista  string
		cuerpo string
	}{
		{ListaMercaderia, `{"dia":"lunes","proveedor":"Sur","cortes":[{"nombre":"Asado","kg":"10","precio":"4.000"}]}`},
		{ListaEmbutidos, `{"dia":"martes","tipos":[{"nombre":"Chorizo","kg":2.5,"precio":2000}]}`},
		{ListaEmpleados, `{"nombre":"Luis","sueldo":"80.000"}`},
		{ListaAdelantos, `{"empleado":"luis","dia":"miércoles","monto":"20.000"}`},
		{ListaGastos, `{"fecha":"2024-03-06","descripcion":"Nafta","monto":15000}`},
		{ListaCuentas, `{"nombre":"Almacén","cargos":[{"dia":"lunes","monto":3000}]}`},
	}
	for _, e := range entradas {
		_, err := svc.Agregar(ctx, uid, e.lista, json.RawMessage(e.cuerpo))
		require.NoError(t, err, e.lista)
	}

	r, err := svc.Resumen(ctx, uid)
	require.NoError(t, err)
	assert.True(t, r.TotalMercaderia.Equal(decimal.NewFromInt(40000)))
	assert.True(t, r.TotalEmbutidos.Equal(decimal.NewFromInt(5000)))
	assert.True(t, r.TotalSueldos.Equal(decimal.NewFromInt(80000)))
	assert.True(t, r.TotalAdelantos.Equal(decimal.NewFromInt(20000)))
	assert.True(t, r.TotalCuentas.Equal(decimal.NewFromInt(3000)))
	assert.True(t, r.TotalEgresos.Equal(decimal.NewFromInt(140000)))
	require.Len(t, r.Empleados, 1)
	assert.True(t, r.Empleados[0].Saldo.Equal(decimal.NewFromInt(60000)))

	data, nombre, err := svc.XLSX(ctx, uid)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, nombre, ".xlsx")
}

func TestSemanaAgregar_Rechazos(t *testing.T) {
	svc := NewSemanaService(newStubSemanaRepo(), time.UTC)
	ctx := context.Background()
	uid := uuid.New()
	var verr *ValidacionError

	_, err := svc.Agregar(ctx, uid, "facturas", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrNoEncontrado)

	_, err = svc.Agregar(ctx, uid, ListaEmpleados, json.RawMessage(`{"nombre":""}`))
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Agregar(ctx, uid, ListaGastos, json.RawMessage(`[1,2]`))
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Agregar(ctx, uid, ListaAdelantos, json.RawMessage(`{"empleado":"Luis","monto":"-5"}`))
	assert.ErrorAs(t, err, &verr)
}

func TestSemanaReemplazarYEliminar(t *testing.T) {
	repo := newStubSemanaRepo()
	svc := NewSemanaService(repo, time.UTC)
	ctx := context.Background()
	uid := uuid.New()

	s, err := svc.Reemplazar(ctx, uid, dto.SemanaRequest{
		FechaInicio: "2024-03-04",
		Empleados:   []model.Empleado{{Nombre: "Luis", Sueldo: format.AmountOf(1000)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", s.FechaInicio)
	assert.Len(t, repo.semanas, 1)

	require.NoError(t, svc.Eliminar(ctx, uid))
	assert.ErrorIs(t, svc.Eliminar(ctx, uid), ErrNoEncontrado)
}

func TestSemana_LimpiaTextoLibre(t *testing.T) {
	svc := NewSemanaService(newStubSemanaRepo(), time.UTC)
	ctx := context.Background()
	uid := uuid.New()

	s, err := svc.Agregar(ctx, uid, ListaMercaderia, json.RawMessage(
		`{"dia":"lunes","proveedor":"<b>Carnes</b> Sur","cortes":[{"nombre":"<i>vacío</i>","kg":"10","precio":"100"}]}`))
	require.NoError(t, err)
	require.Len(t, s.Mercaderia, 1)
	assert.Equal(t, "Carnes Sur", s.Mercaderia[0].Proveedor)
	assert.Equal(t, "vacío", s.Mercaderia[0].Cortes[0].Nombre)

	s, err = svc.Agregar(ctx, uid, ListaGastos, json.RawMessage(`{"descripcion":"<img src=x onerror=alert(1)>nafta","monto":"500"}`))
	require.NoError(t, err)
	assert.Equal(t, "nafta", s.Gastos[0].Descripcion)

	_, err = svc.Agregar(ctx, uid, ListaEmpleados, json.RawMessage(`{"nombre":"<img src=x>"}`))
	var verr *ValidacionError
	assert.ErrorAs(t, err, &verr)

	s, err = svc.Reemplazar(ctx, uid, dto.SemanaRequest{
		Empleados: []model.Empleado{{Nombre: "<b>Luis</b>"}},
		Adelantos: []model.Adelanto{{Empleado: " <u>Luis</u> ", Monto: format.AmountOf(50), Descripcion: "<a href='x'>vale</a>"}},
		Cuentas:   []model.CuentaCliente{{Nombre: "<em>Ana</em>"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Luis", s.Empleados[0].Nombre)
	assert.Equal(t, "Luis", s.Adelantos[0].Empleado)
	assert.Equal(t, "vale", s.Adelantos[0].Descripcion)
	assert.Equal(t, "Ana", s.Cuentas[0].Nombre)
}
