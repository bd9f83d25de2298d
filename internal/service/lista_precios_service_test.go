package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"mireparto/internal/dto"
	"mireparto/internal/format"
	"mireparto/internal/model"
	"mireparto/internal/realtime"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type listaFixture struct {
	svc      ListaPreciosService
	repo     *stubListaRepo
	provs    *stubProveedorRepo
	pronelis *stubPronelisRepo
	notifier *recordingNotifier
}

func newListaFixture() *listaFixture {
	f := &listaFixture{
		repo:     newStubListaRepo(),
		provs:    newStubProveedorRepo(),
		pronelis: newStubPronelisRepo(),
		notifier: newRecordingNotifier(),
	}
	f.svc = NewListaPreciosService(f.repo, f.provs, f.pronelis, f.notifier, time.UTC)
	return f
}

func (f *listaFixture) proveedor(nombre string) uuid.UUID {
	p := &model.Proveedor{Nombre: nombre}
	_ = f.provs.Create(context.Background(), p)
	return p.ID
}

func precio(producto string, v any) dto.PrecioInput {
	return dto.PrecioInput{Producto: producto, Precio: format.AmountOf(v)}
}

func TestListaCrear_FiltraYParsea(t *testing.T) {
	f := newListaFixture()
	sur := f.proveedor("Frigorífico Sur")

	resp, err := f.svc.Crear(context.Background(), dto.ListaPreciosRequest{
		ProveedorID: sur,
		Paquete:     "Vacuno",
		Fecha:       "2024-03-01",
		Precios: []dto.PrecioInput{
			precio("Asado", "$4.200,50"),
			precio("", 100),
			precio("Vacío", ""),
			precio("Matambre", 5100),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Precios, 2)
	assert.True(t, resp.Precios[0].Precio.Equal(decimal.RequireFromString("4200.5")))
	assert.Equal(t, "Frigorífico Sur", resp.ProveedorNombre)
	assert.Equal(t, 1, f.notifier.count(realtime.ListasPrecios))
}

func TestListaCrear_Rechazos(t *testing.T) {
	f := newListaFixture()
	sur := f.proveedor("Sur")
	var verr *ValidacionError

	_, err := f.svc.Crear(context.Background(), dto.ListaPreciosRequest{ProveedorID: sur, Precios: []dto.PrecioInput{precio("Asado", "")}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Ingrese al menos un precio", verr.Mensaje)

	_, err = f.svc.Crear(context.Background(), dto.ListaPreciosRequest{ProveedorID: uuid.New(), Precios: []dto.PrecioInput{precio("Asado", 1)}})
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, f.repo.creadas)
}

func TestListaCrearMasivo_ResultadoPorProveedor(t *testing.T) {
	f := newListaFixture()
	sur := f.proveedor("Sur")
	norte := f.proveedor("Norte")
	oeste := f.proveedor("Oeste")
	fantasma := uuid.New()
	f.repo.failFor[norte] = true

	resp, err := f.svc.CrearMasivo(context.Background(), dto.ListaPreciosMasivaRequest{
		ProveedorIDs: []uuid.UUID{sur, norte, oeste, fantasma},
		Paquete:      "Vacuno",
		Precios:      []dto.PrecioInput{precio("Asado", 4000)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Exitosos)
	assert.Equal(t, 2, resp.Fallidos)
	require.Len(t, resp.Resultados, 4)

	assert.NotNil(t, resp.Resultados[0].ListaID)
	assert.NotEmpty(t, resp.Resultados[1].Error)
	assert.Nil(t, resp.Resultados[1].ListaID)
	assert.NotNil(t, resp.Resultados[2].ListaID)
	assert.Equal(t, "Proveedor no encontrado", resp.Resultados[3].Error)

	assert.Equal(t, 2, f.repo.creadas)
	assert.Equal(t, 1, f.notifier.count(realtime.ListasPrecios))
}

func TestListaCrearMasivo_ProveedoresRepetidos(t *testing.T) {
	f := newListaFixture()
	sur := f.proveedor("Sur")
	norte := f.proveedor("Norte")

	resp, err := f.svc.CrearMasivo(context.Background(), dto.ListaPreciosMasivaRequest{
		ProveedorIDs: []uuid.UUID{sur, norte, sur, sur, norte},
		Paquete:      "Vacuno",
		Precios:      []dto.PrecioInput{precio("Asado", 4000)},
	})
	require.NoError(t, err)
	require.Len(t, resp.Resultados, 2)
	assert.Equal(t, sur, resp.Resultados[0].ProveedorID)
	assert.Equal(t, norte, resp.Resultados[1].ProveedorID)
	assert.Equal(t, 2, resp.Exitosos)
	assert.Zero(t, resp.Fallidos)
	assert.Equal(t, 2, f.repo.creadas)
}

func TestListaComparar_UltimoPrecioYMasBarato(t *testing.T) {
	f := newListaFixture()
	ctx := context.Background()
	sur := f.proveedor("Sur")
	norte := f.proveedor("Norte")

	require.NoError(t, f.pronelis.Crear(ctx, &model.Pronelis{Nombre: "Vacuno", Productos: []string{"Asado", "Vacío", "Lomo"}}))

	for _, l := range []dto.ListaPreciosRequest{
		{ProveedorID: sur, Paquete: "Vacuno", Fecha: "2024-01-01", Precios: []dto.PrecioInput{precio("Asado", 3000)}},
		{ProveedorID: sur, Paquete: "Vacuno", Fecha: "2024-02-01", Precios: []dto.PrecioInput{precio("Asado", 4200), precio("vacío", 3900)}},
		{ProveedorID: norte, Paquete: "vacuno", Fecha: "2024-01-15", Precios: []dto.PrecioInput{precio("Asado", 4100), precio("Vacío", 4000)}},
	} {
		_, err := f.svc.Crear(ctx, l)
		require.NoError(t, err)
	}

	resp, err := f.svc.Comparar(ctx, "Vacuno")
	require.NoError(t, err)
	require.Len(t, resp.Productos, 3)

	asado := resp.Productos[0]
	assert.Equal(t, "Asado", asado.Producto)
	require.Len(t, asado.Precios, 2)
	assert.Equal(t, "Norte", asado.Precios[0].Proveedor)
	assert.True(t, asado.Precios[1].Precio.Equal(decimal.NewFromInt(4200)))
	require.NotNil(t, asado.MasBarato)
	assert.Equal(t, "Norte", asado.MasBarato.Proveedor)

	vacio := resp.Productos[1]
	require.NotNil(t, vacio.MasBarato)
	assert.Equal(t, "Sur", vacio.MasBarato.Proveedor)

	lomo := resp.Productos[2]
	assert.Empty(t, lomo.Precios)
	assert.Nil(t, lomo.MasBarato)
}

func TestListaComparar_SinPlantilla(t *testing.T) {
	f := newListaFixture()
	ctx := context.Background()
	sur := f.proveedor("Sur")

	_, err := f.svc.Crear(ctx, dto.ListaPreciosRequest{ProveedorID: sur, Paquete: "Cerdo",
		Precios: []dto.PrecioInput{precio("Bondiola", 5000), precio("Pechito", 4000)}})
	require.NoError(t, err)

	resp, err := f.svc.Comparar(ctx, "cerdo")
	require.NoError(t, err)
	require.Len(t, resp.Productos, 2)
	assert.Equal(t, "Bondiola", resp.Productos[0].Producto)

	_, err = f.svc.Comparar(ctx, " ")
	var verr *ValidacionError
	assert.ErrorAs(t, err, &verr)
}

func TestListaImportar(t *testing.T) {
	f := newListaFixture()

	x := excelize.NewFile()
	defer x.Close()
	require.NoError(t, x.SetSheetRow("Sheet1", "A1", &[]any{"Producto", "Precio"}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A2", &[]any{"Asado", 4200.5}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A3", &[]any{"Vacío", "3.900,00"}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A4", &[]any{"Lomo", "consultar"}))
	buf, err := x.WriteToBuffer()
	require.NoError(t, err)

	resp, err := f.svc.Importar(context.Background(), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, resp.Precios, 2)
	assert.True(t, resp.Precios[1].Precio.Equal(decimal.NewFromInt(3900)))
	assert.Equal(t, 1, resp.FilasOmitidas)
	assert.Zero(t, f.repo.creadas)

	_, err = f.svc.Importar(context.Background(), bytes.NewReader([]byte("no es excel")))
	var verr *ValidacionError
	assert.ErrorAs(t, err, &verr)
}

func TestListaActualizarYEliminar(t *testing.T) {
	f := newListaFixture()
	ctx := context.Background()
	sur := f.proveedor("Sur")
	norte := f.proveedor("Norte")

	l, err := f.svc.Crear(ctx, dto.ListaPreciosRequest{ProveedorID: sur, Fecha: "2024-01-01", Precios: []dto.PrecioInput{precio("Asado", 1)}})
	require.NoError(t, err)

	upd, err := f.svc.Actualizar(ctx, l.ID, dto.ListaPreciosRequest{ProveedorID: norte, Precios: []dto.PrecioInput{precio("Asado", 2)}})
	require.NoError(t, err)
	assert.Equal(t, "Norte", upd.ProveedorNombre)
	assert.Equal(t, "2024-01-01", upd.Fecha)

	require.NoError(t, f.svc.Eliminar(ctx, l.ID))
	_, err = f.svc.ObtenerPorID(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestProveedorService(t *testing.T) {
	repo := newStubProveedorRepo()
	n := newRecordingNotifier()
	svc := NewProveedorService(repo, n)
	ctx := context.Background()

	contacto := "11-5555-0000"
	p, err := svc.Crear(ctx, dto.CrearProveedorRequest{Nombre: " <b>Sur</b> ", Contacto: &contacto})
	require.NoError(t, err)
	assert.Equal(t, "Sur", p.Nombre)

	nuevo := "Frigorífico Sur"
	upd, err := svc.Actualizar(ctx, p.ID, dto.ActualizarProveedorRequest{Nombre: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, nuevo, upd.Nombre)
	require.NotNil(t, upd.Contacto)
	assert.Equal(t, contacto, *upd.Contacto)

	vacio := ""
	upd, err = svc.Actualizar(ctx, p.ID, dto.ActualizarProveedorRequest{Contacto: &vacio})
	require.NoError(t, err)
	assert.Nil(t, upd.Contacto)

	_, err = svc.Actualizar(ctx, uuid.New(), dto.ActualizarProveedorRequest{Nombre: &nuevo})
	assert.ErrorIs(t, err, ErrNoEncontrado)

	require.NoError(t, svc.Eliminar(ctx, p.ID))
	assert.Equal(t, 4, n.count(realtime.Proveedores))
}

func TestPronelisService_DescartaEspaciosVacios(t *testing.T) {
	svc := NewPronelisService(newStubPronelisRepo(), nil)
	ctx := context.Background()

	p, err := svc.Crear(ctx, dto.PronelisRequest{Nombre: "Vacuno", Productos: []string{"Asado", " ", "", "Vacío"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Asado", "Vacío"}, p.Productos)

	_, err = svc.Crear(ctx, dto.PronelisRequest{Nombre: "Cerdo", Productos: []string{"", " "}})
	var verr *ValidacionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Ingrese al menos un producto", verr.Mensaje)

	upd, err := svc.Actualizar(ctx, p.ID, dto.PronelisRequest{Nombre: "Vacuno", Productos: []string{"Lomo"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lomo"}, upd.Productos)
}
