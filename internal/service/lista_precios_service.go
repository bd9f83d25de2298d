package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"mireparto/internal/dto"
	"mireparto/internal/format"
	"mireparto/internal/infra"
	"mireparto/internal/model"
	"mireparto/internal/realtime"
	"mireparto/internal/repository"
	"mireparto/internal/sanitize"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// escriturasMasivas bounds the concurrent writes of a bulk save.
const escriturasMasivas = 4

type ListaPreciosService interface {
	Crear(ctx context.Context, req dto.ListaPreciosRequest) (*dto.ListaPreciosResponse, error)
	CrearMasivo(ctx context.Context, req dto.ListaPreciosMasivaRequest) (*dto.ListaPreciosMasivaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ListaPreciosResponse, error)
	Listar(ctx context.Context) ([]dto.ListaPreciosResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ListaPreciosRequest) (*dto.ListaPreciosResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Importar(ctx context.Context, r io.Reader) (*dto.ImportacionPreciosResponse, error)
	Comparar(ctx context.Context, paquete string) (*dto.ComparacionResponse, error)
}

type listaPreciosService struct {
	repo          repository.ListaPreciosRepository
	proveedorRepo repository.ProveedorRepository
	pronelisRepo  repository.PronelisRepository
	notifier      realtime.Notifier
	loc           *time.Location
}

func NewListaPreciosService(
	repo repository.ListaPreciosRepository,
	proveedorRepo repository.ProveedorRepository,
	pronelisRepo repository.PronelisRepository,
	notifier realtime.Notifier,
	loc *time.Location,
) ListaPreciosService {
	if loc == nil {
		loc = time.Local
	}
	return &listaPreciosService{
		repo:          repo,
		proveedorRepo: proveedorRepo,
		pronelisRepo:  pronelisRepo,
		notifier:      notifier,
		loc:           loc,
	}
}

func (s *listaPreciosService) Crear(ctx context.Context, req dto.ListaPreciosRequest) (*dto.ListaPreciosResponse, error) {
	precios, err := limpiarPrecios(req.Precios)
	if err != nil {
		return nil, err
	}
	prov, err := s.proveedorRepo.FindByID(ctx, req.ProveedorID)
	if err != nil {
		if errors.Is(noEncontrado(err), ErrNoEncontrado) {
			return nil, invalido("Proveedor no encontrado")
		}
		return nil, err
	}
	l := &model.ListaPrecios{
		ProveedorID:     prov.ID,
		ProveedorNombre: prov.Nombre,
		Paquete:         sanitize.Text(req.Paquete),
		Fecha:           s.fecha(req.Fecha),
		Precios:         precios,
		Notas:           sanitize.Ptr(req.Notas),
	}
	if err := s.repo.Crear(ctx, l); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.ListasPrecios)
	return listaToResponse(l), nil
}

// CrearMasivo saves the same prices for every supplier. Each write stands
// alone: a failure is reported for that supplier and the rest still go
// through.
func (s *listaPreciosService) CrearMasivo(ctx context.Context, req dto.ListaPreciosMasivaRequest) (*dto.ListaPreciosMasivaResponse, error) {
	precios, err := limpiarPrecios(req.Precios)
	if err != nil {
		return nil, err
	}
	ids := sinRepetidos(req.ProveedorIDs)
	provs, err := s.proveedorRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	porID := make(map[uuid.UUID]model.Proveedor, len(provs))
	for _, p := range provs {
		porID[p.ID] = p
	}

	paquete := sanitize.Text(req.Paquete)
	fecha := s.fecha(req.Fecha)
	notas := sanitize.Ptr(req.Notas)

	resultados := make([]dto.ResultadoMasivo, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(escriturasMasivas)
	for i, id := range ids {
		resultados[i].ProveedorID = id
		prov, ok := porID[id]
		if !ok {
			resultados[i].Error = "Proveedor no encontrado"
			continue
		}
		resultados[i].Proveedor = prov.Nombre
		i, prov := i, prov
		g.Go(func() error {
			l := &model.ListaPrecios{
				ProveedorID:     prov.ID,
				ProveedorNombre: prov.Nombre,
				Paquete:         paquete,
				Fecha:           fecha,
				Precios:         append([]model.PrecioProducto(nil), precios...),
				Notas:           notas,
			}
			if err := s.repo.Crear(gctx, l); err != nil {
				log.Error().Err(err).Str("proveedor_id", prov.ID.String()).Msg("lista de precios: bulk write failed")
				resultados[i].Error = "No se pudo guardar la lista"
				return nil
			}
			resultados[i].ListaID = &l.ID
			return nil
		})
	}
	_ = g.Wait()

	resp := &dto.ListaPreciosMasivaResponse{Resultados: resultados}
	for _, r := range resultados {
		if r.Error == "" {
			resp.Exitosos++
		} else {
			resp.Fallidos++
		}
	}
	if resp.Exitosos > 0 {
		publicar(ctx, s.notifier, realtime.ListasPrecios)
	}
	return resp, nil
}

func (s *listaPreciosService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ListaPreciosResponse, error) {
	l, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	return listaToResponse(l), nil
}

func (s *listaPreciosService) Listar(ctx context.Context) ([]dto.ListaPreciosResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ListaPreciosResponse, len(list))
	for i := range list {
		resp[i] = *listaToResponse(&list[i])
	}
	return resp, nil
}

func (s *listaPreciosService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ListaPreciosRequest) (*dto.ListaPreciosResponse, error) {
	l, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	precios, err := limpiarPrecios(req.Precios)
	if err != nil {
		return nil, err
	}
	if req.ProveedorID != l.ProveedorID {
		prov, err := s.proveedorRepo.FindByID(ctx, req.ProveedorID)
		if err != nil {
			if errors.Is(noEncontrado(err), ErrNoEncontrado) {
				return nil, invalido("Proveedor no encontrado")
			}
			return nil, err
		}
		l.ProveedorID = prov.ID
		l.ProveedorNombre = prov.Nombre
	}
	l.Paquete = sanitize.Text(req.Paquete)
	if f := strings.TrimSpace(req.Fecha); f != "" {
		l.Fecha = f
	}
	l.Precios = precios
	l.Notas = sanitize.Ptr(req.Notas)
	if err := s.repo.Actualizar(ctx, l); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.ListasPrecios)
	return listaToResponse(l), nil
}

func (s *listaPreciosService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return noEncontrado(err)
	}
	publicar(ctx, s.notifier, realtime.ListasPrecios)
	return nil
}

// Importar reads prices from a spreadsheet so the operator can review them
// before saving. Nothing is persisted.
func (s *listaPreciosService) Importar(_ context.Context, r io.Reader) (*dto.ImportacionPreciosResponse, error) {
	planilla, err := infra.LeerPreciosXLSX(r)
	if err != nil {
		if errors.Is(err, infra.ErrPlanillaVacia) {
			return nil, invalido("La planilla está vacía")
		}
		log.Warn().Err(err).Msg("lista de precios: unreadable spreadsheet")
		return nil, invalido("No se pudo leer la planilla")
	}
	precios := make([]model.PrecioProducto, 0, len(planilla.Filas))
	for _, f := range planilla.Filas {
		if nombre := sanitize.Text(f.Producto); nombre != "" {
			precios = append(precios, model.PrecioProducto{Producto: nombre, Precio: f.Precio})
		}
	}
	return &dto.ImportacionPreciosResponse{
		Precios:       precios,
		FilasLeidas:   planilla.Leidas,
		FilasOmitidas: planilla.Omitidas + len(planilla.Filas) - len(precios),
		Hoja:          planilla.Hoja,
	}, nil
}

// Comparar lines up, for every product of the package, the latest price of
// each supplier. Products come from the package template when it exists and
// from the lists themselves otherwise.
func (s *listaPreciosService) Comparar(ctx context.Context, paquete string) (*dto.ComparacionResponse, error) {
	paquete = strings.TrimSpace(paquete)
	if paquete == "" {
		return nil, invalido("Seleccione un paquete")
	}
	listas, err := s.repo.ListarPorPaquete(ctx, paquete)
	if err != nil {
		return nil, err
	}

	// newest first, so the first list seen per supplier is its latest
	vistos := make(map[uuid.UUID]bool)
	ultimas := make([]model.ListaPrecios, 0)
	for _, l := range listas {
		if vistos[l.ProveedorID] {
			continue
		}
		vistos[l.ProveedorID] = true
		ultimas = append(ultimas, l)
	}
	sort.SliceStable(ultimas, func(i, j int) bool {
		return strings.ToLower(ultimas[i].ProveedorNombre) < strings.ToLower(ultimas[j].ProveedorNombre)
	})

	var productos []string
	plantilla, err := s.pronelisRepo.ObtenerPorNombre(ctx, paquete)
	switch {
	case err == nil:
		productos = plantilla.Productos
	case errors.Is(noEncontrado(err), ErrNoEncontrado):
		productos = productosDe(ultimas)
	default:
		return nil, err
	}

	resp := &dto.ComparacionResponse{Paquete: paquete, Productos: make([]dto.ComparacionProducto, 0, len(productos))}
	for _, producto := range productos {
		cmp := dto.ComparacionProducto{Producto: producto, Precios: []dto.PrecioProveedor{}}
		for _, l := range ultimas {
			precio, ok := l.PrecioDe(producto)
			if !ok {
				continue
			}
			pp := dto.PrecioProveedor{ProveedorID: l.ProveedorID, Proveedor: l.ProveedorNombre, Precio: precio, Fecha: l.Fecha}
			cmp.Precios = append(cmp.Precios, pp)
			if cmp.MasBarato == nil || precio.LessThan(cmp.MasBarato.Precio) {
				barato := pp
				cmp.MasBarato = &barato
			}
		}
		resp.Productos = append(resp.Productos, cmp)
	}
	return resp, nil
}

// sinRepetidos keeps the first occurrence of each id, in order.
func sinRepetidos(ids []uuid.UUID) []uuid.UUID {
	vistos := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if vistos[id] {
			continue
		}
		vistos[id] = true
		out = append(out, id)
	}
	return out
}

func (s *listaPreciosService) fecha(f string) string {
	if f = strings.TrimSpace(f); f != "" {
		return f
	}
	return format.LocalDateString(s.loc)
}

// limpiarPrecios drops rows with a blank product or a blank price.
func limpiarPrecios(in []dto.PrecioInput) ([]model.PrecioProducto, error) {
	out := make([]model.PrecioProducto, 0, len(in))
	for _, p := range in {
		nombre := sanitize.Text(p.Producto)
		if nombre == "" || p.Precio.IsBlank() {
			continue
		}
		out = append(out, model.PrecioProducto{Producto: nombre, Precio: p.Precio.Value()})
	}
	if len(out) == 0 {
		return nil, invalido("Ingrese al menos un precio")
	}
	return out, nil
}

func productosDe(listas []model.ListaPrecios) []string {
	vistos := make(map[string]bool)
	var out []string
	for _, l := range listas {
		for _, p := range l.Precios {
			k := strings.ToLower(strings.TrimSpace(p.Producto))
			if vistos[k] {
				continue
			}
			vistos[k] = true
			out = append(out, p.Producto)
		}
	}
	return out
}

func listaToResponse(l *model.ListaPrecios) *dto.ListaPreciosResponse {
	precios := l.Precios
	if precios == nil {
		precios = []model.PrecioProducto{}
	}
	return &dto.ListaPreciosResponse{
		ID:              l.ID,
		ProveedorID:     l.ProveedorID,
		ProveedorNombre: l.ProveedorNombre,
		Paquete:         l.Paquete,
		Fecha:           l.Fecha,
		FechaDisplay:    format.FormatDateSafe(l.Fecha),
		Precios:         precios,
		Notas:           l.Notas,
		CreatedAt:       l.CreatedAt,
	}
}
