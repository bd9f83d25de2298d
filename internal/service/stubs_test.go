package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"mireparto/internal/model"
	"mireparto/internal/repository"
	"mireparto/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

func asignarID(d *model.Documento) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
}

type stubRepartoRepo struct {
	repartos map[uuid.UUID]*model.Reparto
	failSave bool
}

func newStubRepartoRepo() *stubRepartoRepo {
	return &stubRepartoRepo{repartos: make(map[uuid.UUID]*model.Reparto)}
}

func (r *stubRepartoRepo) Crear(_ context.Context, rep *model.Reparto) error {
	if r.failSave {
		return errors.New("db down")
	}
	asignarID(&rep.Documento)
	cp := *rep
	r.repartos[rep.ID] = &cp
	return nil
}

func (r *stubRepartoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Reparto, error) {
	rep, ok := r.repartos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rep
	cp.Clientes = append([]model.CargoCliente(nil), rep.Clientes...)
	return &cp, nil
}

func (r *stubRepartoRepo) Listar(_ context.Context) ([]model.Reparto, error) {
	out := make([]model.Reparto, 0, len(r.repartos))
	for _, rep := range r.repartos {
		out = append(out, *rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha > out[j].Fecha })
	return out, nil
}

func (r *stubRepartoRepo) Actualizar(_ context.Context, rep *model.Reparto) error {
	if r.failSave {
		return errors.New("db down")
	}
	cp := *rep
	r.repartos[rep.ID] = &cp
	return nil
}

func (r *stubRepartoRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if _, ok := r.repartos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.repartos, id)
	return nil
}

var _ repository.RepartoRepository = (*stubRepartoRepo)(nil)

type stubSaldoRepo struct {
	saldos map[uuid.UUID]*model.SaldoCliente
}

func newStubSaldoRepo() *stubSaldoRepo {
	return &stubSaldoRepo{saldos: make(map[uuid.UUID]*model.SaldoCliente)}
}

func (r *stubSaldoRepo) Crear(_ context.Context, s *model.SaldoCliente) error {
	asignarID(&s.Documento)
	cp := *s
	r.saldos[s.ID] = &cp
	return nil
}

func (r *stubSaldoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.SaldoCliente, error) {
	s, ok := r.saldos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaldoRepo) Listar(_ context.Context) ([]model.SaldoCliente, error) {
	out := make([]model.SaldoCliente, 0, len(r.saldos))
	for _, s := range r.saldos {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cliente < out[j].Cliente })
	return out, nil
}

func (r *stubSaldoRepo) Reemplazar(_ context.Context, s *model.SaldoCliente) error {
	cp := *s
	r.saldos[s.ID] = &cp
	return nil
}

func (r *stubSaldoRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if _, ok := r.saldos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.saldos, id)
	return nil
}

var _ repository.SaldoClienteRepository = (*stubSaldoRepo)(nil)

type stubTransferenciaRepo struct {
	items map[uuid.UUID]*model.TransferenciaCliente
}

func newStubTransferenciaRepo() *stubTransferenciaRepo {
	return &stubTransferenciaRepo{items: make(map[uuid.UUID]*model.TransferenciaCliente)}
}

func (r *stubTransferenciaRepo) Crear(_ context.Context, t *model.TransferenciaCliente) error {
	asignarID(&t.Documento)
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *stubTransferenciaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.TransferenciaCliente, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransferenciaRepo) Listar(_ context.Context) ([]model.TransferenciaCliente, error) {
	out := make([]model.TransferenciaCliente, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cliente < out[j].Cliente })
	return out, nil
}

func (r *stubTransferenciaRepo) Reemplazar(_ context.Context, t *model.TransferenciaCliente) error {
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *stubTransferenciaRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

var _ repository.TransferenciaRepository = (*stubTransferenciaRepo)(nil)

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	asignarID(&p.Documento)
	cp := *p
	r.proveedores[p.ID] = &cp
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProveedorRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, id := range ids {
		if p, ok := r.proveedores[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	out := make([]model.Proveedor, 0, len(r.proveedores))
	for _, p := range r.proveedores {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubProveedorRepo) Patch(_ context.Context, id uuid.UUID, campos map[string]any) error {
	p, ok := r.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := campos["nombre"].(string); ok {
		p.Nombre = v
	}
	if v, ok := campos["contacto"]; ok {
		p.Contacto, _ = v.(*string)
	}
	return nil
}

func (r *stubProveedorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.proveedores[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.proveedores, id)
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

type stubPronelisRepo struct {
	items map[uuid.UUID]*model.Pronelis
}

func newStubPronelisRepo() *stubPronelisRepo {
	return &stubPronelisRepo{items: make(map[uuid.UUID]*model.Pronelis)}
}

func (r *stubPronelisRepo) Crear(_ context.Context, p *model.Pronelis) error {
	asignarID(&p.Documento)
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *stubPronelisRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Pronelis, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPronelisRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Pronelis, error) {
	for _, p := range r.items {
		if strings.EqualFold(p.Nombre, nombre) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPronelisRepo) Listar(_ context.Context) ([]model.Pronelis, error) {
	out := make([]model.Pronelis, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubPronelisRepo) Actualizar(_ context.Context, p *model.Pronelis) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *stubPronelisRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

var _ repository.PronelisRepository = (*stubPronelisRepo)(nil)

// stubListaRepo is written to concurrently by bulk saves.
type stubListaRepo struct {
	mu      sync.Mutex
	items   []*model.ListaPrecios
	failFor map[uuid.UUID]bool
	creadas int
}

func newStubListaRepo() *stubListaRepo {
	return &stubListaRepo{failFor: make(map[uuid.UUID]bool)}
}

func (r *stubListaRepo) Crear(_ context.Context, l *model.ListaPrecios) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFor[l.ProveedorID] {
		return errors.New("write failed")
	}
	asignarID(&l.Documento)
	r.creadas++
	cp := *l
	r.items = append(r.items, &cp)
	return nil
}

func (r *stubListaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.ListaPrecios, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.items {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubListaRepo) Listar(_ context.Context) ([]model.ListaPrecios, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.ListaPrecios, 0, len(r.items))
	for _, l := range r.items {
		out = append(out, *l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha > out[j].Fecha })
	return out, nil
}

func (r *stubListaRepo) ListarPorPaquete(ctx context.Context, paquete string) ([]model.ListaPrecios, error) {
	all, _ := r.Listar(ctx)
	var out []model.ListaPrecios
	for _, l := range all {
		if strings.EqualFold(l.Paquete, paquete) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubListaRepo) Actualizar(_ context.Context, l *model.ListaPrecios) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == l.ID {
			cp := *l
			r.items[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubListaRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.ListaPreciosRepository = (*stubListaRepo)(nil)

type stubSemanaRepo struct {
	semanas map[uuid.UUID]*model.Semana
}

func newStubSemanaRepo() *stubSemanaRepo {
	return &stubSemanaRepo{semanas: make(map[uuid.UUID]*model.Semana)}
}

func (r *stubSemanaRepo) Obtener(_ context.Context, id uuid.UUID) (*model.Semana, error) {
	s, ok := r.semanas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSemanaRepo) Guardar(_ context.Context, s *model.Semana) error {
	cp := *s
	r.semanas[s.UsuarioID] = &cp
	return nil
}

func (r *stubSemanaRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if _, ok := r.semanas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.semanas, id)
	return nil
}

var _ repository.SemanaRepository = (*stubSemanaRepo)(nil)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	asignarID(&u.Documento)
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Collaborator stubs ───────────────────────────────────────────────────────

// recordingNotifier counts publications per collection.
type recordingNotifier struct {
	mu        sync.Mutex
	publicado map[string]int
	err       error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{publicado: make(map[string]int)}
}

func (n *recordingNotifier) Publish(_ context.Context, coleccion string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.publicado[coleccion]++
	return n.err
}

func (n *recordingNotifier) Subscribe(context.Context, string) (<-chan struct{}, func(), error) {
	return make(chan struct{}), func() {}, nil
}

func (n *recordingNotifier) count(coleccion string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.publicado[coleccion]
}

type stubQueue struct {
	jobs []worker.EmailJobPayload
	err  error
}

func (q *stubQueue) EnqueueEmail(_ context.Context, p worker.EmailJobPayload) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, p)
	return nil
}
