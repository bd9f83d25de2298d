// Package realtime tells subscribers that a collection changed. It carries
// no document data; subscribers reload the collection themselves.
package realtime

import (
	"context"
	"sync"
)

// Collection names used as channel suffixes.
const (
	Repartos       = "repartos"
	SaldosClientes = "saldos_clientes"
	Transferencias = "transferencias_clientes"
	Proveedores    = "proveedores"
	Pronelis       = "pronelis"
	ListasPrecios  = "listas_precios"
)

// Notifier publishes and delivers per-collection change signals.
// A subscription channel has room for one pending signal, so a burst of
// writes may reach a slow subscriber as a single signal.
type Notifier interface {
	Publish(ctx context.Context, coleccion string) error
	Subscribe(ctx context.Context, coleccion string) (<-chan struct{}, func(), error)
}

// signal delivers without blocking; a pending signal already covers this one.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// MemoryNotifier is a process-local Notifier.
type MemoryNotifier struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[string]map[chan struct{}]struct{})}
}

func (n *MemoryNotifier) Publish(_ context.Context, coleccion string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[coleccion] {
		signal(ch)
	}
	return nil
}

func (n *MemoryNotifier) Subscribe(ctx context.Context, coleccion string) (<-chan struct{}, func(), error) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.subs[coleccion] == nil {
		n.subs[coleccion] = make(map[chan struct{}]struct{})
	}
	n.subs[coleccion][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[coleccion], ch)
			n.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel, nil
}
