package roster

import (
	"context"
	"sync"
	"time"
)

// Resolver es lo mínimo que LiveSearch necesita de Service.
type Resolver interface {
	Resolve(ctx context.Context, in ResolveInput) ([]RosterEntry, error)
}

// Result es lo que se entrega al suscriptor; Seq identifica la búsqueda.
type Result struct {
	Seq     uint64
	Term    string
	Entries []RosterEntry
	Err     error
}

// LiveSearch implementa búsqueda mientras se escribe: cada Submit reemplaza a
// la anterior (cancela su contexto) y solo el resultado de la última búsqueda
// llega a onResult. onResult corre con el lock tomado: no debe llamar a Submit.
type LiveSearch struct {
	resolver Resolver
	role     Role
	userID   string
	debounce time.Duration
	onResult func(Result)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	timer  *time.Timer
	closed bool
	wg     sync.WaitGroup
}

func NewLiveSearch(r Resolver, role Role, userID string, debounce time.Duration, onResult func(Result)) *LiveSearch {
	if debounce < 0 {
		debounce = 0
	}
	return &LiveSearch{
		resolver: r,
		role:     role,
		userID:   userID,
		debounce: debounce,
		onResult: onResult,
	}
}

// Submit programa una búsqueda y devuelve su número de secuencia.
func (l *LiveSearch) Submit(term string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return l.seq
	}

	l.supersedeLocked()

	l.seq++
	seq := l.seq

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	l.wg.Add(1)
	l.timer = time.AfterFunc(l.debounce, func() {
		defer l.wg.Done()
		l.run(ctx, seq, term)
	})
	return seq
}

// Latest devuelve la secuencia vigente.
func (l *LiveSearch) Latest() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Drain espera a que termine lo pendiente sin cancelarlo.
func (l *LiveSearch) Drain() {
	l.wg.Wait()
}

// Close cancela lo que esté en vuelo y espera. Submit posteriores se ignoran.
func (l *LiveSearch) Close() {
	l.mu.Lock()
	l.closed = true
	l.supersedeLocked()
	l.mu.Unlock()

	l.wg.Wait()
}

// supersedeLocked frena el timer pendiente (si aún no disparó) y cancela la
// resolución en vuelo.
func (l *LiveSearch) supersedeLocked() {
	if l.timer != nil && l.timer.Stop() {
		// el callback nunca va a correr
		l.wg.Done()
	}
	l.timer = nil
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *LiveSearch) run(ctx context.Context, seq uint64, term string) {
	if ctx.Err() != nil {
		return
	}

	entries, err := l.resolver.Resolve(ctx, ResolveInput{
		SearchTerm:   term,
		Role:         l.role,
		ActingUserID: l.userID,
	})

	l.mu.Lock()
	defer l.mu.Unlock()

	// respuesta vieja: ya hay una búsqueda más nueva
	if seq != l.seq || l.closed {
		return
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.onResult != nil {
		l.onResult(Result{Seq: seq, Term: term, Entries: entries, Err: err})
	}
}
