// Package agenda holds one loaded workshop and the mutations the editor applies
// to it. Every mutation replaces the whole document, persists it and notifies
// subscribers with a fresh snapshot.
package agenda

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"workshop-planner/internal/model"
)

var (
	// ErrLastDay is returned when removing the only remaining day.
	ErrLastDay = errors.New("cannot remove the last day of a workshop")
	// ErrNoWorkshop is returned by Load-dependent helpers when nothing is loaded.
	ErrNoWorkshop = errors.New("no workshop loaded")
)

// Persister stores a whole workshop document (upsert by id).
type Persister interface {
	SaveOne(ctx context.Context, w model.Workshop) (model.Workshop, error)
}

// Editor is the in-memory workshop store. Referential misses (unknown day or
// item ids) are silent no-ops: stale ids are expected while a drag is running.
type Editor struct {
	mu   sync.Mutex
	ws   *model.Workshop
	save Persister
	now  func() time.Time
	log  *slog.Logger

	subs   map[int]func(model.Workshop)
	nextID int
}

type Option func(*Editor)

func WithClock(now func() time.Time) Option { return func(e *Editor) { e.now = now } }

func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

func NewEditor(p Persister, opts ...Option) *Editor {
	e := &Editor{
		save: p,
		now:  func() time.Time { return time.Now().UTC() },
		log:  slog.Default(),
		subs: map[int]func(model.Workshop){},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Load makes w the edited workshop. No persistence happens.
func (e *Editor) Load(w model.Workshop) {
	e.mu.Lock()
	c := w.Clone()
	e.ws = &c
	e.mu.Unlock()
	e.notify(c)
}

// Loaded reports whether a workshop is being edited.
func (e *Editor) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws != nil
}

// Snapshot returns a deep copy of the current workshop.
func (e *Editor) Snapshot() (model.Workshop, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ws == nil {
		return model.Workshop{}, false
	}
	return e.ws.Clone(), true
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func unsubscribes.
func (e *Editor) Subscribe(fn func(model.Workshop)) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

func (e *Editor) notify(w model.Workshop) {
	e.mu.Lock()
	fns := make([]func(model.Workshop), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(w.Clone())
	}
}

// mutate runs fn on a copy of the workshop. When fn reports a change the copy
// replaces the current document, UpdatedAt is refreshed and the document is
// persisted. A persistence failure keeps the new in-memory state and is returned.
func (e *Editor) mutate(op string, fn func(w *model.Workshop) bool) error {
	e.mu.Lock()
	if e.ws == nil {
		e.mu.Unlock()
		return nil
	}
	next := e.ws.Clone()
	if !fn(&next) {
		e.mu.Unlock()
		e.log.Debug("agenda no-op", "op", op, "workshop", next.ID)
		return nil
	}
	next.UpdatedAt = e.now()
	e.ws = &next
	e.mu.Unlock()

	var saveErr error
	if e.save != nil {
		stamped, err := e.save.SaveOne(context.Background(), next)
		if err != nil {
			e.log.Error("persist workshop", "op", op, "workshop", next.ID, "err", err)
			saveErr = err
		} else {
			e.mu.Lock()
			if e.ws != nil && e.ws.ID == stamped.ID {
				e.ws.UpdatedAt = stamped.UpdatedAt
				next.UpdatedAt = stamped.UpdatedAt
			}
			e.mu.Unlock()
		}
	}
	e.log.Debug("agenda mutation", "op", op, "workshop", next.ID)
	e.notify(next)
	return saveErr
}

// Current is Snapshot for callers that treat "nothing loaded" as an error.
func (e *Editor) Current() (model.Workshop, error) {
	w, ok := e.Snapshot()
	if !ok {
		return model.Workshop{}, ErrNoWorkshop
	}
	return w, nil
}
