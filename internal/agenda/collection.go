package agenda

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"workshop-planner/internal/model"
)

// Store is the full persistence collaborator behind a Collection.
type Store interface {
	Persister
	LoadAll(ctx context.Context) []model.Workshop
	Get(ctx context.Context, id string) (model.Workshop, error)
	DeleteOne(ctx context.Context, id string) error
}

// Collection manages the list of workshops and opens them into an Editor.
type Collection struct {
	store Store
	now   func() time.Time
	log   *slog.Logger
}

func NewCollection(s Store, log *slog.Logger) *Collection {
	if log == nil {
		log = slog.Default()
	}
	return &Collection{store: s, now: func() time.Time { return time.Now().UTC() }, log: log}
}

func (c *Collection) List(ctx context.Context) []model.Workshop {
	return c.store.LoadAll(ctx)
}

// Blank returns a new unsaved workshop with a single 09:00 day.
func Blank(name string, now time.Time) model.Workshop {
	if strings.TrimSpace(name) == "" {
		name = model.DefaultWorkshopName
	}
	return model.Workshop{
		ID:   model.NewID(),
		Name: name,
		Days: []model.WorkshopDay{{
			ID:         model.NewID(),
			DateOffset: 0,
			StartTime:  model.DefaultStartTime,
			Items:      []model.AgendaItem{},
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FromDays builds a workshop from pre-expanded days. An empty expansion
// still yields one day.
func FromDays(name string, days []model.WorkshopDay, now time.Time) model.Workshop {
	w := Blank(name, now)
	if len(days) == 0 {
		return w
	}
	w.Days = make([]model.WorkshopDay, len(days))
	for i, d := range days {
		d = d.Clone()
		if d.ID == "" {
			d.ID = model.NewID()
		}
		if d.StartTime == "" {
			d.StartTime = model.DefaultStartTime
		}
		if d.Items == nil {
			d.Items = []model.AgendaItem{}
		}
		d.DateOffset = i
		w.Days[i] = d
	}
	return w
}

func (c *Collection) Create(ctx context.Context, name string) (model.Workshop, error) {
	return c.store.SaveOne(ctx, Blank(name, c.now()))
}

// CreateFromTemplate persists a workshop whose days were expanded from a
// template by the caller.
func (c *Collection) CreateFromTemplate(ctx context.Context, name string, days []model.WorkshopDay) (model.Workshop, error) {
	w, err := c.store.SaveOne(ctx, FromDays(name, days, c.now()))
	if err == nil {
		c.log.Info("created workshop from template", "workshop", w.ID, "days", len(w.Days), "items", w.ItemCount())
	}
	return w, err
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	return c.store.DeleteOne(ctx, id)
}

func (c *Collection) Rename(ctx context.Context, id, name string) (model.Workshop, error) {
	w, err := c.store.Get(ctx, id)
	if err != nil {
		return model.Workshop{}, err
	}
	w.Name = name
	return c.store.SaveOne(ctx, w)
}

// Open loads the workshop into a new Editor persisting through the same store.
func (c *Collection) Open(ctx context.Context, id string, opts ...Option) (*Editor, error) {
	w, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ed := NewEditor(c.store, append([]Option{WithLogger(c.log)}, opts...)...)
	ed.Load(w)
	return ed, nil
}
