package agenda

import (
	"context"
	"errors"
	"testing"

	"workshop-planner/internal/model"
)

var errMissing = errors.New("missing")

type memStore struct {
	memPersister
	docs  map[string]model.Workshop
	order []string
}

func newMemStore() *memStore { return &memStore{docs: map[string]model.Workshop{}} }

func (m *memStore) SaveOne(ctx context.Context, w model.Workshop) (model.Workshop, error) {
	if _, ok := m.docs[w.ID]; !ok {
		m.order = append(m.order, w.ID)
	}
	m.docs[w.ID] = w.Clone()
	return m.memPersister.SaveOne(ctx, w)
}

func (m *memStore) LoadAll(context.Context) []model.Workshop {
	out := []model.Workshop{}
	for _, id := range m.order {
		if w, ok := m.docs[id]; ok {
			out = append(out, w.Clone())
		}
	}
	return out
}

func (m *memStore) Get(_ context.Context, id string) (model.Workshop, error) {
	w, ok := m.docs[id]
	if !ok {
		return model.Workshop{}, errMissing
	}
	return w.Clone(), nil
}

func (m *memStore) DeleteOne(_ context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

func TestCollection_CreateBlank(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(newMemStore(), nil)
	w, err := c.Create(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if w.Name != model.DefaultWorkshopName || len(w.Days) != 1 || w.Days[0].StartTime != "09:00" {
		t.Fatalf("blank workshop = %+v", w)
	}
	if w.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
	if got := c.List(ctx); len(got) != 1 || got[0].ID != w.ID {
		t.Fatalf("List = %v", got)
	}
}

func TestCollection_CreateFromDaysRenumbers(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(newMemStore(), nil)
	days := []model.WorkshopDay{
		{DateOffset: 7, StartTime: "10:00", Items: []model.AgendaItem{item("x", 15)}},
		{DateOffset: 9},
	}
	w, err := c.CreateFromTemplate(ctx, "Sprint", days)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Days) != 2 || w.Days[0].DateOffset != 0 || w.Days[1].DateOffset != 1 {
		t.Fatalf("days = %+v", w.Days)
	}
	if w.Days[0].ID == "" || w.Days[1].StartTime != model.DefaultStartTime || w.Days[1].Items == nil {
		t.Fatalf("day defaults not filled: %+v", w.Days[1])
	}
}

func TestCollection_RenameOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	c := NewCollection(s, nil)
	w, _ := c.Create(ctx, "Draft")

	if _, err := c.Rename(ctx, w.ID, "Final"); err != nil {
		t.Fatal(err)
	}
	ed, err := c.Open(ctx, w.ID)
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := ed.Snapshot()
	if snap.Name != "Final" {
		t.Fatalf("name = %q", snap.Name)
	}
	if err := ed.AddDay(); err != nil {
		t.Fatal(err)
	}
	if got := s.docs[w.ID]; len(got.Days) != 2 {
		t.Fatalf("editor did not persist through the collection store")
	}

	if err := c.Delete(ctx, w.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Open(ctx, w.ID); err == nil {
		t.Fatalf("open after delete succeeded")
	}
}
