package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"workshop-planner/internal/model"
)

var errNoDB = errors.New("storage unavailable")

// LoadAll returns every stored workshop in creation order. It never fails: an
// unreadable store yields an empty list, and undecodable rows are skipped.
func (s *DocStore) LoadAll(ctx context.Context) []model.Workshop {
	out := []model.Workshop{}
	if s.db == nil {
		return out
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, json FROM workshops ORDER BY position ASC`)
	if err != nil {
		s.log.Error("load workshops", "err", err)
		return out
	}
	defer rows.Close()

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			s.log.Error("scan workshop row", "err", err)
			continue
		}
		var w model.Workshop
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			s.log.Error("decode workshop", "workshop", id, "err", err)
			continue
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("iterate workshops", "err", err)
	}
	return out
}

// Get loads a single workshop by id.
func (s *DocStore) Get(ctx context.Context, id string) (model.Workshop, error) {
	if s.db == nil {
		return model.Workshop{}, errNoDB
	}
	var raw string
	row := s.db.QueryRowContext(ctx, `SELECT json FROM workshops WHERE id = ?`, id)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Workshop{}, ErrNotFound
		}
		return model.Workshop{}, err
	}
	var w model.Workshop
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return model.Workshop{}, fmt.Errorf("decode workshop %s: %w", id, err)
	}
	return w, nil
}

// SaveOne upserts w by id, stamping UpdatedAt. The stamped copy is returned.
func (s *DocStore) SaveOne(ctx context.Context, w model.Workshop) (model.Workshop, error) {
	w.UpdatedAt = s.now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = w.UpdatedAt
	}
	if err := s.put(ctx, w); err != nil {
		return w, err
	}
	return w, nil
}

func (s *DocStore) put(ctx context.Context, w model.Workshop) error {
	if s.db == nil {
		return errNoDB
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO workshops(id, name, position, json, created_at_unixms, updated_at_unixms)
		VALUES(?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM workshops), ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			json = excluded.json,
			updated_at_unixms = excluded.updated_at_unixms`,
		w.ID, w.Name, string(raw), w.CreatedAt.UnixMilli(), w.UpdatedAt.UnixMilli())
	if err != nil {
		s.log.Error("save workshop", "workshop", w.ID, "err", err)
		return err
	}
	s.log.Debug("saved workshop", "workshop", w.ID, "days", len(w.Days), "items", w.ItemCount())
	return nil
}

// DeleteOne removes a workshop. Deleting an unknown id is not an error.
func (s *DocStore) DeleteOne(ctx context.Context, id string) error {
	if s.db == nil {
		return errNoDB
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM workshops WHERE id = ?`, id); err != nil {
		s.log.Error("delete workshop", "workshop", id, "err", err)
		return err
	}
	s.log.Debug("deleted workshop", "workshop", id)
	return nil
}
