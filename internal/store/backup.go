package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"workshop-planner/internal/model"
)

// Export writes the whole collection as {"workshop-planner-workshops": [...]}.
func (s *DocStore) Export(ctx context.Context, w io.Writer, pretty bool) error {
	payload := map[string][]model.Workshop{CollectionKey: s.LoadAll(ctx)}
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(payload, "", "  ")
	} else {
		b, err = json.Marshal(payload)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Import upserts workshops from a backup. It accepts the keyed object written by
// Export as well as a bare JSON array (a raw local-storage value). Timestamps are
// kept as found. It returns the number of workshops imported.
func (s *DocStore) Import(ctx context.Context, r io.Reader) (int, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	ws, err := decodeCollection(b)
	if err != nil {
		return 0, err
	}
	for i, w := range ws {
		if strings.TrimSpace(w.ID) == "" {
			return i, fmt.Errorf("workshop %d has no id", i)
		}
		if err := s.put(ctx, w); err != nil {
			return i, err
		}
	}
	s.log.Info("imported workshops", "count", len(ws))
	return len(ws), nil
}

func decodeCollection(b []byte) ([]model.Workshop, error) {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" {
		return nil, errors.New("empty backup")
	}
	if strings.HasPrefix(trimmed, "[") {
		var ws []model.Workshop
		if err := json.Unmarshal([]byte(trimmed), &ws); err != nil {
			return nil, err
		}
		return ws, nil
	}
	var keyed map[string][]model.Workshop
	if err := json.Unmarshal([]byte(trimmed), &keyed); err != nil {
		return nil, err
	}
	ws, ok := keyed[CollectionKey]
	if !ok {
		return nil, fmt.Errorf("backup has no %q collection", CollectionKey)
	}
	return ws, nil
}

// BackupFile copies the database file next to itself (planner.sqlite.bak) after
// folding the write-ahead log into it. It returns the backup path.
func (s *DocStore) BackupFile(ctx context.Context) (string, error) {
	if s.db == nil || s.path == "" {
		return "", errors.New("backup file: store is not file-backed")
	}
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE);`); err != nil {
		return "", err
	}
	dest := s.path + ".bak"
	if err := copyFile(s.path, dest); err != nil {
		return "", err
	}
	return dest, nil
}
