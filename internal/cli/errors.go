package cli

import (
	"errors"
	"fmt"

	"workshop-planner/internal/store"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// mapStoreErr turns store.ErrNotFound into a workshop notFoundError.
func mapStoreErr(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound("workshop", id)
	}
	return err
}

type invalidArgError struct {
	flag   string
	value  string
	reason string
}

func (e invalidArgError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.flag, e.value, e.reason)
}
