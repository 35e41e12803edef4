// Package records owns create/update/delete for the user's collections.
// Each service is the single writer of its storage key: mutations update
// in-memory state first (the session's source of truth) and then persist
// the full collection fire-and-forget through the store adapter.
package records

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id does not exist in the collection.
var ErrNotFound = errors.New("records: not found")

func notFound(kind string, id int) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}
