// Package uuid wraps github.com/google/uuid with the binding hooks gin
// needs for path and query parameters.
package uuid

import (
	"fmt"
	"strings"

	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam implements gin's binding.BindUnmarshaler so that
// UUIDs can be bound from URIs and query strings.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}

// List is a comma separated list of UUIDs, e.g. "?ids=a,b,c".
type List []google_uuid.UUID

// UnmarshalParam parses the comma separated list. Empty elements are skipped,
// duplicates are removed while keeping the order of first occurrence.
func (l *List) UnmarshalParam(p string) error {
	seen := make(map[google_uuid.UUID]struct{})
	ids := make(List, 0)

	for _, part := range strings.Split(p, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := google_uuid.Parse(part)
		if err != nil {
			return fmt.Errorf("%q is not a valid UUID: %w", part, err)
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	*l = ids
	return nil
}
