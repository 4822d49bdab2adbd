package pkg

import "github.com/google/uuid"

// NewID returns prefix-<uuidv7>. v7 ids sort by creation time, so two items
// created in the same millisecond still get distinct ids.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}
