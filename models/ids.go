package models

import (
	"time"

	"github.com/google/uuid"
)

// ensureID assigns a fresh UUID when the record has none yet.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// now returns the current time at the precision postgres stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
