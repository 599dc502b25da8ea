package admin

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

const (
	DefaultPerPage = 25
	MaxPerPage     = 100
)

// alwaysReadOnly lists payload keys the engine never writes from a request.
var alwaysReadOnly = []string{"id", "createdAt", "updatedAt"}

// Descriptor declares how one entity is managed. Field names are the json
// names of the model; SearchFields and Ordering use column names.
type Descriptor struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	ListDisplay  []string `json:"listDisplay"`
	ListEditable []string `json:"listEditable"`
	ListFilter   []string `json:"listFilter"`
	SearchFields []string `json:"searchFields"`
	Ordering     string   `json:"ordering"`
	ReadOnly     []string `json:"readOnly,omitempty"`

	// SlugField is filled from SlugSource on create when left blank.
	SlugField  string   `json:"slugField,omitempty"`
	SlugSource string   `json:"slugSource,omitempty"`
	Preload    []string `json:"-"`

	// Delete replaces the plain row delete, for entities whose dependents
	// must be unlinked first.
	Delete func(ctx context.Context, id uuid.UUID) error `json:"-"`
}

func (d Descriptor) isReadOnly(key string) bool {
	return slices.Contains(alwaysReadOnly, key) || slices.Contains(d.ReadOnly, key)
}

func (d Descriptor) isEditable(key string) bool {
	return slices.Contains(d.ListEditable, key)
}

func (d Descriptor) isFilter(key string) bool {
	return slices.Contains(d.ListFilter, key)
}
