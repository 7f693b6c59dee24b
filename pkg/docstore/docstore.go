package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)

// Filter matches documents whose body contains every listed field/value pair.
type Filter map[string]any

// Patch is a shallow merge applied to a document body.
type Patch map[string]any

// FindOptions controls ordering and result size for Find.
type FindOptions struct {
	SortBy     string
	Descending bool
	Limit      int
}

// Store is the generic document store the services are built against.
// Documents are JSON objects keyed by (collection, id); the id is also
// present inside the body so that Filter{"id": ...} works uniformly.
type Store interface {
	Insert(ctx context.Context, collection, id string, doc any) error
	FindOne(ctx context.Context, collection string, filter Filter, out any) error
	Find(ctx context.Context, collection string, filter Filter, opts FindOptions, out any) error
	UpdateOne(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error)
	DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
}
