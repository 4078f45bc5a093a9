package backend

import (
	"context"
	"fmt"
)

// Row is one record as sent to or echoed back by the data API, keyed by
// column name. Nil values are written as NULL.
type Row = map[string]any

// Collection names a remote table the admin endpoint may write to.
type Collection string

const (
	CollectionNews      Collection = "news"
	CollectionMatches   Collection = "matches"
	CollectionPlayers   Collection = "players"
	CollectionTableRows Collection = "table_rows"
)

// Valid reports whether c is one of the known collections. Backends
// refuse anything else.
func (c Collection) Valid() bool {
	switch c {
	case CollectionNews, CollectionMatches, CollectionPlayers, CollectionTableRows:
		return true
	}
	return false
}

// Op is a filter operator, named after the PostgREST operator it maps to.
type Op string

const (
	OpEq Op = "eq"
	OpGt Op = "gt"
)

// Condition is a single column predicate.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Filter is a conjunction of conditions.
type Filter []Condition

func Where(column string, op Op, value any) Filter {
	return Filter{{Column: column, Op: op, Value: value}}
}

func (f Filter) And(column string, op Op, value any) Filter {
	out := make(Filter, 0, len(f)+1)
	out = append(out, f...)
	return append(out, Condition{Column: column, Op: op, Value: value})
}

// AllRows matches every row of a collection with a serial id.
func AllRows() Filter {
	return Where("id", OpGt, 0)
}

func (f Filter) validate() error {
	if len(f) == 0 {
		return fmt.Errorf("empty filter")
	}
	for _, c := range f {
		if c.Column == "" {
			return fmt.Errorf("filter condition without column")
		}
		switch c.Op {
		case OpEq, OpGt:
		default:
			return fmt.Errorf("unsupported filter operator %q", c.Op)
		}
	}
	return nil
}

// RowStore writes rows to the remote data API.
type RowStore interface {
	Insert(ctx context.Context, collection Collection, rows []Row, returnRepresentation bool) ([]Row, error)
	DeleteAll(ctx context.Context, collection Collection, filter Filter) error
}

// ObjectStore uploads binary objects and returns their public URL.
// Uploading to an existing key overwrites it.
type ObjectStore interface {
	UploadObject(ctx context.Context, bucket, objectKey string, data []byte, contentType string) (string, error)
}

// Client is everything the admin dispatcher needs downstream.
type Client interface {
	RowStore
	ObjectStore
}

type composite struct {
	RowStore
	ObjectStore
}

// New combines a row store and an object store into a Client.
func New(rows RowStore, objects ObjectStore) Client {
	return composite{RowStore: rows, ObjectStore: objects}
}
