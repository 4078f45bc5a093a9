// Package backendtest provides a recording backend.Client for tests.
package backendtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcdev12/clubadmin/go/internal/backend"
)

// Call is one recorded backend invocation.
type Call struct {
	Method               string
	Collection           backend.Collection
	Rows                 []backend.Row
	ReturnRepresentation bool
	Filter               backend.Filter
	Bucket               string
	ObjectKey            string
	Data                 []byte
	ContentType          string
}

// Recorder records every call and answers with canned results. A nil
// InsertFunc echoes the rows back with sequential ids.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	InsertErr  error
	DeleteErr  error
	UploadErr  error
	InsertFunc func(collection backend.Collection, rows []backend.Row) ([]backend.Row, error)
	PublicBase string

	nextID int
}

var _ backend.Client = (*Recorder)(nil)

func New() *Recorder {
	return &Recorder{PublicBase: "https://example.supabase.co"}
}

func (r *Recorder) Insert(ctx context.Context, collection backend.Collection, rows []backend.Row, returnRepresentation bool) ([]backend.Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{
		Method:               "Insert",
		Collection:           collection,
		Rows:                 rows,
		ReturnRepresentation: returnRepresentation,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.InsertErr != nil {
		return nil, r.InsertErr
	}
	if r.InsertFunc != nil {
		return r.InsertFunc(collection, rows)
	}
	if !returnRepresentation {
		return nil, nil
	}

	out := make([]backend.Row, len(rows))
	for i, row := range rows {
		echo := backend.Row{}
		for k, v := range row {
			echo[k] = v
		}
		r.nextID++
		echo["id"] = r.nextID
		out[i] = echo
	}
	return out, nil
}

func (r *Recorder) DeleteAll(ctx context.Context, collection backend.Collection, filter backend.Filter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Method: "DeleteAll", Collection: collection, Filter: filter})
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.DeleteErr
}

func (r *Recorder) UploadObject(ctx context.Context, bucket, objectKey string, data []byte, contentType string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{
		Method:      "UploadObject",
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Data:        data,
		ContentType: contentType,
	})
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.UploadErr != nil {
		return "", r.UploadErr
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", r.PublicBase, bucket, objectKey), nil
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Methods returns just the method names of the recorded calls.
func (r *Recorder) Methods() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

// Reset forgets recorded calls and clears canned errors.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.InsertErr = nil
	r.DeleteErr = nil
	r.UploadErr = nil
}
