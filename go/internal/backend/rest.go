package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/mcdev12/clubadmin/go/clients"
	"github.com/mcdev12/clubadmin/go/clients/supabase_client"
)

// RESTRows is a RowStore backed by the PostgREST API.
type RESTRows struct {
	client *supabase_client.SupabaseClient
}

func NewRESTRows(client *supabase_client.SupabaseClient) *RESTRows {
	return &RESTRows{client: client}
}

func (r *RESTRows) Insert(ctx context.Context, collection Collection, rows []Row, returnRepresentation bool) ([]Row, error) {
	if !collection.Valid() {
		return nil, &RemoteWriteError{Op: "insert", Collection: collection, Message: "unknown collection"}
	}

	body, err := r.client.InsertRows(ctx, string(collection), rows, returnRepresentation)
	if err != nil {
		return nil, restWriteError("insert", collection, err)
	}
	if !returnRepresentation || len(body) == 0 {
		return nil, nil
	}

	var inserted []Row
	if err := json.Unmarshal(body, &inserted); err != nil {
		return nil, &RemoteWriteError{
			Op:         "insert",
			Collection: collection,
			Message:    fmt.Sprintf("unexpected response: %s", string(body)),
			Err:        err,
		}
	}
	return inserted, nil
}

func (r *RESTRows) DeleteAll(ctx context.Context, collection Collection, filter Filter) error {
	if !collection.Valid() {
		return &RemoteWriteError{Op: "delete", Collection: collection, Message: "unknown collection"}
	}
	if err := filter.validate(); err != nil {
		return &RemoteWriteError{Op: "delete", Collection: collection, Message: err.Error(), Err: err}
	}

	if err := r.client.DeleteRows(ctx, string(collection), restQuery(filter)); err != nil {
		return restWriteError("delete", collection, err)
	}
	return nil
}

// restQuery renders a filter as PostgREST query parameters.
func restQuery(filter Filter) url.Values {
	query := url.Values{}
	for _, c := range filter {
		query.Add(c.Column, fmt.Sprintf("%s.%v", c.Op, c.Value))
	}
	return query
}

func restWriteError(op string, collection Collection, err error) error {
	out := &RemoteWriteError{
		Op:         op,
		Collection: collection,
		Message:    supabase_client.ErrorMessage(err),
		Timeout:    isTimeout(err),
		Err:        err,
	}
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) {
		out.StatusCode = apiErr.StatusCode
	} else if out.Timeout {
		out.Message = "request timed out"
	}
	return out
}

// RESTObjects is an ObjectStore backed by the Storage API.
type RESTObjects struct {
	client *supabase_client.SupabaseClient
}

func NewRESTObjects(client *supabase_client.SupabaseClient) *RESTObjects {
	return &RESTObjects{client: client}
}

func (o *RESTObjects) UploadObject(ctx context.Context, bucket, objectKey string, data []byte, contentType string) (string, error) {
	if err := o.client.UploadObject(ctx, bucket, objectKey, data, contentType); err != nil {
		out := &RemoteUploadError{
			Bucket:    bucket,
			ObjectKey: objectKey,
			Timeout:   isTimeout(err),
			Err:       err,
		}
		var apiErr *clients.APIError
		if errors.As(err, &apiErr) {
			out.StatusCode = apiErr.StatusCode
			out.Message = string(apiErr.Body)
		} else if out.Timeout {
			out.Message = "request timed out"
		} else {
			out.Message = err.Error()
		}
		return "", out
	}
	return o.client.PublicURL(bucket, objectKey), nil
}
