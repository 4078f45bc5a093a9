package supabase_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// InsertRows posts a batch of rows to a table. With returnRepresentation
// the inserted rows are echoed back by the API and returned raw.
func (c *SupabaseClient) InsertRows(ctx context.Context, table string, rows any, returnRepresentation bool) (json.RawMessage, error) {
	payload, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rows: %w", err)
	}

	prefer := ReturnMinimal
	if returnRepresentation {
		prefer = ReturnRepresentation
	}

	endpoint := fmt.Sprintf("%s/%s", RestEndpoint, url.PathEscape(table))
	body, err := c.Post(ctx, endpoint, bytes.NewReader(payload), map[string]string{
		PreferHeader: prefer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return body, nil
}

// DeleteRows deletes every row of table matching the PostgREST filter
// query (e.g. id=gt.0). An empty query is refused.
func (c *SupabaseClient) DeleteRows(ctx context.Context, table string, query url.Values) error {
	if len(query) == 0 {
		return fmt.Errorf("refusing to delete from %s without a filter", table)
	}

	endpoint := fmt.Sprintf("%s/%s?%s", RestEndpoint, url.PathEscape(table), query.Encode())
	if _, err := c.Delete(ctx, endpoint, nil); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	return nil
}
