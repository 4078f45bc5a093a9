package supabase_client

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
)

// UploadObject stores data under bucket/objectPath, overwriting any
// existing object at the same path.
func (c *SupabaseClient) UploadObject(ctx context.Context, bucket, objectPath string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = DefaultObjectContentType
	}

	endpoint := fmt.Sprintf("%s/%s/%s", StorageObjectEndpoint, url.PathEscape(bucket), objectPath)
	_, err := c.Post(ctx, endpoint, bytes.NewReader(data), map[string]string{
		ContentTypeHeader: contentType,
		UpsertHeader:      "true",
	})
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}

	return nil
}

// PublicURL is the address of an object in a public bucket.
func (c *SupabaseClient) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s%s/%s/%s", c.BaseURL(), PublicObjectEndpoint, bucket, objectPath)
}
