package supabase_client

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mcdev12/clubadmin/go/clients"
)

// SupabaseClient talks to the REST (PostgREST) and Storage APIs of a
// single project using its service-role key.
type SupabaseClient struct {
	*clients.BaseClient
}

func NewSupabaseClient(baseURL, serviceKey string, timeout time.Duration) *SupabaseClient {
	client := &SupabaseClient{
		BaseClient: clients.NewBaseClient(strings.TrimRight(baseURL, "/")),
	}

	client.SetHeader(APIKeyHeader, serviceKey)
	client.SetHeader(AuthorizationHeader, "Bearer "+serviceKey)
	client.SetHeader(ContentTypeHeader, "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return client
}

// ErrorMessage extracts the human readable part of an upstream error.
// JSON bodies are searched for message, error and msg in that order;
// anything else is returned as trimmed text.
func ErrorMessage(err error) string {
	var apiErr *clients.APIError
	if !errors.As(err, &apiErr) {
		if err == nil {
			return ""
		}
		return err.Error()
	}

	text := strings.TrimSpace(string(apiErr.Body))
	var body map[string]any
	if json.Unmarshal(apiErr.Body, &body) == nil {
		for _, key := range []string{"message", "error", "msg"} {
			if s, ok := body[key].(string); ok && s != "" {
				return s
			}
		}
		return "Supabase error"
	}
	if text == "" {
		return "Supabase error"
	}
	return text
}
