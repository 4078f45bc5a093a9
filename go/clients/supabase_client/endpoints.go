package supabase_client

const (
	// API Endpoints
	RestEndpoint          = "/rest/v1"
	StorageObjectEndpoint = "/storage/v1/object"
	PublicObjectEndpoint  = "/storage/v1/object/public"

	// Headers
	APIKeyHeader        = "apikey"
	AuthorizationHeader = "Authorization"
	ContentTypeHeader   = "Content-Type"
	PreferHeader        = "Prefer"
	UpsertHeader        = "x-upsert"

	// Prefer values
	ReturnRepresentation = "return=representation"
	ReturnMinimal        = "return=minimal"

	DefaultObjectContentType = "application/octet-stream"
)
