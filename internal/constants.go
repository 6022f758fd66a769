package internal

const (
	// ApplicationName is the non-capitalized name of the application (do not change this)
	ApplicationName = "mvh-sync"

	// DefaultAPIURL is the WordPress REST namespace queried when nothing else is configured.
	DefaultAPIURL = "http://localhost/wp-json/viethoa/v1"

	// DefaultAPIKey is the bearer token sent when nothing else is configured.
	DefaultAPIKey = "test_key"

	// DefaultUserAgent identifies this client to the remote API.
	DefaultUserAgent = "MVH-Sync/1.0"
)
