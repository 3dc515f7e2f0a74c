// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to the console lives.
type AppConfig struct {
	// APIBaseURL is the Postline REST backend the console talks to,
	// including the path prefix (e.g. http://localhost:8000/api).
	APIBaseURL string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: postline-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRFKey signs the per-form CSRF tokens. 32 bytes.
	CSRFKey string

	// BaseURL is the console's own externally visible URL.
	BaseURL string
}
