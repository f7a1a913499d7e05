package config

import "time"

const (
	defaultMaxUploadBytes = 10 << 20
	minShutdownTimeout    = time.Second
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// MaxUploadBytes caps the size of an uploaded resume.
	MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// ReadTimeout bounds reading an entire request, body included.
	ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`

	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`

	// ShutdownTimeout is the grace period for in-flight requests on shutdown.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// AllowedOrigins lists CORS origins for the browser client. Empty disables CORS headers.
	AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.MaxUploadBytes <= 0 || h.MaxUploadBytes > defaultMaxUploadBytes {
		h.MaxUploadBytes = defaultMaxUploadBytes
	}
	if h.ShutdownTimeout < minShutdownTimeout {
		h.ShutdownTimeout = minShutdownTimeout
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30 * time.Second
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30 * time.Second
	}
}
