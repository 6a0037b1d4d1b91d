package ais

import "net/http"

// Config holds connection settings for a cluster gateway.
type Config struct {
	// Endpoint is the gateway URL, scheme included.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:8080"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Insecure skips TLS certificate verification.
	Insecure bool `mapstructure:"insecure" default:"false"`
	// HTTPClient, when set, replaces the built-in HTTP client. Tests use it
	// to route requests into an in-process cluster.
	HTTPClient *http.Client `mapstructure:"-"`
}
