package main

import "time"

// Configuration globals, resolved by configure() from flags and REMAPD_*
// environment variables.
var (
	// ListenHost is the interface both listeners bind to.
	ListenHost string = "127.0.0.1"

	// ListenPort is where proxied traffic comes in.
	ListenPort int = 8080

	// OpsListenPort serves the healthcheck, metrics and the rules API.
	OpsListenPort int = 10241

	// RulesPath optionally points to a remap rules file, see rules.go
	// for the syntax.
	RulesPath string

	// UpstreamTimeout bounds a single forwarded request, including
	// retries.
	UpstreamTimeout time.Duration = 10 * time.Second

	Debug bool = false

	UseTracing bool = false
	UseMetrics bool = false
)
