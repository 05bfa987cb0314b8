// Package instance names the running process in logs.
package instance

import "os"

// EnvInstanceID overrides the detected instance identifier.
const EnvInstanceID = "HOMESTOCK_INSTANCE_ID"

// GetID returns the configured instance id, the platform dyno name, the
// hostname, or "local", in that order.
func GetID() string {
	if id := os.Getenv(EnvInstanceID); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
