// Package env reads process environment variables during bootstrap, before
// the envconfig-backed config layer is available.
package env

import "os"

// Get returns the named variable, or fallback when it is unset or empty.
// Platform-injected variables like PORT are read this way so they can
// override the parsed config.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
