package utils

import "os"

// SafeEnv returns the environment variable value for key, or fallback when it
// is unset or empty.
func SafeEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
