// Package shared provides common utility functions used across multiple
// packages in the ldq codebase.
package shared

import (
	"fmt"
	"net/url"
	"strings"
)

// IsAbsoluteHTTPURI reports whether value parses as an absolute URI with an
// http or https scheme and a non-empty host.
func IsAbsoluteHTTPURI(value string) bool {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}
