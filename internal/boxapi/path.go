// Package boxapi holds the small shared pieces of the Box REST surface:
// URL path construction, options-to-query serialization, response decoding,
// and the error produced for responses outside an operation's contract.
package boxapi

import (
	"net/url"
	"strings"
)

// Path joins the supplied segments into a normalized, URL-escaped request
// path with a leading slash. Empty segments are skipped.
func Path(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		parts = append(parts, url.PathEscape(s))
	}
	return "/" + strings.Join(parts, "/")
}
