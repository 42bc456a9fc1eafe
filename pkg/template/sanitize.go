package template

import "github.com/microcosm-cc/bluemonday"

// ugcPolicy allows the formatting tags typical of user-generated content
// while stripping scripts and event handler attributes.
var ugcPolicy = bluemonday.UGCPolicy()

// Sanitize strips dangerous markup from untrusted content. It is the
// recommended content post-processor for remote-fetched popover bodies:
//
//	opts.Process = template.Sanitize
func Sanitize(b []byte) []byte {
	return ugcPolicy.SanitizeBytes(b)
}

// SanitizeString is Sanitize for string content.
func SanitizeString(s string) string {
	return ugcPolicy.Sanitize(s)
}
