package utils

import (
	"regexp"
)

var emailShape = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// LooksLikeEmail decides whether a login identifier should be looked up as
// an email address. Anything that fails the shape check falls through to a
// username lookup, including malformed email-ish strings.
func LooksLikeEmail(identifier string) bool {
	return emailShape.MatchString(identifier)
}
