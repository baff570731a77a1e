// Package email holds small helpers for contact email addresses.
package email

import (
	"net/mail"
	"strings"
)

// Valid reports whether addr is a plausible single email address. It accepts
// what net/mail accepts but rejects display-name forms ("Bob <b@x>") since
// contact fields store bare addresses.
func Valid(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	return parsed.Address == addr
}
