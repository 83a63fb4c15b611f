// Package header implements the header parsing pipeline: tokenizing raw
// message source into records, indexing them by normalized identity, and
// selecting canonical values per logical field.
package header

import "strings"

// Identity is the normalized lookup key for a header name: lower-cased with
// every dash replaced by an underscore. "Content-Type", "content_type" and
// "CONTENT-TYPE" all share the same identity.
type Identity string

// IdentityOf derives the identity for a header name as written.
func IdentityOf(name string) Identity {
	return Identity(strings.ReplaceAll(strings.ToLower(name), "-", "_"))
}

// HasPrefix reports whether the identity starts with the normalized form of
// the given prefix.
func (id Identity) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(id), string(IdentityOf(prefix)))
}
