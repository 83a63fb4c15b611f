package header

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []Record
		warnings int
	}{
		{
			name:     "single header",
			source:   "Subject: hello",
			expected: []Record{{Name: "Subject", Value: "hello"}},
		},
		{
			name:   "folded header joins with single space",
			source: "X-Foo: a\n  b\n  c",
			expected: []Record{
				{Name: "X-Foo", Value: "a b c"},
			},
		},
		{
			name:   "CRLF and CR line endings normalized",
			source: "From: a@example.com\r\nTo: b@example.com\rSubject: hi",
			expected: []Record{
				{Name: "From", Value: "a@example.com"},
				{Name: "To", Value: "b@example.com"},
				{Name: "Subject", Value: "hi"},
			},
		},
		{
			name:   "blank line ends header section",
			source: "Subject: hi\n\nFrom: body-text@example.com",
			expected: []Record{
				{Name: "Subject", Value: "hi"},
			},
		},
		{
			name:   "duplicate headers both retained in source order",
			source: "Received: hop2\nReceived: hop1",
			expected: []Record{
				{Name: "Received", Value: "hop2"},
				{Name: "Received", Value: "hop1"},
			},
		},
		{
			name:   "malformed line dropped with warning",
			source: "Subject: hi\nnot a header line\nFrom: a@example.com",
			expected: []Record{
				{Name: "Subject", Value: "hi"},
				{Name: "From", Value: "a@example.com"},
			},
			warnings: 1,
		},
		{
			name:   "leading whitespace trimmed before scanning",
			source: "  From: alice@example.com\nSubject: hi",
			expected: []Record{
				{Name: "From", Value: "alice@example.com"},
				{Name: "Subject", Value: "hi"},
			},
		},
		{
			name:     "continuation after dropped malformed line is ignored",
			source:   "no colon here\n  dangling continuation\nSubject: hi",
			expected: []Record{{Name: "Subject", Value: "hi"}},
			warnings: 1,
		},
		{
			name:     "underscore in name rejected with warning",
			source:   "x_spam_flag: no",
			expected: nil,
			warnings: 1,
		},
		{
			name:     "empty value allowed",
			source:   "X-Empty:",
			expected: []Record{{Name: "X-Empty", Value: ""}},
		},
		{
			name:     "empty input yields no records",
			source:   "\n\n",
			expected: nil,
		},
		{
			name:     "tab continuation",
			source:   "X-Foo: a\n\tb",
			expected: []Record{{Name: "X-Foo", Value: "a b"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records, warnings := Tokenize(tc.source)
			if !reflect.DeepEqual(records, tc.expected) {
				t.Errorf("Tokenize records = %#v, want %#v", records, tc.expected)
			}
			if len(warnings) != tc.warnings {
				t.Errorf("Tokenize warnings = %v, want %d", warnings, tc.warnings)
			}
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	// Rejoining name + ": " + value reproduces well-formed single-line input.
	lines := []string{
		"From: alice@example.com",
		"Subject: a perfectly ordinary subject",
		"X-Custom-1: value one",
	}
	records, warnings := Tokenize(strings.Join(lines, "\n"))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	var rejoined []string
	for _, rec := range records {
		rejoined = append(rejoined, rec.Name+": "+rec.Value)
	}
	if !reflect.DeepEqual(rejoined, lines) {
		t.Errorf("round trip = %v, want %v", rejoined, lines)
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize("  a\t b   c ")
	if got != "a b c" {
		t.Errorf("Sanitize = %q, want %q", got, "a b c")
	}
}

func TestIdentityOf(t *testing.T) {
	ids := []string{"Content-Type", "content_type", "CONTENT-TYPE", "Content_Type"}
	for _, name := range ids {
		if got := IdentityOf(name); got != "content_type" {
			t.Errorf("IdentityOf(%q) = %q, want content_type", name, got)
		}
	}
}
