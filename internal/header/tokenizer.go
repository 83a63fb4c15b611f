package header

import (
	"fmt"
	"regexp"
	"strings"
)

// Record is a single header as it appeared in the source: the name as
// written and the value with folded continuation lines joined.
type Record struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Identity returns the normalized identity of the record's name.
func (r Record) Identity() Identity {
	return IdentityOf(r.Name)
}

var (
	headerLineRE = regexp.MustCompile(`^([-A-Za-z0-9]+):[ ]?(.*)$`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Tokenize splits raw message source into header records, top to bottom as
// they appear. Folded continuation lines (leading whitespace) are joined to
// the in-progress record with a single space. A fully blank line marks the
// start of the body and ends the scan. Lines that look like a header but
// fail name validation are dropped and reported as warnings; tokenizing
// itself never fails.
func Tokenize(source string) ([]Record, []string) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	source = strings.TrimSpace(source)

	var (
		records  []Record
		warnings []string
		current  *Record
	)

	flush := func() {
		if current != nil {
			records = append(records, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) == "" {
			// Blank line separates headers from the body.
			break
		}

		if line[0] == ' ' || line[0] == '\t' {
			// Continuation of a folded header. A continuation before any
			// header has been seen has nothing to attach to and is ignored.
			if current != nil {
				current.Value += " " + strings.TrimSpace(line)
			}
			continue
		}

		m := headerLineRE.FindStringSubmatch(line)
		if m == nil {
			warnings = append(warnings, fmt.Sprintf("skipped malformed header line: %q", line))
			continue
		}

		flush()
		current = &Record{Name: m[1], Value: m[2]}
	}
	flush()

	return records, warnings
}

// Sanitize collapses the internal whitespace runs of a header value to
// single spaces so downstream decoders see a single-line value. It is a
// deliberate separate step: tokenized records keep the value as joined.
func Sanitize(value string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(value, " "))
}
