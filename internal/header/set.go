package header

import (
	"errors"
	"fmt"
)

// Direction states which end of the mail flow is being triaged. It decides
// which instance of a per-hop security header is authoritative.
type Direction string

const (
	// Inbound means the message was received by the local organization; the
	// oldest stamp (the first hop's verdict) is the most trustworthy.
	Inbound Direction = "inbound"
	// Outbound means the message was sent by the local organization; the
	// newest stamp is the one this system just added.
	Outbound Direction = "outbound"
)

// ErrInvalidDirection is returned when a direction literal is not one of
// "inbound" or "outbound".
var ErrInvalidDirection = errors.New("direction must be \"inbound\" or \"outbound\"")

// ParseDirection validates a direction literal.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Inbound, Outbound:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w, got %q", ErrInvalidDirection, s)
	}
}

// Valid reports whether the direction is one of the two known literals.
func (d Direction) Valid() bool {
	return d == Inbound || d == Outbound
}

// Canonical is the single authoritative value selected for a logical field.
// Value is always set (possibly empty). Values is populated only when more
// than one raw instance existed, in chronological order. Missing is set only
// for required-singular fields with zero instances.
type Canonical struct {
	Name    string   `json:"name"`
	Value   string   `json:"value"`
	Values  []string `json:"values,omitempty"`
	Err     string   `json:"error,omitempty"`
	Missing bool     `json:"isMissing,omitempty"`
}

// Set is the full parse result for one message source.
type Set struct {
	// AsReceived holds records top to bottom as they appeared in the source;
	// the most recently added routing hop comes first.
	AsReceived []Record `json:"listAsReceived"`
	// Chronological is AsReceived reversed: oldest hop first.
	Chronological []Record `json:"list"`
	// ByIdentity groups records by normalized identity, chronological order
	// within each group.
	ByIdentity map[Identity][]Record `json:"-"`
	// CustomPrefix is the user-supplied prefix, verbatim.
	CustomPrefix string `json:"customPrefix,omitempty"`
	// CustomMatches is the subsequence of Chronological whose identity
	// starts with the normalized custom prefix.
	CustomMatches []Record `json:"listMatchingCustomPrefix,omitempty"`
	// Canonical maps each known logical field to its selected value.
	Canonical map[Identity]Canonical `json:"canonicalByIdentity"`
	// Warnings holds human-readable validation messages accumulated while
	// tokenizing and canonicalizing.
	Warnings []string `json:"warnings"`

	direction Direction
}

// Fields the canonicalizer resolves. Every parse resolves exactly this set;
// headers outside it stay available through ByIdentity only.
var (
	requiredSingular = []string{"From", "Subject", "Date", "To", "Message-ID"}
	optionalSingular = []string{"Reply-To", "Return-Path", "Delivered-To"}
	perHopSecurity   = []string{
		"X-MS-Exchange-Organization-Network-Message-Id",
		"Authentication-Results",
		"Authentication-Results-Original",
		"X-Forefront-Antispam-Report",
		"X-Microsoft-Antispam",
	}
)

// Build tokenizes source and constructs the indexed, canonicalized header
// set. It fails only on an invalid direction; malformed header content is
// degraded into warnings and partial canonical entries.
func Build(source string, direction Direction, customPrefix string) (*Set, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidDirection, string(direction))
	}

	records, warnings := Tokenize(source)

	s := &Set{
		AsReceived:   records,
		CustomPrefix: customPrefix,
		Canonical:    make(map[Identity]Canonical),
		Warnings:     warnings,
		direction:    direction,
	}

	s.Chronological = make([]Record, len(records))
	for i, rec := range records {
		s.Chronological[len(records)-1-i] = rec
	}

	s.ByIdentity = make(map[Identity][]Record)
	for _, rec := range s.Chronological {
		id := rec.Identity()
		s.ByIdentity[id] = append(s.ByIdentity[id], rec)
	}

	if customPrefix != "" {
		for _, rec := range s.Chronological {
			if rec.Identity().HasPrefix(customPrefix) {
				s.CustomMatches = append(s.CustomMatches, rec)
			}
		}
	}

	for _, name := range requiredSingular {
		s.requireExactlyOne(name)
	}
	for _, name := range optionalSingular {
		s.optionalSingle(name)
	}
	for _, name := range perHopSecurity {
		s.takeOne(name)
	}

	return s, nil
}

// Direction returns the direction the set was built for.
func (s *Set) Direction() Direction {
	return s.direction
}

// CanonicalValue returns the canonical value for a field name, or the empty
// string when the field was not resolved.
func (s *Set) CanonicalValue(name string) string {
	return s.Canonical[IdentityOf(name)].Value
}

// requireExactlyOne resolves a field that must appear exactly once. Zero
// instances mark the field missing; more than one records the duplicates and
// leaves the value empty. Both cases append a warning.
func (s *Set) requireExactlyOne(name string) {
	id := IdentityOf(name)
	instances := s.ByIdentity[id]

	switch len(instances) {
	case 0:
		msg := fmt.Sprintf("missing %s header", name)
		s.Canonical[id] = Canonical{Name: name, Missing: true, Err: msg}
		s.Warnings = append(s.Warnings, msg)
	case 1:
		s.Canonical[id] = Canonical{Name: name, Value: instances[0].Value}
	default:
		msg := fmt.Sprintf("%d %s headers found, only one allowed", len(instances), name)
		s.Canonical[id] = Canonical{Name: name, Values: values(instances), Err: msg}
		s.Warnings = append(s.Warnings, msg)
	}
}

// optionalSingle is requireExactlyOne except that zero instances is fine.
func (s *Set) optionalSingle(name string) {
	id := IdentityOf(name)
	instances := s.ByIdentity[id]

	switch len(instances) {
	case 0:
		s.Canonical[id] = Canonical{Name: name}
	case 1:
		s.Canonical[id] = Canonical{Name: name, Value: instances[0].Value}
	default:
		msg := fmt.Sprintf("%d %s headers found, only one allowed", len(instances), name)
		s.Canonical[id] = Canonical{Name: name, Values: values(instances), Err: msg}
		s.Warnings = append(s.Warnings, msg)
	}
}

// takeOne resolves a header that legitimately recurs across hops. Inbound
// triage takes the oldest instance, the verdict computed before intermediate
// relays could restamp it; outbound takes the newest, the stamp this system
// just added. Duplicates are recorded in Values but are not an error.
func (s *Set) takeOne(name string) {
	id := IdentityOf(name)
	instances := s.ByIdentity[id]

	switch len(instances) {
	case 0:
		s.Canonical[id] = Canonical{Name: name}
	case 1:
		s.Canonical[id] = Canonical{Name: name, Value: instances[0].Value}
	default:
		chosen := instances[0]
		if s.direction == Outbound {
			chosen = instances[len(instances)-1]
		}
		s.Canonical[id] = Canonical{Name: name, Value: chosen.Value, Values: values(instances)}
	}
}

func values(records []Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Value
	}
	return out
}
