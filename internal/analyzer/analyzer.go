// Package analyzer ties the header parsing pipeline to the Microsoft
// security header decoders and produces the complete analysis object handed
// to callers.
package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/busybox42/headerlens/internal/header"
	"github.com/busybox42/headerlens/internal/msheader"
)

// Analysis is the full result of one parse-and-decode pass. It is entirely
// value-derived from its inputs and owned by the caller; two analyses of the
// same input differ only in ID and timestamp.
type Analysis struct {
	ID           string           `json:"id"`
	Direction    header.Direction `json:"direction"`
	CustomPrefix string           `json:"customPrefix,omitempty"`
	Headers      *header.Set      `json:"headers"`
	Security     msheader.Report  `json:"securityReport"`
	AnalyzedAt   time.Time        `json:"analyzedAt"`
}

// Analyze parses raw header source and decodes the security headers the
// canonicalizer selected. It fails only on an invalid direction; malformed
// content degrades into warnings inside the result.
func Analyze(source string, direction header.Direction, customPrefix string) (*Analysis, error) {
	set, err := header.Build(source, direction, customPrefix)
	if err != nil {
		return nil, err
	}

	// Decoders expect single-line, whitespace-collapsed values.
	report := msheader.Report{
		AuthenticationResults:  msheader.DecodeAuthenticationResults(header.Sanitize(set.CanonicalValue("Authentication-Results"))),
		OriginalAuthentication: msheader.DecodeOriginalAuthResults(header.Sanitize(set.CanonicalValue("Authentication-Results-Original"))),
		ForefrontSpamReport:    msheader.DecodeForefrontReport(header.Sanitize(set.CanonicalValue("X-Forefront-Antispam-Report"))),
		BulkReport:             msheader.DecodeBulkReport(header.Sanitize(set.CanonicalValue("X-Microsoft-Antispam"))),
	}

	return &Analysis{
		ID:           uuid.New().String(),
		Direction:    direction,
		CustomPrefix: customPrefix,
		Headers:      set,
		Security:     report,
		AnalyzedAt:   time.Now().UTC(),
	}, nil
}

// Fingerprint is a stable digest of the analysis inputs, used as the result
// cache key so re-submitting the same source skips re-parsing.
func Fingerprint(source string, direction header.Direction, customPrefix string) string {
	h := sha256.New()
	h.Write([]byte(string(direction)))
	h.Write([]byte{0})
	h.Write([]byte(customPrefix))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}
