// Package msheader decodes the semi-structured micro-formats Microsoft
// Exchange Online stamps into message headers: Authentication-Results,
// Authentication-Results-Original, X-Forefront-Antispam-Report and
// X-Microsoft-Antispam. Decoders never fail on malformed content; unknown
// sub-fields are ignored and unknown codes fall back to the code itself.
package msheader

import "strings"

// Verdict is the closed set of authentication outcomes a mail system can
// report for SPF, DKIM, DMARC and compound authentication.
type Verdict string

const (
	VerdictNone      Verdict = "none"
	VerdictPass      Verdict = "pass"
	VerdictNeutral   Verdict = "neutral"
	VerdictFail      Verdict = "fail"
	VerdictSoftFail  Verdict = "softfail"
	VerdictTempError Verdict = "temperror"
	VerdictPermError Verdict = "permerror"
	VerdictUnknown   Verdict = "unknown"
)

// ParseVerdict maps a raw result token to a Verdict. Anything outside the
// known set becomes VerdictUnknown rather than an error.
func ParseVerdict(s string) Verdict {
	switch Verdict(strings.ToLower(strings.TrimSpace(s))) {
	case VerdictNone:
		return VerdictNone
	case VerdictPass:
		return VerdictPass
	case VerdictNeutral:
		return VerdictNeutral
	case VerdictFail:
		return VerdictFail
	case VerdictSoftFail:
		return VerdictSoftFail
	case VerdictTempError:
		return VerdictTempError
	case VerdictPermError:
		return VerdictPermError
	default:
		return VerdictUnknown
	}
}

// Report aggregates the decoded fragments. A nil fragment means its source
// header was absent, which consumers must treat differently from a present
// fragment whose result is merely unknown.
type Report struct {
	AuthenticationResults  *AuthResults  `json:"authenticationResults,omitempty"`
	OriginalAuthentication *OriginalAuth `json:"originalAuthentication,omitempty"`
	ForefrontSpamReport    *SpamReport   `json:"forefrontSpamReport,omitempty"`
	BulkReport             *BulkReport   `json:"bulkReport,omitempty"`
}
