package msheader

import (
	"regexp"
	"strings"
)

// CompAuth is Microsoft's combined DMARC/DKIM/SPF verdict with its 3-digit
// reason code.
type CompAuth struct {
	Result        Verdict `json:"result"`
	ReasonCode    string  `json:"reasonCode,omitempty"`
	ReasonMeaning string  `json:"reasonMeaning,omitempty"`
}

// DMARCResult carries the DMARC verdict and the policy action applied.
type DMARCResult struct {
	Result Verdict `json:"result"`
	Action string  `json:"action,omitempty"`
}

// MethodResult carries an SPF or DKIM verdict plus whatever free-text detail
// followed it.
type MethodResult struct {
	Result  Verdict `json:"result"`
	Details string  `json:"details,omitempty"`
}

// AuthResults is the decoded Authentication-Results header. HeaderSpecified
// is true only when the header value was non-empty, so consumers can tell a
// missing header from an unknown verdict.
type AuthResults struct {
	HeaderSpecified bool          `json:"authenticationResultsHeaderSpecified"`
	CompAuth        *CompAuth     `json:"compoundAuthentication,omitempty"`
	DMARC           *DMARCResult  `json:"dmarc,omitempty"`
	DKIM            *MethodResult `json:"dkim,omitempty"`
	SPF             *MethodResult `json:"spf,omitempty"`
}

// OriginalAuth is the pre-quarantine authentication outcome from
// Authentication-Results-Original.
type OriginalAuth struct {
	HeaderSpecified bool    `json:"originalAuthenticationHeaderSpecified"`
	Result          Verdict `json:"result"`
}

var (
	headerNamePrefixRE = regexp.MustCompile(`(?i)^authentication-results(-original)?:\s*`)
	segmentSplitRE     = regexp.MustCompile(`;[ ]?`)
	reasonCodeRE       = regexp.MustCompile(`reason=(\d{3})`)
	dmarcActionRE      = regexp.MustCompile(`action=(\S+)`)
	originalAuthRE     = regexp.MustCompile(`auth=(\w+)`)
)

// DecodeAuthenticationResults decodes an Authentication-Results value.
// Returns nil when the value is empty after stripping an optional header
// name prefix, meaning the header was absent.
func DecodeAuthenticationResults(value string) *AuthResults {
	value = strings.TrimSpace(headerNamePrefixRE.ReplaceAllString(strings.TrimSpace(value), ""))
	if value == "" {
		return nil
	}

	out := &AuthResults{HeaderSpecified: true}

	for _, segment := range segmentSplitRE.Split(value, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		key, rest, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		result, details, _ := strings.Cut(rest, " ")
		details = strings.TrimSpace(details)

		switch strings.ToLower(key) {
		case "compauth":
			ca := &CompAuth{Result: ParseVerdict(result)}
			if m := reasonCodeRE.FindStringSubmatch(details); m != nil {
				ca.ReasonCode = m[1]
				ca.ReasonMeaning = CompAuthReasonMeaning(m[1])
			}
			out.CompAuth = ca
		case "dmarc":
			d := &DMARCResult{Result: ParseVerdict(result)}
			if m := dmarcActionRE.FindStringSubmatch(details); m != nil {
				d.Action = m[1]
			}
			out.DMARC = d
		case "dkim":
			out.DKIM = &MethodResult{Result: ParseVerdict(result), Details: stripWrappingParens(details)}
		case "spf":
			out.SPF = &MethodResult{Result: ParseVerdict(result), Details: stripWrappingParens(details)}
		}
	}

	return out
}

// DecodeOriginalAuthResults extracts the auth= token from an
// Authentication-Results-Original value. Returns nil for an empty value.
func DecodeOriginalAuthResults(value string) *OriginalAuth {
	value = strings.TrimSpace(headerNamePrefixRE.ReplaceAllString(strings.TrimSpace(value), ""))
	if value == "" {
		return nil
	}

	out := &OriginalAuth{HeaderSpecified: true, Result: VerdictUnknown}
	if m := originalAuthRE.FindStringSubmatch(value); m != nil {
		out.Result = ParseVerdict(m[1])
	}
	return out
}

// stripWrappingParens removes one layer of parentheses wrapping the whole
// detail string, a common rendering of SPF/DKIM comments.
func stripWrappingParens(s string) string {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return s[1 : len(s)-1]
	}
	return s
}
