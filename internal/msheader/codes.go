package msheader

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Compound authentication reason codes. Exact codes first, then the leading
// digit selects a category. Unmapped codes are displayed as-is.
var compAuthReasons = map[string]string{
	"000": "explicit failure: the sending domain publishes authentication policies and the message failed them (DMARC with an action of reject or quarantine)",
	"001": "implicit failure: the sending domain publishes no authentication policies and the message failed implicit checks",
	"002": "enforced failure: organization policy explicitly prohibits unauthenticated mail for this sender/domain pair",
	"010": "explicit failure: the message failed DMARC with a reject or quarantine action for one of the organization's own domains",
}

var compAuthCategories = map[byte]string{
	'0': "explicit authentication failure",
	'1': "explicit authentication pass",
	'2': "implicit authentication pass",
	'3': "authentication not checked",
	'4': "authentication check skipped",
	'6': "exempted authentication failure",
	'7': "explicit authentication pass",
	'9': "authentication check skipped",
}

// CompAuthReasonMeaning translates a 3-digit compauth reason code to a
// description. Falls back to the leading-digit category, then to the code
// itself.
func CompAuthReasonMeaning(code string) string {
	if meaning, ok := compAuthReasons[code]; ok {
		return meaning
	}
	if len(code) > 0 {
		if category, ok := compAuthCategories[code[0]]; ok {
			return category
		}
	}
	return code
}

// Forefront CAT codes: why the filtering stack categorized the message.
var categoryMeanings = map[string]string{
	"AMP":    "anti-malware policy",
	"BULK":   "bulk mail",
	"DIMP":   "domain impersonation",
	"GIMP":   "mailbox intelligence impersonation",
	"HPHISH": "high-confidence phishing",
	"HPHSH":  "high-confidence phishing",
	"HSPM":   "high-confidence spam",
	"MALW":   "malware",
	"NONE":   "not categorised",
	"OSPM":   "outbound spam",
	"PHSH":   "phishing",
	"SAP":    "safe attachments",
	"SPM":    "spam",
	"SPOOF":  "spoofing",
	"UIMP":   "user impersonation",
}

// CategoryMeaning translates a CAT code, falling back to the code itself.
func CategoryMeaning(code string) string {
	if meaning, ok := categoryMeanings[code]; ok {
		return meaning
	}
	return code
}

// Forefront SFV codes: what the spam filter decided and why.
var filterVerdictMeanings = map[string]string{
	"BLK":  "blocked, sender is on the recipient's blocked senders list",
	"NSPM": "marked as not spam",
	"SFE":  "skipped, sender is on the recipient's safe senders list",
	"SKA":  "skipped filtering, sender on an allow list",
	"SKB":  "marked as spam, sender on a block list",
	"SKI":  "skipped filtering, intra-organization message",
	"SKN":  "marked as not spam by a mail flow rule",
	"SKQ":  "released from quarantine",
	"SKS":  "marked as spam by a mail flow rule",
	"SPM":  "marked as spam",
}

// FilterVerdictMeaning translates an SFV code, falling back to the code.
func FilterVerdictMeaning(code string) string {
	if meaning, ok := filterVerdictMeanings[code]; ok {
		return meaning
	}
	return code
}

var ipReputationMeanings = map[string]string{
	"CAL": "allow-listed",
	"NLI": "not listed",
}

// IPReputationMeaning translates an IPV code, falling back to the code.
func IPReputationMeaning(code string) string {
	if meaning, ok := ipReputationMeanings[code]; ok {
		return meaning
	}
	return code
}

var spoofingMeanings = map[string]string{
	"9.19": "user spoofing",
	"9.20": "domain spoofing",
}

// SpoofingMeaning translates an SFTY code, falling back to the code.
func SpoofingMeaning(code string) string {
	if meaning, ok := spoofingMeanings[code]; ok {
		return meaning
	}
	return code
}

// NotScored is the sentinel for an SCL or BCL that was absent or
// unparseable in the source header.
const NotScored = -1

// SCLMeaning describes a spam confidence level.
func SCLMeaning(scl int) string {
	switch {
	case scl == -1:
		return "not scored"
	case scl == 0 || scl == 1:
		return "not spam"
	case scl == 5 || scl == 6:
		return "spam"
	case scl == 9:
		return "high-confidence spam"
	default:
		return "UNKNOWN"
	}
}

// BCLMeaning describes a bulk complaint level.
func BCLMeaning(bcl int) string {
	switch {
	case bcl == 0:
		return "not from bulk mail sender"
	case bcl >= 1 && bcl <= 3:
		return "few user complaints"
	case bcl >= 4 && bcl <= 7:
		return "some user complaints"
	case bcl >= 8 && bcl <= 9:
		return "many user complaints"
	default:
		return "UNKNOWN"
	}
}

// CountryName resolves an ISO 3166 country code to its English name for
// display. Unknown or malformed codes come back unchanged.
func CountryName(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := display.English.Regions().Name(region); name != "" {
		return name
	}
	return code
}
