package msheader

import (
	"strconv"
	"strings"
)

// Sender describes the submitting host as seen by the filtering stack.
type Sender struct {
	IP          string `json:"ip,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	Country     string `json:"country,omitempty"`
	ReverseDNS  string `json:"reverseDns,omitempty"`
	Helo        string `json:"helo,omitempty"`
}

// SpamReport is the decoded X-Forefront-Antispam-Report header.
type SpamReport struct {
	HeaderSpecified            bool   `json:"forefrontReportHeaderSpecified"`
	MessageCategorisation      string `json:"messageCategorisation,omitempty"`
	CategoryCode               string `json:"categoryCode,omitempty"`
	FilterVerdict              string `json:"spamFilterVerdict,omitempty"`
	FilterVerdictCode          string `json:"spamFilterVerdictCode,omitempty"`
	SpamScore                  int    `json:"spamScore"`
	SpamScoreMeaning           string `json:"spamScoreMeaning,omitempty"`
	IPReputation               string `json:"ipReputation,omitempty"`
	SpoofingWarning            string `json:"spoofingWarning,omitempty"`
	FlaggedDueToUserComplaints bool   `json:"flaggedDueToUserComplaints"`
	ReleasedFromQuarantine     bool   `json:"releasedFromQuarantine"`
	Sender                     Sender `json:"sender"`
}

// DecodeForefrontReport decodes an X-Forefront-Antispam-Report value, a
// semicolon-separated list of KEY:value pairs (colon separator, unlike
// Authentication-Results). Returns nil for an empty value. Unrecognized
// keys are ignored.
func DecodeForefrontReport(value string) *SpamReport {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	out := &SpamReport{HeaderSpecified: true, SpamScore: NotScored}

	for _, segment := range segmentSplitRE.Split(value, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		key, val, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)

		switch strings.ToUpper(key) {
		case "CAT":
			out.CategoryCode = val
			out.MessageCategorisation = CategoryMeaning(val)
		case "SFV":
			out.FilterVerdictCode = val
			out.FilterVerdict = FilterVerdictMeaning(val)
			out.ReleasedFromQuarantine = val == "SKQ"
		case "SCL":
			if n, err := strconv.Atoi(val); err == nil {
				out.SpamScore = n
			}
		case "SRV":
			out.FlaggedDueToUserComplaints = val == "BULK"
		case "IPV":
			out.IPReputation = IPReputationMeaning(val)
		case "SFTY":
			out.SpoofingWarning = SpoofingMeaning(val)
		case "CTRY":
			out.Sender.CountryCode = val
			out.Sender.Country = CountryName(val)
		case "CIP":
			out.Sender.IP = val
		case "PTR":
			out.Sender.ReverseDNS = val
		case "H":
			out.Sender.Helo = val
		}
	}

	out.SpamScoreMeaning = SCLMeaning(out.SpamScore)

	return out
}
