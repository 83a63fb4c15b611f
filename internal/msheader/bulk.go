package msheader

import (
	"regexp"
	"strconv"
	"strings"
)

var bclRE = regexp.MustCompile(`BCL:(\d+)`)

// BulkReport is the decoded X-Microsoft-Antispam header. Only the bulk
// complaint level is extracted; the rest of the value is opaque.
type BulkReport struct {
	HeaderSpecified    bool   `json:"bulkReportHeaderSpecified"`
	BulkComplaintLevel int    `json:"bulkComplaintLevel"`
	Meaning            string `json:"bulkComplaintLevelMeaning"`
}

// DecodeBulkReport scans the raw X-Microsoft-Antispam value for a BCL
// score. The value is not field-split; the score is pulled straight out
// with a regex. Returns nil for an empty value; a present value with no
// parseable BCL yields the not-scored sentinel.
func DecodeBulkReport(value string) *BulkReport {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	out := &BulkReport{HeaderSpecified: true, BulkComplaintLevel: NotScored}
	if m := bclRE.FindStringSubmatch(value); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.BulkComplaintLevel = n
		}
	}
	out.Meaning = BCLMeaning(out.BulkComplaintLevel)

	return out
}
