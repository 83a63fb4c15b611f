package msheader

import "testing"

func TestSCLMeaning(t *testing.T) {
	tests := []struct {
		scl      int
		expected string
	}{
		{-1, "not scored"},
		{0, "not spam"},
		{1, "not spam"},
		{5, "spam"},
		{6, "spam"},
		{9, "high-confidence spam"},
		{2, "UNKNOWN"},
		{42, "UNKNOWN"},
		{-2, "UNKNOWN"},
	}
	for _, tc := range tests {
		if got := SCLMeaning(tc.scl); got != tc.expected {
			t.Errorf("SCLMeaning(%d) = %q, want %q", tc.scl, got, tc.expected)
		}
	}
}

func TestBCLMeaning(t *testing.T) {
	tests := []struct {
		bcl      int
		expected string
	}{
		{0, "not from bulk mail sender"},
		{1, "few user complaints"},
		{3, "few user complaints"},
		{4, "some user complaints"},
		{7, "some user complaints"},
		{8, "many user complaints"},
		{9, "many user complaints"},
		{10, "UNKNOWN"},
		{-1, "UNKNOWN"},
	}
	for _, tc := range tests {
		if got := BCLMeaning(tc.bcl); got != tc.expected {
			t.Errorf("BCLMeaning(%d) = %q, want %q", tc.bcl, got, tc.expected)
		}
	}
}

func TestCompAuthReasonMeaning(t *testing.T) {
	// Exact codes win over the leading-digit category.
	if got := CompAuthReasonMeaning("000"); got != compAuthReasons["000"] {
		t.Errorf("CompAuthReasonMeaning(000) = %q", got)
	}

	// Unlisted codes fall back to the leading digit.
	if got := CompAuthReasonMeaning("130"); got != "explicit authentication pass" {
		t.Errorf("CompAuthReasonMeaning(130) = %q", got)
	}
	if got := CompAuthReasonMeaning("299"); got != "implicit authentication pass" {
		t.Errorf("CompAuthReasonMeaning(299) = %q", got)
	}
	if got := CompAuthReasonMeaning("601"); got != "exempted authentication failure" {
		t.Errorf("CompAuthReasonMeaning(601) = %q", got)
	}

	// Unknown codes display as themselves, never an error.
	if got := CompAuthReasonMeaning("888"); got != "888" {
		t.Errorf("CompAuthReasonMeaning(888) = %q", got)
	}
	if got := CompAuthReasonMeaning(""); got != "" {
		t.Errorf("CompAuthReasonMeaning(empty) = %q", got)
	}
}

func TestCodeFallbacks(t *testing.T) {
	if got := CategoryMeaning("NOPE"); got != "NOPE" {
		t.Errorf("CategoryMeaning fallback = %q", got)
	}
	if got := FilterVerdictMeaning("NOPE"); got != "NOPE" {
		t.Errorf("FilterVerdictMeaning fallback = %q", got)
	}
	if got := IPReputationMeaning("NOPE"); got != "NOPE" {
		t.Errorf("IPReputationMeaning fallback = %q", got)
	}
	if got := SpoofingMeaning("1.23"); got != "1.23" {
		t.Errorf("SpoofingMeaning fallback = %q", got)
	}
}

func TestCountryName(t *testing.T) {
	if got := CountryName("DE"); got != "Germany" {
		t.Errorf("CountryName(DE) = %q", got)
	}
	if got := CountryName("US"); got != "United States" {
		t.Errorf("CountryName(US) = %q", got)
	}
	if got := CountryName("not-a-code"); got != "not-a-code" {
		t.Errorf("CountryName fallback = %q", got)
	}
}
