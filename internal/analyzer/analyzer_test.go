package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busybox42/headerlens/internal/header"
	"github.com/busybox42/headerlens/internal/msheader"
)

const sampleMessage = `Received: from relay.example.net by mx.example.com
Authentication-Results: spf=pass (sender IP is 203.0.113.7);
 dkim=pass (signature verified); dmarc=pass action=none;
 compauth=pass reason=109
X-Forefront-Antispam-Report: CIP:203.0.113.7;CTRY:NL;IPV:NLI;SFV:NSPM;
 SCL:1;CAT:NONE;H:mail.example.org;PTR:mail.example.org
X-Microsoft-Antispam: BCL:0;ARA:13230040|16200699;
From: Alice <alice@example.com>
To: bob@example.com
Subject: quarterly figures
Date: Mon, 24 Aug 2026 10:00:00 +0000
Message-ID: <20260824@example.com>

body starts here
X-Not-A-Header: ignored`

func TestAnalyze(t *testing.T) {
	a, err := Analyze(sampleMessage, header.Inbound, "")
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, header.Inbound, a.Direction)
	assert.Empty(t, a.Headers.Warnings, "well-formed message yields no warnings")

	assert.Equal(t, "Alice <alice@example.com>", a.Headers.CanonicalValue("From"))
	assert.Equal(t, "quarterly figures", a.Headers.CanonicalValue("Subject"))

	ar := a.Security.AuthenticationResults
	require.NotNil(t, ar)
	assert.True(t, ar.HeaderSpecified)
	require.NotNil(t, ar.SPF)
	assert.Equal(t, msheader.VerdictPass, ar.SPF.Result)
	require.NotNil(t, ar.CompAuth)
	assert.Equal(t, "109", ar.CompAuth.ReasonCode)

	fr := a.Security.ForefrontSpamReport
	require.NotNil(t, fr)
	assert.Equal(t, 1, fr.SpamScore)
	assert.Equal(t, "not spam", fr.SpamScoreMeaning)
	assert.Equal(t, "203.0.113.7", fr.Sender.IP)
	assert.Equal(t, "Netherlands", fr.Sender.Country)

	br := a.Security.BulkReport
	require.NotNil(t, br)
	assert.Equal(t, 0, br.BulkComplaintLevel)

	assert.Nil(t, a.Security.OriginalAuthentication,
		"absent header contributes no fragment")
}

func TestAnalyzeInvalidDirection(t *testing.T) {
	_, err := Analyze("From: a@b.c", header.Direction("bogus"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, header.ErrInvalidDirection)
}

func TestAnalyzeMalformedContentStillSucceeds(t *testing.T) {
	a, err := Analyze("not a header at all\nX-Forefront-Antispam-Report: CAT:;;;garbage", header.Inbound, "")
	require.NoError(t, err, "malformed content degrades, never fails")
	assert.NotEmpty(t, a.Headers.Warnings)
	require.NotNil(t, a.Security.ForefrontSpamReport)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("From: a@b.c", header.Inbound, "")
	b := Fingerprint("From: a@b.c", header.Inbound, "")
	assert.Equal(t, a, b, "fingerprint is stable for identical inputs")

	assert.NotEqual(t, a, Fingerprint("From: a@b.c", header.Outbound, ""),
		"direction is part of the fingerprint")
	assert.NotEqual(t, a, Fingerprint("From: a@b.c", header.Inbound, "X-"),
		"custom prefix is part of the fingerprint")
}
