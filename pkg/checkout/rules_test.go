// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package checkout

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/patch"
)

const fixedMessage = "`✅ Check-in thành công cho ${response.data.attendeeName}`"

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "reading fixture %s", name)
	return string(data)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel).WithContext(context.Background())
}

func outcomes(result *patch.Result) map[string]patch.Outcome {
	m := make(map[string]patch.Outcome, len(result.Rules))
	for _, rr := range result.Rules {
		m[rr.ID] = rr.Outcome
	}
	return m
}

func TestRulesAreValid(t *testing.T) {
	require.NoError(t, patch.ValidateRules(Rules()))
	assert.Equal(t, []string{
		ScanCall,
		ScanMessage,
		UploadSessionVar,
		UploadSessionExtract,
		UploadCall,
		UploadMessage,
	}, IDs())

	for name, s := range map[string]string{
		"enriched_call":   enrichedCall,
		"scan_message":    scanMessage,
		"upload_message":  uploadMessage,
		"session_extract": sessionExtract,
	} {
		assert.NotEmpty(t, s, "snippet %s", name)
		assert.False(t, strings.HasSuffix(s, "\n"), "snippet %s keeps a trailing newline", name)
	}
}

func TestRulesFullFixture(t *testing.T) {
	ctx := testContext(t)
	input := readFixture(t, "page.tsx")

	result := patch.Apply(ctx, input, Rules(), patch.Options{})

	require.True(t, result.WasModified())
	assert.Equal(t, []string{
		"✓ Updated first checkInAPI call in handleQRScanSuccess",
		"✓ Updated first success message",
		"✓ Added sessionId variable in handleQRUploadSuccess",
		"✓ Added sessionId extraction in handleQRUploadSuccess",
		"✓ Updated second checkInAPI call in handleQRUploadSuccess",
		"✓ Updated second success message",
	}, result.Changes())

	out := result.Modified
	upload := strings.Index(out, "const handleQRUploadSuccess")
	require.Positive(t, upload)

	t.Run("both_calls_enriched", func(t *testing.T) {
		assert.Equal(t, 2, strings.Count(out, enrichedCall))
		assert.NotContains(t, out, "// Perform check-in\n")
		assert.Contains(t, out, "setShowQRInfo(true);\n      }\n\n      // Perform check-in/checkout\n      const response")

		first := strings.Index(out, enrichedCall)
		last := strings.LastIndex(out, enrichedCall)
		assert.Less(t, first, upload, "first call belongs to the scan handler")
		assert.Greater(t, last, upload, "second call belongs to the upload handler")
	})

	t.Run("session_variable_declared", func(t *testing.T) {
		assert.Contains(t, out,
			"let conferenceId: number | null = conferenceIdFromQR || null;\n"+
				"      let sessionId: number | null = null;\n"+
				"\n"+
				"      try {")
	})

	t.Run("session_extracted_before_catch", func(t *testing.T) {
		assert.Contains(t, out,
			"          conferenceId = parsedQRData.conf;\n"+
				"        }\n"+
				"\n"+
				"        // Extract session ID from QR data if available\n"+
				"        if (parsedQRData.session) {\n"+
				"          sessionId = parsedQRData.session;\n"+
				"          console.log(\"📱 Session ID from uploaded QR:\", sessionId);\n"+
				"        }\n"+
				"      } catch (e) {")
	})

	t.Run("both_messages_rewritten", func(t *testing.T) {
		assert.NotContains(t, out, fixedMessage)

		scan := strings.Index(out, "message: "+scanMessage)
		require.Positive(t, scan)
		assert.Less(t, scan, upload)

		block := strings.Index(out, uploadMessage)
		require.Positive(t, block)
		assert.Greater(t, block, upload)
		assert.Contains(t, out, uploadMessage+"\n          type: \"success\",")
	})

	t.Run("scan_handler_untouched_outside_rules", func(t *testing.T) {
		assert.Contains(t, out, "let conferenceId: number | null = null;\n      let sessionId: number | null = null;\n\n      try {")
		assert.Equal(t, 1, strings.Count(out, "Session ID from uploaded QR"))
	})
}

func TestRulesSecondRunIsNoop(t *testing.T) {
	ctx := testContext(t)
	first := patch.Apply(ctx, readFixture(t, "page.tsx"), Rules(), patch.Options{})
	require.Equal(t, 6, first.Count(patch.Applied))

	second := patch.Apply(ctx, first.Modified, Rules(), patch.Options{})

	assert.False(t, second.WasModified())
	assert.Empty(t, second.Changes())
	assert.Equal(t, 6, second.Count(patch.Skipped))
	assert.Equal(t, first.Modified, second.Modified)
}

func TestRulesWithoutUploadHandler(t *testing.T) {
	result := patch.Apply(testContext(t), readFixture(t, "no_upload.tsx"), Rules(), patch.Options{})

	assert.Equal(t, map[string]patch.Outcome{
		ScanCall:             patch.Applied,
		ScanMessage:          patch.Applied,
		UploadSessionVar:     patch.Skipped,
		UploadSessionExtract: patch.Skipped,
		UploadCall:           patch.Applied,
		UploadMessage:        patch.Skipped,
	}, outcomes(result))

	assert.Equal(t, 2, strings.Count(result.Modified, enrichedCall))
	assert.NotContains(t, result.Modified, "// Perform check-in\n")
}

func TestRulesSingleCall(t *testing.T) {
	input := readFixture(t, "scan_only.tsx")
	require.Equal(t, 1, strings.Count(input, "// Perform check-in"))

	result := patch.Apply(testContext(t), input, Rules(), patch.Options{})

	got := outcomes(result)
	assert.Equal(t, patch.Applied, got[ScanCall])
	assert.Equal(t, patch.Skipped, got[UploadCall])
	assert.Equal(t, patch.Skipped, got[UploadMessage])
	assert.Equal(t, 1, strings.Count(result.Modified, enrichedCall))
}

func TestRulesPartiallyPatched(t *testing.T) {
	rules := Rules()
	input := readFixture(t, "page.tsx")

	// someone already applied the scan handler's call by hand
	partial, ok := rules[0].Apply(input)
	require.True(t, ok)

	result := patch.Apply(testContext(t), partial, rules, patch.Options{})

	got := outcomes(result)
	assert.Equal(t, patch.Skipped, got[ScanCall])
	assert.Equal(t, patch.Applied, got[UploadCall])
	assert.Equal(t, 2, strings.Count(result.Modified, enrichedCall))
}

func TestRulesNoMatch(t *testing.T) {
	input := "export default function Empty() {\n  return null;\n}\n"

	result := patch.Apply(testContext(t), input, Rules(), patch.Options{})

	assert.False(t, result.WasModified())
	assert.Equal(t, input, result.Modified)
	assert.Equal(t, len(Rules()), result.Count(patch.Skipped))
}

func TestRulesSuccessMessageTwice(t *testing.T) {
	input := readFixture(t, "page.tsx")
	require.Equal(t, 2, strings.Count(input, fixedMessage))

	result := patch.Apply(testContext(t), input, Rules(), patch.Options{})

	assert.Equal(t, 0, strings.Count(result.Modified, fixedMessage))
	// "checkin" with no session renders the old wording, "checkout" the new one
	assert.Contains(t, result.Modified, "selectedActionType === 'checkin' ? 'Check-in' : 'Check-out'")
	assert.Contains(t, result.Modified, "${sessionId ? ` (Session ${sessionId})` : ''}")
	assert.Contains(t, result.Modified, "const sessionInfo = sessionId ? ` (Session ${sessionId})` : '';")
	assert.Contains(t, result.Modified, "`✅ ${actionText} thành công cho ${response.data.attendeeName}${sessionInfo}`")
}

func TestRulesDisabled(t *testing.T) {
	result := patch.Apply(testContext(t), readFixture(t, "page.tsx"), Rules(), patch.Options{
		Disabled: map[string]bool{UploadMessage: true},
	})

	got := outcomes(result)
	assert.Equal(t, patch.Disabled, got[UploadMessage])
	assert.Equal(t, 5, result.Count(patch.Applied))
	assert.Equal(t, 1, strings.Count(result.Modified, fixedMessage))
}

func TestRulesCRLF(t *testing.T) {
	ctx := testContext(t)
	input := strings.ReplaceAll(readFixture(t, "page.tsx"), "\n", "\r\n")

	result := patch.Apply(ctx, input, Rules(), patch.Options{})

	require.True(t, result.WasModified())
	assert.Len(t, result.Changes(), 6)
	assert.Equal(t, strings.Count(result.Modified, "\n"), strings.Count(result.Modified, "\r\n"), "every line should end in CRLF")
	assert.Contains(t, result.Modified, "actionType: selectedActionType, // Include action type (checkin/checkout)\r\n")

	second := patch.Apply(ctx, result.Modified, Rules(), patch.Options{})
	assert.False(t, second.WasModified(), "second run over CRLF output should change nothing")
	assert.Empty(t, second.Changes())
}
