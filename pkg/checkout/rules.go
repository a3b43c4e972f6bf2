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
	"embed"
	"regexp"
	"strings"

	"github.com/ungngoctri2003/hoi-thao-FE/pkg/patch"
)

// DefaultTarget is the page the rules were written against
const DefaultTarget = "app/checkin-public/page.tsx"

// ManualFallback is the document to follow when the patch cannot run
const ManualFallback = "APPLY-CHECKIN-CHECKOUT-FRONTEND.md"

// 🏷️ Rule IDs, in application order
const (
	ScanCall             = "scan-call"
	ScanMessage          = "scan-message"
	UploadSessionVar     = "upload-session-var"
	UploadSessionExtract = "upload-session-extract"
	UploadCall           = "upload-call"
	UploadMessage        = "upload-message"
)

//go:embed snippets/*.tsx
var snippets embed.FS

func snippet(name string) string {
	data, err := snippets.ReadFile("snippets/" + name)
	if err != nil {
		panic("missing snippet " + name)
	}
	return strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
}

var (
	enrichedCall   = snippet("enriched_call.tsx")
	scanMessage    = snippet("scan_message.tsx")
	uploadMessage  = snippet("upload_message.tsx")
	sessionExtract = snippet("session_extract.tsx")
)

// the single-purpose check-in call, before any session or action type was added
const plainCall = `// Perform check-in\s+const response = await checkInAPI\.checkInAttendee\(\{\s+` +
	`attendeeId: validation\.attendee\.id,\s+qrCode: qrData,\s+conferenceId: conferenceId,\s+` +
	`checkInMethod: "qr",\s+\}\);`

const popupPrefix = `// Show popup success message\s+setPopupMessage\(\{\s+message: `

// the fixed check-in wording of the success popup
const plainMessage = "`" + `✅ Check-in thành công cho \$\{response\.data\.attendeeName\}` + "`,"

var (
	scanHandler   = regexp.MustCompile(`const handleQRScanSuccess\b`)
	uploadHandler = regexp.MustCompile(`const handleQRUploadSuccess\b`)

	callSite  = regexp.MustCompile(`// Perform check-in`)
	popupSite = regexp.MustCompile(`// Show popup success message`)
)

// 📋 Rules returns the six check-out rules in the order they must run.
//
// The call and popup rules pick their site by enclosing handler and fall
// back to occurrence order (first for the scan handler, second for the
// upload handler) when the handler declaration is not found. The [^}] spans
// keep a match inside the block its marker comment opens.
func Rules() []patch.Rule {
	return []patch.Rule{
		&patch.SiteRewrite{
			RuleID: ScanCall,
			Text:   "✓ Updated first checkInAPI call in handleQRScanSuccess",
			Site:   regexp.MustCompile(`// Show QR info if available`),
			Shape:  regexp.MustCompile(`\A(// Show QR info if available[^}]*?setShowQRInfo\(true\);\s+\}\s+)` + plainCall),
			Target: patch.Target{Anchor: scanHandler, Index: 0},
			Build: func(m patch.Match) string {
				return m.Group(1) + enrichedCall
			},
		},
		&patch.SiteRewrite{
			RuleID: ScanMessage,
			Text:   "✓ Updated first success message",
			Site:   popupSite,
			Shape:  regexp.MustCompile(`\A(` + popupPrefix + `)` + plainMessage),
			Target: patch.Target{Anchor: scanHandler, Index: 0},
			Build: func(m patch.Match) string {
				return m.Group(1) + scanMessage
			},
		},
		&patch.Substitution{
			RuleID: UploadSessionVar,
			Text:   "✓ Added sessionId variable in handleQRUploadSuccess",
			Pattern: regexp.MustCompile(
				`(let parsedQRData = null;\s+let conferenceId: number \| null = conferenceIdFromQR \|\| null;)(\s+)(try \{)`),
			Build: func(m patch.Match) string {
				return m.Group(1) + "\n      let sessionId: number | null = null;" + m.Group(2) + m.Group(3)
			},
		},
		&patch.Substitution{
			RuleID: UploadSessionExtract,
			Text:   "✓ Added sessionId extraction in handleQRUploadSuccess",
			Pattern: regexp.MustCompile(
				`(// Extract conference ID from QR data[^}]*?conferenceId = parsedQRData\.conf;\s+\})(\s+)(\} catch \(e\))`),
			Build: func(m patch.Match) string {
				return m.Group(1) + "\n\n" + sessionExtract + m.Group(2) + m.Group(3)
			},
		},
		&patch.SiteRewrite{
			RuleID:      UploadCall,
			Text:        "✓ Updated second checkInAPI call in handleQRUploadSuccess",
			Site:        callSite,
			Shape:       regexp.MustCompile(`\A` + plainCall),
			Target:      patch.Target{Anchor: uploadHandler, Index: 1},
			Replacement: enrichedCall,
		},
		&patch.SiteRewrite{
			RuleID:      UploadMessage,
			Text:        "✓ Updated second success message",
			Site:        popupSite,
			Shape:       regexp.MustCompile(`\A` + popupPrefix + plainMessage),
			Target:      patch.Target{Anchor: uploadHandler, Index: 1},
			Replacement: uploadMessage,
		},
	}
}

// IDs returns every rule ID in application order
func IDs() []string {
	rules := Rules()
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID())
	}
	return ids
}
