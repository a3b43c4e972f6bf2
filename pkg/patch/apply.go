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

package patch

import (
	"context"

	"github.com/rs/zerolog"
)

// 📊 RuleResult is the outcome of one rule in one run
type RuleResult struct {
	ID      string
	Label   string
	Outcome Outcome
	Stats   Stats
}

// 📦 Result contains the text before and after a run plus every rule's outcome
type Result struct {
	// Original is the text as it was read, never modified
	Original string
	// Modified is the text after the last rule
	Modified string
	// Rules holds one entry per rule, in application order
	Rules []RuleResult
}

// WasModified reports whether any rule changed the text
func (r *Result) WasModified() bool {
	return r.Original != r.Modified
}

// Changes returns the labels of the applied rules, in order
func (r *Result) Changes() []string {
	var changes []string
	for _, rr := range r.Rules {
		if rr.Outcome == Applied {
			changes = append(changes, rr.Label)
		}
	}
	return changes
}

// Count returns how many rules ended with the given outcome
func (r *Result) Count(o Outcome) int {
	n := 0
	for _, rr := range r.Rules {
		if rr.Outcome == o {
			n++
		}
	}
	return n
}

// ⚙️ Options tunes a run
type Options struct {
	// Disabled holds rule IDs that are reported as Disabled and never applied
	Disabled map[string]bool
}

// 🔄 Apply folds rules over text in order. Each rule sees the text
// produced by every rule before it. CRLF text is folded as LF and the
// result is converted back to CRLF.
func Apply(ctx context.Context, text string, rules []Rule, opts Options) *Result {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		Original: text,
		Modified: text,
		Rules:    make([]RuleResult, 0, len(rules)),
	}

	windows := usesCRLF(text)
	current := text
	if windows {
		current = toLF(text)
	}

	applied := false
	for _, rule := range rules {
		rr := RuleResult{
			ID:    rule.ID(),
			Label: rule.Label(),
		}

		if opts.Disabled[rule.ID()] {
			rr.Outcome = Disabled
		} else if next, ok := rule.Apply(current); ok {
			rr.Outcome = Applied
			rr.Stats = Measure(current, next)
			current = next
			applied = true
		} else {
			rr.Outcome = Skipped
		}

		logger.Debug().
			Str("rule", rr.ID).
			Str("outcome", rr.Outcome.String()).
			Int("inserted", rr.Stats.Inserted).
			Int("deleted", rr.Stats.Deleted).
			Msg("rule evaluated")

		result.Rules = append(result.Rules, rr)
	}

	switch {
	case !applied:
		// untouched text keeps its exact bytes, mixed line endings included
	case windows:
		result.Modified = toCRLF(current)
	default:
		result.Modified = current
	}

	return result
}
