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
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Outcome is what a single rule did during a run
type Outcome int

const (
	// Skipped means the rule's pattern did not match the current text
	Skipped Outcome = iota
	// Applied means the rule matched and rewrote the text
	Applied
	// Disabled means the rule was turned off by configuration
	Disabled
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Disabled:
		return "disabled"
	default:
		return "skipped: no match"
	}
}

// 🔌 Rule is one find/replace step.
// Apply must not depend on anything but its input: it returns the rewritten
// text and true, or the input unchanged and false.
type Rule interface {
	// ID is a short stable identifier, used by configuration
	ID() string
	// Label is the human readable change log entry
	Label() string
	// Apply rewrites at most one location of text
	Apply(text string) (string, bool)
}

// 🔍 Match gives a Substitution's builder access to the captured groups
type Match struct {
	text string
	loc  []int
}

// Group returns the i-th capture group, or "" when it did not participate.
func (m Match) Group(i int) string {
	if 2*i+1 >= len(m.loc) || m.loc[2*i] < 0 {
		return ""
	}
	return m.text[m.loc[2*i]:m.loc[2*i+1]]
}

// 🔄 Substitution replaces the first match of Pattern with Build(match).
//
// Replacement text is assembled by Build instead of a regexp template:
// the patched sources are full of `${...}` interpolations that
// regexp.Expand would treat as group references.
type Substitution struct {
	RuleID  string
	Text    string
	Pattern *regexp.Regexp
	Build   func(m Match) string
}

func (s *Substitution) ID() string    { return s.RuleID }
func (s *Substitution) Label() string { return s.Text }

// Apply implements Rule.Apply
func (s *Substitution) Apply(text string) (string, bool) {
	loc := s.Pattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, false
	}

	replacement := s.Build(Match{text: text, loc: loc})
	if replacement == text[loc[0]:loc[1]] {
		return text, false
	}

	return text[:loc[0]] + replacement + text[loc[1]:], true
}

// 🔍 ValidateRules checks that a rule list can be applied
func ValidateRules(rules []Rule) error {
	seen := make(map[string]bool, len(rules))
	for i, rule := range rules {
		if rule == nil {
			return errors.Errorf("rule %d: rule is nil", i)
		}
		id := rule.ID()
		if id == "" {
			return errors.Errorf("rule %d: id is required", i)
		}
		if seen[id] {
			return errors.Errorf("rule %d: duplicate id %q", i, id)
		}
		seen[id] = true

		switch r := rule.(type) {
		case *Substitution:
			if r.Pattern == nil {
				return errors.Errorf("rule %q: pattern is required", id)
			}
			if r.Build == nil {
				return errors.Errorf("rule %q: build is required", id)
			}
		case *SiteRewrite:
			if r.Site == nil || r.Shape == nil {
				return errors.Errorf("rule %q: site and shape are required", id)
			}
			if r.Build == nil && r.Replacement == "" {
				return errors.Errorf("rule %q: replacement is required", id)
			}
		}
	}
	return nil
}
