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
)

// 📍 Target picks one site out of every site a SiteRewrite found.
type Target struct {
	// Anchor selects the first site that starts after its first match.
	// When the anchor is absent from the text, Index is used instead.
	Anchor *regexp.Regexp
	// Index is the zero-based occurrence index of the site.
	Index int
}

// pick returns the index into sites, or -1 when there is no target.
func (t Target) pick(text string, sites [][]int) int {
	if t.Anchor != nil {
		if loc := t.Anchor.FindStringIndex(text); loc != nil {
			for i, site := range sites {
				if site[0] >= loc[1] {
					return i
				}
			}
			return -1
		}
	}
	if t.Index < 0 || t.Index >= len(sites) {
		return -1
	}
	return t.Index
}

// 🧭 SiteRewrite rewrites one occurrence of a marker selected by Target.
//
// Sites are counted whether or not an earlier rule already rewrote them,
// so "the second call" stays the second call after the first one changed.
// The chosen site is only rewritten when Shape (anchored with \A) still
// matches at its start. The matched shape is replaced by Build(match) when
// Build is set and by Replacement otherwise.
type SiteRewrite struct {
	RuleID      string
	Text        string
	Site        *regexp.Regexp
	Shape       *regexp.Regexp
	Target      Target
	Replacement string
	Build       func(m Match) string
}

func (r *SiteRewrite) ID() string    { return r.RuleID }
func (r *SiteRewrite) Label() string { return r.Text }

// Apply implements Rule.Apply
func (r *SiteRewrite) Apply(text string) (string, bool) {
	sites := r.Site.FindAllStringIndex(text, -1)
	i := r.Target.pick(text, sites)
	if i < 0 {
		return text, false
	}

	start := sites[i][0]
	rest := text[start:]
	loc := r.Shape.FindStringSubmatchIndex(rest)
	if loc == nil || loc[0] != 0 {
		return text, false
	}

	replacement := r.Replacement
	if r.Build != nil {
		replacement = r.Build(Match{text: rest, loc: loc})
	}

	end := start + loc[1]
	if text[start:end] == replacement {
		return text, false
	}

	return text[:start] + replacement + text[end:], true
}
