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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/patch"
)

// 🎨 Display configuration
const (
	ruleIndent = 2 // spaces to indent rule entries
)

// 📢 UserLogger prints the human readable report and mirrors it to zerolog
type UserLogger struct {
	log     zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 NewUserLogger creates a user logger writing to console.
// A nil console means stdout.
func NewUserLogger(ctx context.Context, console io.Writer) *UserLogger {
	if console == nil {
		console = os.Stdout
	}
	return &UserLogger{
		log:     *zerolog.Ctx(ctx),
		console: console,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.console)
}

// 📝 Header prints the banner shown before any work starts
func (u *UserLogger) Header(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.printer(pterm.Info, "🔧").Println(msg)
	u.log.Info().Msg(msg)
}

// 📝 formatRule formats one rule outcome for display
func formatRule(rr patch.RuleResult, dryRun bool) string {
	label := strings.TrimPrefix(rr.Label, "✓ ")

	var line string
	switch {
	case rr.Outcome == patch.Applied && dryRun:
		line = fmt.Sprintf("%s %s %s", color.New(color.FgYellow).Sprint("•"), label, color.New(color.Faint).Sprint("(pending)"))
	case rr.Outcome == patch.Applied:
		line = fmt.Sprintf("%s %s", color.New(color.FgGreen).Sprint("✓"), label)
	case rr.Outcome == patch.Disabled:
		line = fmt.Sprintf("%s %s %s", color.New(color.FgBlue).Sprint("⏸"), label, color.New(color.Faint).Sprint("(disabled)"))
	default:
		line = fmt.Sprintf("%s %s %s", color.New(color.FgHiBlack).Sprint("○"), label, color.New(color.Faint).Sprint("("+rr.Outcome.String()+")"))
	}

	return strings.Repeat(" ", ruleIndent) + line
}

// 📝 LogRules prints one line per rule. dryRun marks applied rules as pending.
func (u *UserLogger) LogRules(result *patch.Result, dryRun bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, rr := range result.Rules {
		fmt.Fprintln(u.console, formatRule(rr, dryRun))
		u.log.Info().
			Str("rule", rr.ID).
			Str("outcome", rr.Outcome.String()).
			Bool("dry_run", dryRun).
			Int("inserted", rr.Stats.Inserted).
			Int("deleted", rr.Stats.Deleted).
			Msg("rule outcome")
	}
}

// 📊 LogSummary prints the result of an apply run
func (u *UserLogger) LogSummary(path string, result *patch.Result, written bool) {
	if written {
		u.mu.Lock()
		u.printer(pterm.Success, "✅").Println("Changes applied successfully!")
		u.mu.Unlock()
	}

	u.LogRules(result, false)

	u.mu.Lock()
	defer u.mu.Unlock()

	if !written {
		msg := "No changes were made. File might already be updated."
		u.printer(pterm.Warning, "⚠️").Println(msg)
		u.log.Info().Str("path", path).Msg(msg)
		return
	}

	fmt.Fprintf(u.console, "\n📝 Total changes: %d\n", result.Count(patch.Applied))
	u.log.Info().Str("path", path).Int("changes", result.Count(patch.Applied)).Msg("changes applied")
}

// 🔍 LogStatus prints the result of a dry run
func (u *UserLogger) LogStatus(path string, result *patch.Result) {
	u.LogRules(result, true)

	u.mu.Lock()
	defer u.mu.Unlock()

	pending := result.Count(patch.Applied)
	if pending == 0 {
		u.printer(pterm.Success, "✅").Printfln("%s needs no changes", path)
	} else {
		u.printer(pterm.Info, "📦").Printfln("%d of %d changes pending for %s", pending, len(result.Rules), path)
	}
	u.log.Info().Str("path", path).Int("pending", pending).Msg("status checked")
}

// 🖍️ LogDiff prints a unified diff with added and removed lines coloured
func (u *UserLogger) LogDiff(diff string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(u.console, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(u.console, color.New(color.FgCyan).Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(u.console, color.New(color.FgGreen).Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(u.console, color.New(color.FgRed).Sprint(line))
		default:
			fmt.Fprint(u.console, line)
		}
	}
}

// 📝 Done prints the closing line
func (u *UserLogger) Done(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.console, "\n✨ %s\n", msg)
	u.log.Info().Msg(msg)
}

// ❌ LogFailure prints an error together with the manual fallback hint
func (u *UserLogger) LogFailure(err error, fallback string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.printer(pterm.Error, "❌").Printfln("Error: %v", err)
	if fallback != "" {
		fmt.Fprintf(u.console, "Please apply changes manually using %s\n", fallback)
	}
	u.log.Error().Err(err).Str("fallback", fallback).Msg("patch failed")
}
