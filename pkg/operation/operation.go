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

package operation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/ungngoctri2003/hoi-thao-FE/pkg/config"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/patch"
)

// 📁 FileStore is the file access the operator needs
type FileStore interface {
	// Resolve turns a configured target (path or glob) into one file path
	Resolve(ctx context.Context, target string) (string, error)
	// ReadFile reads the whole file
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFileAtomic replaces the file content
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	// BackupFile copies the file next to itself before it is replaced
	BackupFile(ctx context.Context, path string) error
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the checkoutpatch configuration
	Config *config.Config
	// Store reads and writes the target file
	Store FileStore
	// Rules are applied in order
	Rules []patch.Rule
}

// 📋 Report describes one run against the target file
type Report struct {
	Path    string
	Result  *patch.Result
	Written bool
}

// 🎮 Operator applies the rule set to the configured target
type Operator struct {
	config *config.Config
	store  FileStore
	rules  []patch.Rule
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if len(opts.Rules) == 0 {
		return nil, errors.Errorf("rules are required")
	}
	if err := patch.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	known := make(map[string]bool, len(opts.Rules))
	ids := make([]string, 0, len(opts.Rules))
	for _, r := range opts.Rules {
		known[r.ID()] = true
		ids = append(ids, r.ID())
	}
	for _, id := range opts.Config.Skip {
		if !known[id] {
			return nil, errors.Errorf("unknown rule %q in skip list (known: %s)", id, strings.Join(ids, ", "))
		}
	}

	return &Operator{
		config: opts.Config,
		store:  opts.Store,
		rules:  opts.Rules,
	}, nil
}

// 🔍 run resolves and reads the target, then folds the rules over it
func (o *Operator) run(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	path, err := o.store.Resolve(ctx, o.config.Target)
	if err != nil {
		return nil, errors.Errorf("resolving target: %w", err)
	}

	data, err := o.store.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading target: %w", err)
	}

	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("loaded target")

	result := patch.Apply(ctx, string(data), o.rules, patch.Options{Disabled: o.config.SkipSet()})

	return &Report{Path: path, Result: result}, nil
}

// 📝 Apply patches the target and writes it back only when something changed
func (o *Operator) Apply(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	report, err := o.run(ctx)
	if err != nil {
		return nil, err
	}

	if !report.Result.WasModified() {
		logger.Info().Str("path", report.Path).Msg("target unchanged, not writing")
		return report, nil
	}

	if o.config.Backup {
		if err := o.store.BackupFile(ctx, report.Path); err != nil {
			return nil, errors.Errorf("backing up target: %w", err)
		}
	}

	if err := o.store.WriteFileAtomic(ctx, report.Path, []byte(report.Result.Modified)); err != nil {
		return nil, errors.Errorf("saving target: %w", err)
	}
	report.Written = true

	logger.Info().
		Str("path", report.Path).
		Strs("changes", report.Result.Changes()).
		Msg("target patched")

	return report, nil
}
