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

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// DefaultPath is the config file picked up when no --config flag is given
const DefaultPath = ".checkoutpatch.yaml"

// DefaultTarget is the file patched when the config does not name one
const DefaultTarget = "app/checkin-public/page.tsx"

// 📚 Config represents the complete configuration
type Config struct {
	// Target is the file to patch, or a glob matching exactly one file
	Target string `json:"target,omitempty" yaml:"target,omitempty" hcl:"target,optional"`
	// Backup writes <target>.bak before the target is overwritten
	Backup bool `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional"`
	// Skip lists rule IDs that must not be applied
	Skip []string `json:"skip,omitempty" yaml:"skip,omitempty" hcl:"skip,optional"`

	location string
}

// 🏭 Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Target: DefaultTarget,
	}
}

// Location is the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}
	cfg.Target = strings.TrimSpace(cfg.Target)
	if cfg.Target == "" {
		return errors.Errorf("target is required")
	}
	if !strings.ContainsAny(cfg.Target, "*?[{") {
		cfg.Target = filepath.Clean(cfg.Target)
	}

	seen := make(map[string]bool, len(cfg.Skip))
	for i, id := range cfg.Skip {
		if strings.TrimSpace(id) == "" {
			return errors.Errorf("skip[%d]: rule id is empty", i)
		}
		if seen[id] {
			return errors.Errorf("skip[%d]: rule %q listed twice", i, id)
		}
		seen[id] = true
	}

	return nil
}

// AddSkip appends rule IDs to Skip, leaving out the ones already listed
func (cfg *Config) AddSkip(ids ...string) {
	seen := cfg.SkipSet()
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		cfg.Skip = append(cfg.Skip, id)
	}
}

// SkipSet returns Skip as a set
func (cfg *Config) SkipSet() map[string]bool {
	set := make(map[string]bool, len(cfg.Skip))
	for _, id := range cfg.Skip {
		set[id] = true
	}
	return set
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	s := cfg.Target
	if cfg.Backup {
		s += " (backup)"
	}
	if len(cfg.Skip) > 0 {
		s += fmt.Sprintf(" skip=%s", strings.Join(cfg.Skip, ","))
	}
	return s
}
