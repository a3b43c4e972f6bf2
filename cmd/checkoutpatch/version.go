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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const shortRevisionLen = 12

// buildVersion reads the module version and VCS revision stamped into the binary
func buildVersion() (version, revision string) {
	version = "dev"
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, ""
	}
	if v := buildInfo.Main.Version; v != "" && v != "(devel)" {
		version = v
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" {
			revision = setting.Value
		}
	}
	if len(revision) > shortRevisionLen {
		revision = revision[:shortRevisionLen]
	}
	return version, revision
}

// formatVersion renders the one line printed by the version command
func formatVersion(version, revision string, rules int) string {
	if revision != "" {
		version += " (" + revision + ")"
	}
	return fmt.Sprintf("checkoutpatch %s, %d rules, %s\n", version, rules, runtime.Version())
}

// newVersionCmd prints the build and the size of the rule set
func newVersionCmd(rules int) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			version, revision := buildVersion()
			fmt.Fprint(cmd.OutOrStdout(), formatVersion(version, revision, rules))
			return nil
		},
	}
}
