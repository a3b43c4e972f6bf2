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
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/ungngoctri2003/hoi-thao-FE/pkg/patch"
)

// Status is a local operation reporting which rules would apply. It never writes.
func (o *Operator) Status(ctx context.Context) (*Report, error) {
	report, err := o.run(ctx)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", report.Path).
		Int("pending", report.Result.Count(patch.Applied)).
		Msg("status computed")

	return report, nil
}

// Diff writes the unified diff Apply would produce to w. It never writes the target.
func (o *Operator) Diff(ctx context.Context, w io.Writer) (*Report, error) {
	report, err := o.run(ctx)
	if err != nil {
		return nil, err
	}

	if err := patch.UnifiedDiff(w, filepath.ToSlash(report.Path), report.Result.Original, report.Result.Modified); err != nil {
		return nil, errors.Errorf("writing diff: %w", err)
	}

	return report, nil
}
