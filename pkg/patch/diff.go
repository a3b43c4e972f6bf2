package patch

import (
	"io"

	"github.com/pkg/diff"
	"gitlab.com/tozd/go/errors"
)

// UnifiedDiff writes a unified diff between before and after to w.
// Nothing is written when the texts are equal.
func UnifiedDiff(w io.Writer, name, before, after string) error {
	if before == after {
		return nil
	}
	if err := diff.Text("a/"+name, "b/"+name, before, after, w); err != nil {
		return errors.Errorf("rendering diff: %w", err)
	}
	return nil
}
