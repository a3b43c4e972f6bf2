package patch

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// 📏 Stats counts the runes a rule inserted and deleted
type Stats struct {
	Inserted int
	Deleted  int
}

// Measure computes the character level edit between two versions of a text
func Measure(before, after string) Stats {
	var s Stats
	if before == after {
		return s
	}

	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(before, after, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			s.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return s
}
