package ansi

import "github.com/clipperhouse/uax29/v2/graphemes"

// DisplayWidth counts the grapheme clusters in a SegmentedString's text
// content, skipping every control/escape/subnegotiation segment. This is
// not a full East-Asian-width-aware column count - combining marks and
// multi-rune emoji sequences count once each, but a double-width CJK
// character still counts as one - it is the stateless, non-goal-respecting
// middle ground between len(Stripped()) and a real terminal emulator's
// cursor math.
func (s SegmentedString) DisplayWidth() int {
	n := 0
	for _, seg := range s.Segments {
		if seg.Kind != SegmentASCII && seg.Kind != SegmentUnicode {
			continue
		}
		n += graphemeCount(seg.Text)
	}
	return n
}

func graphemeCount(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	iter := graphemes.FromString(s)
	for iter.Next() {
		n++
	}
	return n
}
