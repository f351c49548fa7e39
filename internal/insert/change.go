package insert

import "github.com/dshills/dotrepeat/internal/engine/buffer"

// ChangeRecord is the net delta of one insert session: OldExtent of text
// starting at Start was replaced by NewText.
type ChangeRecord struct {
	Start     Point
	OldExtent Extent
	NewExtent Extent
	NewText   string
}

func newChangeRecord(c buffer.Change) *ChangeRecord {
	return &ChangeRecord{
		Start:     c.Start,
		OldExtent: c.OldExtent,
		NewExtent: buffer.ExtentOf(c.NewText),
		NewText:   c.NewText,
	}
}

// End returns the position just past the new text.
func (c *ChangeRecord) End() Point {
	return c.Start.Traverse(c.NewExtent)
}

func (c *ChangeRecord) clone() *ChangeRecord {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
