package cursor

import "sort"

// CursorSet holds one selection per cursor. Index 0 is the primary
// selection. The set is never empty.
type CursorSet struct {
	selections []Selection
}

// NewCursorSetAt returns a set with one cursor at offset.
func NewCursorSetAt(offset ByteOffset) *CursorSet {
	return &CursorSet{selections: []Selection{NewCursorSelection(offset)}}
}

func (cs *CursorSet) Primary() Selection {
	return cs.selections[0]
}

// All returns a copy of the selections.
func (cs *CursorSet) All() []Selection {
	return append([]Selection(nil), cs.selections...)
}

func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// Get returns selection i, or the zero selection when i is out of range.
func (cs *CursorSet) Get(i int) Selection {
	if i < 0 || i >= len(cs.selections) {
		return Selection{}
	}
	return cs.selections[i]
}

// Replace overwrites selection i without normalizing.
func (cs *CursorSet) Replace(i int, sel Selection) {
	if i >= 0 && i < len(cs.selections) {
		cs.selections[i] = sel
	}
}

// SetAll replaces the selections and normalizes them. An empty slice
// leaves one cursor at offset 0.
func (cs *CursorSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		cs.selections = []Selection{NewCursorSelection(0)}
		return
	}
	cs.selections = append([]Selection(nil), sels...)
	cs.Normalize()
}

// Clear drops every selection but the primary.
func (cs *CursorSet) Clear() {
	cs.selections = cs.selections[:1]
}

// Normalize sorts by start and merges overlaps. Cursors at the same
// offset collapse into one; selections that only touch stay apart.
func (cs *CursorSet) Normalize() {
	if len(cs.selections) < 2 {
		return
	}
	sort.SliceStable(cs.selections, func(i, j int) bool {
		a, b := cs.selections[i], cs.selections[j]
		if a.Start() != b.Start() {
			return a.Start() < b.Start()
		}
		return a.End() > b.End()
	})
	out := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &out[len(out)-1]
		if sel.Start() < last.End() || sel.Start() == last.Start() {
			*last = last.merge(sel)
			continue
		}
		out = append(out, sel)
	}
	cs.selections = out
}
