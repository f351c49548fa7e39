package cursor

import "github.com/dshills/dotrepeat/internal/engine/buffer"

// TransformSelection maps both ends of sel across edit.
func TransformSelection(sel Selection, edit buffer.Edit) Selection {
	return Selection{
		Anchor: buffer.TransformOffset(sel.Anchor, edit),
		Head:   buffer.TransformOffset(sel.Head, edit),
	}
}

// TransformCursorSet maps every selection except skip across edit; pass
// skip < 0 to map them all. Indices stay stable because the set is not
// normalized.
func TransformCursorSet(cs *CursorSet, edit buffer.Edit, skip int) {
	for i := range cs.selections {
		if i != skip {
			cs.selections[i] = TransformSelection(cs.selections[i], edit)
		}
	}
}
