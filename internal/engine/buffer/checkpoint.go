package buffer

import (
	"sort"
	"strings"
)

// CheckpointID identifies a checkpoint created with CreateCheckpoint.
type CheckpointID uint64

// hunk is one contiguous region that differs from the checkpoint text.
// start is an offset into the current text; newText is what currently
// occupies [start, start+len(newText)).
type hunk struct {
	start   int
	oldText string
	newText string
}

func (h hunk) end() int {
	return h.start + len(h.newText)
}

// patch composes every edit applied after a checkpoint into a sorted list
// of disjoint hunks. Hunks touched by an edit are merged with it.
type patch struct {
	hunks []hunk
}

// record folds the replacement of before[start:end] by text into the patch.
func (p *patch) record(before string, start, end int, text string) {
	delta := len(text) - (end - start)

	first, last := -1, -1
	for i, h := range p.hunks {
		if h.start > end {
			break
		}
		if start <= h.end() {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		idx := sort.Search(len(p.hunks), func(i int) bool {
			return p.hunks[i].start > end
		})
		shiftHunks(p.hunks[idx:], delta)
		if before[start:end] == text {
			return
		}
		h := hunk{start: start, oldText: before[start:end], newText: text}
		p.hunks = append(p.hunks, hunk{})
		copy(p.hunks[idx+1:], p.hunks[idx:])
		p.hunks[idx] = h
		return
	}

	lo := min(start, p.hunks[first].start)
	hi := max(end, p.hunks[last].end())

	// Rebuild the checkpoint text of [lo, hi): untouched gaps are unchanged,
	// hunks contribute their recorded old text.
	var old strings.Builder
	pos := lo
	for i := first; i <= last; i++ {
		h := p.hunks[i]
		old.WriteString(before[pos:h.start])
		old.WriteString(h.oldText)
		pos = h.end()
	}
	old.WriteString(before[pos:hi])

	merged := hunk{
		start:   lo,
		oldText: old.String(),
		newText: before[lo:start] + text + before[end:hi],
	}

	rest := append([]hunk(nil), p.hunks[last+1:]...)
	shiftHunks(rest, delta)

	hunks := append(p.hunks[:first:first], merged)
	if merged.oldText == merged.newText {
		hunks = hunks[:first]
	}
	p.hunks = append(hunks, rest...)
}

func shiftHunks(hunks []hunk, delta int) {
	for i := range hunks {
		hunks[i].start += delta
	}
}

// CreateCheckpoint starts recording edits and returns a handle for them.
func (b *Buffer) CreateCheckpoint() CheckpointID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextCheckID++
	b.checkpoints[b.nextCheckID] = &patch{}
	return b.nextCheckID
}

// ChangesSinceCheckpoint returns the net changes made since the checkpoint
// was created, ordered by position. Regions that were edited back to their
// original text are omitted.
func (b *Buffer) ChangesSinceCheckpoint(id CheckpointID) ([]Change, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, ok := b.checkpoints[id]
	if !ok {
		return nil, ErrCheckpointNotFound
	}

	changes := make([]Change, 0, len(p.hunks))
	for _, h := range p.hunks {
		changes = append(changes, Change{
			Start:     b.pointAt(ByteOffset(h.start)),
			OldExtent: ExtentOf(h.oldText),
			NewExtent: ExtentOf(h.newText),
			OldText:   h.oldText,
			NewText:   h.newText,
		})
	}
	return changes, nil
}

// RemoveCheckpoint stops recording for the checkpoint.
// Removing an unknown checkpoint is a no-op.
func (b *Buffer) RemoveCheckpoint(id CheckpointID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.checkpoints, id)
}

// HasCheckpoint reports whether the checkpoint is still recording.
func (b *Buffer) HasCheckpoint(id CheckpointID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.checkpoints[id]
	return ok
}

// CheckpointCount returns the number of open checkpoints.
func (b *Buffer) CheckpointCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.checkpoints)
}
