package buffer

// Marker tracks a position through subsequent edits. Text inserted exactly
// at the marker pushes it forward.
type Marker struct {
	buf       *Buffer
	offset    ByteOffset
	destroyed bool
}

// MarkPosition creates a marker at the given point, clipped to the buffer.
func (b *Buffer) MarkPosition(p Point) *Marker {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := &Marker{buf: b, offset: b.offsetAt(p)}
	b.markers[m] = struct{}{}
	return m
}

// Head returns the marker's current position.
// A destroyed marker reports the position it had when destroyed.
func (m *Marker) Head() Point {
	m.buf.mu.RLock()
	defer m.buf.mu.RUnlock()
	return m.buf.pointAt(m.offset)
}

// Destroy stops tracking the marker. Calling it again does nothing.
func (m *Marker) Destroy() {
	m.buf.mu.Lock()
	defer m.buf.mu.Unlock()
	if m.destroyed {
		return
	}
	m.destroyed = true
	delete(m.buf.markers, m)
}

// IsDestroyed reports whether Destroy has been called.
func (m *Marker) IsDestroyed() bool {
	m.buf.mu.RLock()
	defer m.buf.mu.RUnlock()
	return m.destroyed
}

// MarkerCount returns the number of live markers.
func (b *Buffer) MarkerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.markers)
}
