package buffer

import "fmt"

// Range is the half-open byte span [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the width of r in bytes.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// PointRange is the half-open position span [Start, End).
type PointRange struct {
	Start Point
	End   Point
}

// NewPointRange orders start and end so that Start comes first.
func NewPointRange(start, end Point) PointRange {
	if end.Before(start) {
		start, end = end, start
	}
	return PointRange{Start: start, End: end}
}

func (r PointRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

func (r PointRange) IsEmpty() bool {
	return r.Start == r.End
}
