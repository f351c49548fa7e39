package insert

// MaxInsertionCount caps counted insertion so a stray count cannot stall
// the editor.
const MaxInsertionCount = 100

// CountPolicy resolves how many extra copies a counted insert produces.
type CountPolicy struct {
	Max int
}

// Resolve returns 0 when counting is unsupported, otherwise requested
// clamped to [0, Max]. Max never exceeds MaxInsertionCount.
func (p CountPolicy) Resolve(supported bool, requested int) int {
	if !supported || requested < 0 {
		return 0
	}
	limit := p.Max
	if limit <= 0 || limit > MaxInsertionCount {
		limit = MaxInsertionCount
	}
	return min(requested, limit)
}

// insertionCount turns a typed count (0 when none) into extra copies.
func (p CountPolicy) insertionCount(supported bool, count int) int {
	return p.Resolve(supported, max(count, 1)-1)
}
