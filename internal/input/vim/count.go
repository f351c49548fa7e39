package vim

import "math"

// count accumulates a typed count prefix. A leading 0 is a motion in Vim,
// not a count, so it is refused.
type count struct {
	n     int
	typed bool
}

func (c *count) reset() { *c = count{} }

func (c *count) digit(r rune) bool {
	if r < '0' || r > '9' || (!c.typed && r == '0') {
		return false
	}
	c.typed = true
	d := int(r - '0')
	if c.n > (math.MaxInt-d)/10 {
		c.n = math.MaxInt / 10
		return true
	}
	c.n = c.n*10 + d
	return true
}

// multiply combines the counts typed before and after an operator, as in
// "2c3l". Untyped counts act as 1.
func multiply(a, b int) int {
	a, b = max(a, 1), max(b, 1)
	if a > math.MaxInt/b {
		return math.MaxInt / 10
	}
	return a * b
}
