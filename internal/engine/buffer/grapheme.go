package buffer

import "github.com/rivo/uniseg"

// NextGraphemeColumn returns the column just past the grapheme cluster
// that starts at col. Columns at or beyond the end of line return len(line).
func NextGraphemeColumn(line string, col int) int {
	if col < 0 {
		return 0
	}
	if col >= len(line) {
		return len(line)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(line[col:], -1)
	return col + len(cluster)
}

// PrevGraphemeColumn returns the start column of the grapheme cluster
// that ends at col. Column 0 returns 0.
func PrevGraphemeColumn(line string, col int) int {
	if col <= 0 {
		return 0
	}
	if col > len(line) {
		col = len(line)
	}
	prev := 0
	g := uniseg.NewGraphemes(line[:col])
	for g.Next() {
		prev, _ = g.Positions()
	}
	return prev
}
