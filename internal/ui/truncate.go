package ui

import "github.com/rivo/uniseg"

// Truncate shortens s to at most width display cells, appending an
// ellipsis when anything was cut. Grapheme clusters are never split.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	budget := width - 1 // reserve a cell for the ellipsis
	var out []byte
	used := 0

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > budget {
			break
		}
		out = append(out, g.Bytes()...)
		used += w
	}
	return string(out) + "…"
}
