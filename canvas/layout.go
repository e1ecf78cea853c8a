package canvas

import (
	"fmt"
	"image"
	"math"
	"strings"
)

const emptyCell = "."

// Layout describes a CSS grid: one track per column and row, and the
// grid-template-areas rows.
type Layout struct {
	Columns []string `json:"columns"`
	Rows    []string `json:"rows"`
	Areas   []string `json:"areas"`
}

// Segment is one named area of the shared canvas and the player drawing it.
type Segment struct {
	SegmentIndex int     `json:"segmentIndex"`
	Area         string  `json:"area"`
	PlayerID     *string `json:"playerId"`
}

var templates = map[int][]string{
	1: {"a"},
	2: {"a b"},
	3: {"a b", "c c"},
	4: {"a b", "c d"},
	5: {"a b c", "d e ."},
	6: {"a b c", "d e f"},
}

// ComputeLayout picks the grid for the player count and assigns areas to
// players in order. An empty room still gets a single unassigned area.
func ComputeLayout(playerIDs []string) (Layout, []Segment) {
	n := max(len(playerIDs), 1)
	areaRows, ok := templates[n]
	if !ok {
		areaRows = generatedTemplate(n)
	}

	layout := Layout{
		Columns: tracks(len(strings.Fields(areaRows[0]))),
		Rows:    tracks(len(areaRows)),
		Areas:   areaRows,
	}

	names := layout.Names()
	segments := make([]Segment, len(names))
	for i, name := range names {
		segments[i] = Segment{SegmentIndex: i, Area: name}
		if i < len(playerIDs) {
			id := playerIDs[i]
			segments[i].PlayerID = &id
		}
	}
	return layout, segments
}

func generatedTemplate(n int) []string {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	out := make([]string, rows)
	k := 0
	for r := 0; r < rows; r++ {
		cells := make([]string, cols)
		for c := range cells {
			k++
			if k <= n {
				cells[c] = fmt.Sprintf("p%d", k)
			} else {
				cells[c] = emptyCell
			}
		}
		out[r] = strings.Join(cells, " ")
	}
	return out
}

func tracks(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "1fr"
	}
	return out
}

func (l Layout) cells() [][]string {
	out := make([][]string, len(l.Areas))
	for i, row := range l.Areas {
		out[i] = strings.Fields(row)
	}
	return out
}

// Names returns the distinct named areas in row-major order of first
// appearance.
func (l Layout) Names() []string {
	var names []string
	seen := map[string]bool{}
	for _, row := range l.cells() {
		for _, cell := range row {
			if cell == emptyCell || seen[cell] {
				continue
			}
			seen[cell] = true
			names = append(names, cell)
		}
	}
	return names
}

// Bounds returns the pixel rectangle an area covers when every grid cell is
// cellW by cellH pixels.
func (l Layout) Bounds(area string, cellW, cellH int) (image.Rectangle, bool) {
	found := false
	var minR, minC, maxR, maxC int
	for r, row := range l.cells() {
		for c, cell := range row {
			if cell != area {
				continue
			}
			if !found {
				minR, minC, maxR, maxC = r, c, r, c
				found = true
				continue
			}
			minR, minC = min(minR, r), min(minC, c)
			maxR, maxC = max(maxR, r), max(maxC, c)
		}
	}
	if !found {
		return image.Rectangle{}, false
	}
	return image.Rect(minC*cellW, minR*cellH, (maxC+1)*cellW, (maxR+1)*cellH), true
}

// Size returns the full canvas size in pixels.
func (l Layout) Size(cellW, cellH int) (int, int) {
	return len(l.Columns) * cellW, len(l.Rows) * cellH
}
