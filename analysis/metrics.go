package analysis

import "sort"

// emptyBrightness stands in for the average brightness of a canvas with no ink.
const emptyBrightness = 128

type Metrics struct {
	FillRatio      float64  `json:"fillRatio"`
	AvgBrightness  float64  `json:"avgBrightness"`
	DominantColors []string `json:"dominantColors"`
	Blobs          []Blob   `json:"-"`
}

func (m Metrics) BlobCount() int {
	return len(m.Blobs)
}

func (m Metrics) HasDominantColor(name string) bool {
	for _, c := range m.DominantColors {
		if c == name {
			return true
		}
	}
	return false
}

type colorCount struct {
	name  string
	count int
}

// Extract scans the buffer once for coverage, luma and colors of ink pixels,
// then segments it.
func Extract(buf PixelBuffer) Metrics {
	var (
		inked         int
		brightnessSum float64
		histogram     []colorCount
		slot          = make(map[string]int)
	)

	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			r, g, b := buf.RGB(x, y)
			if !IsInk(r, g, b) {
				continue
			}
			inked++
			brightnessSum += 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)

			name := Classify(r, g, b)
			i, ok := slot[name]
			if !ok {
				i = len(histogram)
				slot[name] = i
				histogram = append(histogram, colorCount{name: name})
			}
			histogram[i].count++
		}
	}

	m := Metrics{AvgBrightness: emptyBrightness, DominantColors: []string{}}
	if total := buf.Len(); total > 0 {
		m.FillRatio = float64(inked) / float64(total)
	}
	if inked > 0 {
		m.AvgBrightness = brightnessSum / float64(inked)
	}

	sort.SliceStable(histogram, func(i, j int) bool {
		return histogram[i].count > histogram[j].count
	})
	for i := 0; i < len(histogram) && i < 3; i++ {
		m.DominantColors = append(m.DominantColors, histogram[i].name)
	}

	m.Blobs = Segment(buf, IsInk)
	return m
}
