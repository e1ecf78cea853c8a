package analysis

import "image"

// Blob is one 4-connected component of foreground pixels.
type Blob struct {
	Area      int
	Perimeter int
	Pixels    []image.Point
}

// ComplexityRatio is perimeter squared over area; 0 for an empty blob.
func (b Blob) ComplexityRatio() float64 {
	if b.Area == 0 {
		return 0
	}
	p := float64(b.Perimeter)
	return p * p / float64(b.Area)
}

var neighbours = [4]image.Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Segment labels the connected components of the pixels accepted by
// isForeground. Seeds are picked in row-major order, so the output order is
// deterministic for a given buffer. A pixel adds one to its blob's perimeter
// when any 4-neighbour is out of bounds or background.
func Segment(buf PixelBuffer, isForeground func(r, g, b uint8) bool) []Blob {
	n := buf.Len()
	if n == 0 {
		return nil
	}
	w := buf.Width()

	fg := make([]bool, n)
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < w; x++ {
			fg[y*w+x] = isForeground(buf.RGB(x, y))
		}
	}

	visited := make([]bool, n)
	queue := make([]int, 0, 64)
	var blobs []Blob

	for seed := 0; seed < n; seed++ {
		if !fg[seed] || visited[seed] {
			continue
		}
		blob := Blob{}
		visited[seed] = true
		queue = append(queue[:0], seed)

		for head := 0; head < len(queue); head++ {
			idx := queue[head]
			x, y := idx%w, idx/w
			blob.Area++
			blob.Pixels = append(blob.Pixels, image.Point{X: x, Y: y})

			boundary := false
			for _, d := range neighbours {
				nx, ny := x+d.X, y+d.Y
				if !buf.In(nx, ny) {
					boundary = true
					continue
				}
				nidx := ny*w + nx
				if !fg[nidx] {
					boundary = true
					continue
				}
				if !visited[nidx] {
					visited[nidx] = true
					queue = append(queue, nidx)
				}
			}
			if boundary {
				blob.Perimeter++
			}
		}
		blobs = append(blobs, blob)
	}
	return blobs
}

// Largest returns the blob with the greatest area; the first one wins ties.
func Largest(blobs []Blob) (Blob, bool) {
	if len(blobs) == 0 {
		return Blob{}, false
	}
	best := blobs[0]
	for _, b := range blobs[1:] {
		if b.Area > best.Area {
			best = b
		}
	}
	return best, true
}
