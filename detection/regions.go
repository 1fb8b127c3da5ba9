package detection

import "go-canopy/raster"

// components enumerates the 4-connected components of cells holding
// the given severity value. The flood fill runs over an explicit
// work queue of flat indices; recursion would risk stack depth on
// large rasters.
func components(sev *raster.SeverityGrid, value uint8) [][]int {
	w := sev.Width
	h := sev.Height
	visited := make([]bool, len(sev.Data))
	var comps [][]int

	for start, v := range sev.Data {
		if v != value || visited[start] {
			continue
		}
		visited[start] = true
		queue := []int{start}
		var cells []int

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			cells = append(cells, idx)

			row := idx / w
			col := idx % w
			if row > 0 {
				push(sev, visited, &queue, idx-w, value)
			}
			if row < h-1 {
				push(sev, visited, &queue, idx+w, value)
			}
			if col > 0 {
				push(sev, visited, &queue, idx-1, value)
			}
			if col < w-1 {
				push(sev, visited, &queue, idx+1, value)
			}
		}
		comps = append(comps, cells)
	}
	return comps
}

func push(sev *raster.SeverityGrid, visited []bool, queue *[]int, idx int, value uint8) {
	if !visited[idx] && sev.Data[idx] == value {
		visited[idx] = true
		*queue = append(*queue, idx)
	}
}

// sieve drops components with strictly fewer pixels than minSize,
// treating them as noise. Component sizes are exact 4-connected
// counts, so L-shaped regions and diagonal neighbors are measured
// correctly.
func sieve(comps [][]int, minSize int) [][]int {
	kept := comps[:0:0]
	for _, c := range comps {
		if len(c) >= minSize {
			kept = append(kept, c)
		}
	}
	return kept
}
