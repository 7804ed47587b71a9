package usecase

import (
	"fmt"

	"github.com/greasemeter/place-index/internal/domain"
)

// Declutter collapses a raw place set onto a gridSize×gridSize grid laid
// over the viewport's bounding box and keeps one representative marker per
// occupied cell: the highest-rated place, first seen winning ties. The
// representative keeps its own id; when a cell folded more than one place,
// the marker name gets a " (+N)" suffix for the N hidden siblings.
//
// Pure function of its inputs: no network, no index state. The result
// carries at most gridSize² markers regardless of input size. Places
// outside the box are clamped to the border cells so every input place
// lands in exactly one cell.
func Declutter(places []domain.Place, vp domain.Viewport, gridSize int, minSpan float64) []domain.Marker {
	if len(places) == 0 || gridSize <= 0 {
		return []domain.Marker{}
	}

	minLat, minLon, latSpan, lonSpan := vp.Bounds(minSpan)
	cellLat := latSpan / float64(gridSize)
	cellLon := lonSpan / float64(gridSize)

	type cell struct {
		best  domain.Place
		count int
	}
	cells := make(map[int]*cell)

	for _, p := range places {
		row := clampCell(int((p.Latitude-minLat)/cellLat), gridSize)
		col := clampCell(int((p.Longitude-minLon)/cellLon), gridSize)
		key := row*gridSize + col

		c, ok := cells[key]
		if !ok {
			cells[key] = &cell{best: p, count: 1}
			continue
		}
		c.count++
		if p.Rating > c.best.Rating {
			c.best = p
		}
	}

	// Emit in row-major cell order so identical inputs give identical output.
	markers := make([]domain.Marker, 0, len(cells))
	for key := 0; key < gridSize*gridSize; key++ {
		c, ok := cells[key]
		if !ok {
			continue
		}
		m := domain.Marker{Place: c.best}
		if c.count > 1 {
			m.Collapsed = c.count - 1
			m.Name = fmt.Sprintf("%s (+%d)", c.best.Name, c.count-1)
		}
		markers = append(markers, m)
	}

	return markers
}

func clampCell(idx, gridSize int) int {
	if idx < 0 {
		return 0
	}
	if idx >= gridSize {
		return gridSize - 1
	}
	return idx
}
