package redseq

import (
	"math"
	"sort"
)

// Table holds the models for one color combination on a fixed redshift
// grid. Lookups are exact-key: the grid values handed out by Redshifts
// are the same float64 values used as map keys, so callers can iterate
// and look up without rounding concerns.
type Table struct {
	color  string
	zs     []float64
	models map[float64]*Model
}

// NewTable builds a table from models, sorting them by redshift.
func NewTable(color string, models []*Model) *Table {
	sorted := make([]*Model, len(models))
	copy(sorted, models)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Redshift < sorted[j].Redshift
	})

	t := &Table{
		color:  color,
		zs:     make([]float64, 0, len(sorted)),
		models: make(map[float64]*Model, len(sorted)),
	}
	for _, m := range sorted {
		t.zs = append(t.zs, m.Redshift)
		t.models[m.Redshift] = m
	}
	return t
}

// Color returns the color combination this table was built for.
func (t *Table) Color() string {
	return t.color
}

// Redshifts returns the grid in ascending order. The slice is shared;
// callers must not modify it.
func (t *Table) Redshifts() []float64 {
	return t.zs
}

// At returns the model at an exact grid redshift, or nil if z is not a
// grid value.
func (t *Table) At(z float64) *Model {
	return t.models[z]
}

// Nearest returns the model at the grid redshift closest to z. The
// table must not be empty.
func (t *Table) Nearest(z float64) *Model {
	idx := sort.SearchFloat64s(t.zs, z)
	if idx == len(t.zs) {
		return t.models[t.zs[len(t.zs)-1]]
	}
	if idx > 0 && z-t.zs[idx-1] < t.zs[idx]-z {
		idx--
	}
	return t.models[t.zs[idx]]
}

// Len returns the number of grid points.
func (t *Table) Len() int {
	return len(t.zs)
}

// roundZ snaps a grid redshift to three decimals so that regenerated
// grids always produce identical float64 keys.
func roundZ(z float64) float64 {
	return math.Round(z*1000) / 1000
}
