// Package redseq provides the red-sequence model library: per color
// combination, a set of models on a redshift grid, each exposing a
// characteristic magnitude and the sequence color as a function of
// magnitude.
package redseq

// Model describes the red sequence at one redshift for one color
// combination. The sequence is a shallow line in color-magnitude space,
// anchored at the characteristic magnitude.
type Model struct {
	Redshift float64
	MagPoint float64 // characteristic magnitude
	Color    float64 // sequence color at MagPoint
	Slope    float64 // d(color)/d(magnitude)
}

// ColorAtMagnitude returns the sequence color at the given magnitude.
func (m *Model) ColorAtMagnitude(mag float64) float64 {
	return m.Color + m.Slope*(mag-m.MagPoint)
}
