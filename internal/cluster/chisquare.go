package cluster

import (
	"github.com/redseq/rsz-go/internal/photometry"
	"github.com/redseq/rsz-go/internal/redseq"
)

// refineRedshift fits the current red-sequence members against every
// model in the table and returns the redshift minimizing the reduced
// chi-squared, with asymmetric 1-sigma errors from the delta-chi-squared
// = 1 crossing. The fitting subset is the sources that are both
// near-center and currently classified as members; if it is empty the
// input redshift is returned unchanged.
func (c *Cluster) refineRedshift(table *redseq.Table, current photometry.AsymmetricValue, color, redBand string) photometry.AsymmetricValue {
	var toFit []*Source
	for _, s := range c.sources {
		if s.NearCenter && s.IsMember(color) {
			toFit = append(toFit, s)
		}
	}
	if len(toFit) == 0 {
		return current
	}

	zs := table.Redshifts()
	chis := make([]float64, len(zs))
	for i, z := range zs {
		model := table.At(z)
		sum := 0.0
		for _, s := range toFit {
			modelColor := model.ColorAtMagnitude(s.Mags[redBand].Value)
			obs := s.Colors[color]
			d := (modelColor - obs.Value) / obs.Error
			sum += d * d
		}
		chis[i] = sum / float64(len(toFit))
	}

	best := minIndex(chis)
	lo, hi := errorBounds(chis, best)

	return photometry.AsymmetricValue{
		Value:      zs[best],
		UpperError: zs[hi] - zs[best],
		LowerError: zs[best] - zs[lo],
	}
}

// minIndex returns the index of the smallest value; the first occurrence
// wins on ties.
func minIndex(xs []float64) int {
	best := 0
	for i, v := range xs {
		if v < xs[best] {
			best = i
		}
	}
	return best
}

// errorBounds scans outward from the minimum in each direction while the
// chi-squared stays within 1.0 of the minimum, and returns the stopping
// indices. The scan stops at the first point where the increase reaches
// 1.0, and never runs past the ends of the grid.
func errorBounds(chis []float64, best int) (lo, hi int) {
	hi = best
	for hi < len(chis)-1 && chis[hi]-chis[best] < 1.0 {
		hi++
	}
	lo = best
	for lo > 0 && chis[lo]-chis[best] < 1.0 {
		lo--
	}
	return lo, hi
}
