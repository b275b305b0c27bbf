package cluster

import (
	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/photometry"
	"github.com/redseq/rsz-go/internal/redseq"
)

// initialRedshift makes a coarse redshift estimate by counting, at every
// grid redshift, the near-center sources that sit close to the model in
// color-magnitude space. The redshift with the most nearby sources wins;
// on ties the lowest redshift is kept since later counts must strictly
// exceed the running maximum. The errors span the full grid range on
// each side: the estimate is deliberately uninformative until refined.
//
// The ordered count sequence also feeds the double-red-sequence
// detector, which may set FlagDoubleSequence.
func (c *Cluster) initialRedshift(table *redseq.Table, fit *conf.FitSettings) photometry.AsymmetricValue {
	zs := table.Redshifts()

	maxNearby := -1
	bestZ := zs[0]
	counts := make([]int, 0, len(zs))

	for _, z := range zs {
		model := table.At(z)
		nearby := 0

		brightMag := model.MagPoint - fit.InitialMag[0]
		faintMag := model.MagPoint + fit.InitialMag[1]

		for _, s := range c.sources {
			if !s.NearCenter {
				continue
			}
			mag := s.Mags[fit.RedBand].Value
			col := s.Colors[fit.Color].Value

			rsColor := model.ColorAtMagnitude(mag)
			blueColor := rsColor - fit.InitialColor[0]
			redColor := rsColor + fit.InitialColor[1]

			if brightMag < mag && mag < faintMag &&
				blueColor < col && col < redColor {
				nearby++
			}
		}

		counts = append(counts, nearby)
		if nearby > maxNearby {
			maxNearby = nearby
			bestZ = z
		}
	}

	if countDensityPeaks(counts) >= 2 {
		c.flags[fit.Color] |= FlagDoubleSequence
	}

	return photometry.AsymmetricValue{
		Value:      bestZ,
		UpperError: zs[len(zs)-1] - bestZ,
		LowerError: bestZ - zs[0],
	}
}

// countDensityPeaks counts local maxima in the nearby-count sequence. A
// point qualifies when it strictly exceeds its neighbors at offsets
// ±2 and ±3 and is >= its immediate neighbors, so a flat-topped peak
// still counts once. After a maximum the scan jumps 3 indices ahead to
// avoid recounting the same plateau.
func countDensityPeaks(counts []int) int {
	peaks := 0
	idx := 3
	for idx >= 3 && idx <= len(counts)-4 {
		v := counts[idx]
		if v > counts[idx-3] && v > counts[idx-2] && v >= counts[idx-1] &&
			v >= counts[idx+1] && v > counts[idx+2] && v > counts[idx+3] {
			peaks++
			idx += 3
		} else {
			idx++
		}
	}
	return peaks
}
