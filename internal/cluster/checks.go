package cluster

import (
	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/redseq"
)

// controlBandShift is how far (in color) the clean-sequence control
// windows are displaced from the accepted red sequence.
const controlBandShift = 0.3

// concentrationFactor is how much denser in members the near-center
// population must be, relative to the outskirts, to pass the
// concentration check.
const concentrationFactor = 1.75

// cleanSequenceCheck compares the accepted red sequence against two
// control windows of the same size shifted redder and bluer. A real red
// sequence should hold far more members than either off-color band; if
// (red + blue) * 2 >= best, FlagNotClean is set.
//
// The check runs three classification passes and leaves the last one
// (the blue-shifted window) applied, so callers must re-run the final
// classification afterward.
func (c *Cluster) cleanSequenceCheck(table *redseq.Table, fit *conf.FitSettings) {
	z := c.z[fit.Color].Value
	bluer := fit.BluerCuts[len(fit.BluerCuts)-1]
	redder := fit.RedderCuts[len(fit.RedderCuts)-1]

	c.classifyMembers(table, z, membershipCuts{
		Bluer: bluer, Redder: redder,
		Brighter: fit.BrighterCut, Dimmer: fit.DimmerCut,
	}, fit.Color, fit.RedBand)
	best := c.countMembers(fit.Color)

	// Shift the window toward red: less blue extent, more red extent.
	c.classifyMembers(table, z, membershipCuts{
		Bluer: bluer - controlBandShift, Redder: redder + controlBandShift,
		Brighter: fit.BrighterCut, Dimmer: fit.DimmerCut,
	}, fit.Color, fit.RedBand)
	red := c.countMembers(fit.Color)

	// And the mirror, toward blue.
	c.classifyMembers(table, z, membershipCuts{
		Bluer: bluer + controlBandShift, Redder: redder - controlBandShift,
		Brighter: fit.BrighterCut, Dimmer: fit.DimmerCut,
	}, fit.Color, fit.RedBand)
	blue := c.countMembers(fit.Color)

	if (red+blue)*2 >= best {
		c.flags[fit.Color] |= FlagNotClean
	}
}

// concentrationCheck compares the member fraction near the center with
// the member fraction outside. Unless the near fraction is more than
// concentrationFactor times the far fraction, or if either population is
// empty, FlagNotConcentrated is set.
func (c *Cluster) concentrationCheck(color string) {
	var totalNear, memberNear, totalFar, memberFar int
	for _, s := range c.sources {
		if s.NearCenter {
			totalNear++
			if s.IsMember(color) {
				memberNear++
			}
		} else {
			totalFar++
			if s.IsMember(color) {
				memberFar++
			}
		}
	}

	if totalNear == 0 || totalFar == 0 {
		c.flags[color] |= FlagNotConcentrated
		return
	}

	nearFraction := float64(memberNear) / float64(totalNear)
	farFraction := float64(memberFar) / float64(totalFar)
	if nearFraction <= farFraction*concentrationFactor {
		c.flags[color] |= FlagNotConcentrated
	}
}
