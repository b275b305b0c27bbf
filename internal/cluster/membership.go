package cluster

import (
	"github.com/redseq/rsz-go/internal/redseq"
)

// membershipCuts are the window half-widths around the model: color cuts
// on each side of the sequence color, magnitude cuts around the
// characteristic magnitude.
type membershipCuts struct {
	Bluer    float64
	Redder   float64
	Brighter float64
	Dimmer   float64
}

// classifyMembers marks every source as a red-sequence member or not for
// the model at the given redshift. The magnitude window is fixed around
// the characteristic magnitude; the color window follows the sequence,
// evaluated at each source's own red-band magnitude.
//
// All sources are classified, not just near-center ones: the location
// cut is often smaller than the cluster, and members outside it matter
// for the concentration check. The call is idempotent and fully
// overwrites the previous membership for this color combination.
func (c *Cluster) classifyMembers(table *redseq.Table, z float64, cuts membershipCuts, color, redBand string) {
	model := table.At(z)
	if model == nil {
		// z came from a coarser grid; both grids share the same
		// 3-decimal snapping, so this only triggers across spacings
		// that do not divide each other.
		model = table.Nearest(z)
	}

	brightMag := model.MagPoint - cuts.Brighter
	dimMag := model.MagPoint + cuts.Dimmer

	for _, s := range c.sources {
		charColor := model.ColorAtMagnitude(s.Mags[redBand].Value)
		blueColor := charColor - cuts.Bluer
		redColor := charColor + cuts.Redder
		s.markMembership(blueColor, redColor, brightMag, dimMag, color, redBand)
	}
}

// countMembers counts near-center red-sequence members.
func (c *Cluster) countMembers(color string) int {
	count := 0
	for _, s := range c.sources {
		if s.NearCenter && s.IsMember(color) {
			count++
		}
	}
	return count
}
