package cluster

import "math"

// boundingBoxCenter returns the midpoint of the bounding box of all
// source positions, (max+min)/2 per axis. This is deliberately not a
// centroid: a dense clump off to one side must not drag the center.
func boundingBoxCenter(sources []*Source) (ra, dec float64, ok bool) {
	first := true
	var minRA, maxRA, minDec, maxDec float64
	for _, s := range sources {
		if !s.HasPos {
			continue
		}
		if first {
			minRA, maxRA = s.RA, s.RA
			minDec, maxDec = s.Dec, s.Dec
			first = false
			continue
		}
		minRA = math.Min(minRA, s.RA)
		maxRA = math.Max(maxRA, s.RA)
		minDec = math.Min(minDec, s.Dec)
		maxDec = math.Max(maxDec, s.Dec)
	}
	if first {
		return 0, 0, false
	}
	return (maxRA + minRA) / 2, (maxDec + minDec) / 2, true
}

// locationCut marks sources within radius arcminutes of the cluster
// center as near-center. Sources that carry a catalog-supplied distance
// keep it; for the rest the planar (flat-sky) distance from the bounding
// box center is computed in arcsec and stored permanently. Called exactly
// once per fit, before any classification.
func (c *Cluster) locationCut(radiusArcmin float64) {
	midRA, midDec, ok := boundingBoxCenter(c.sources)

	for _, s := range c.sources {
		if s.Dist == nil && ok {
			d := math.Hypot(s.RA-midRA, s.Dec-midDec) * 3600
			s.Dist = &d
		}
		s.NearCenter = s.Dist != nil && *s.Dist < radiusArcmin*60
	}
}
