package cluster

import (
	"github.com/redseq/rsz-go/internal/photometry"
)

// Source is a single galaxy observation: position, per-band magnitudes,
// derived colors, and the per-fit classification state. Sources are owned
// by their Cluster and never escape it.
type Source struct {
	RA     float64
	Dec    float64
	HasPos bool

	// Dist is the distance from the cluster center in arcsec. It is
	// either supplied by the catalog or filled in by the location cut.
	Dist *float64

	Mags   map[string]photometry.Measurement
	Colors map[string]photometry.Measurement

	// NearCenter is set by the location cut, once per fit.
	NearCenter bool

	// rsMember records red-sequence membership per color combination.
	// Each classification pass fully overwrites the entry for its color.
	rsMember map[string]bool
}

// IsMember reports red-sequence membership for a color combination as of
// the last classification pass.
func (s *Source) IsMember(color string) bool {
	return s.rsMember[color]
}

// markMembership applies a color and magnitude window: the source is a
// member iff its magnitude and color both fall strictly inside the
// bounds.
func (s *Source) markMembership(blueColor, redColor, brightMag, dimMag float64, color, redBand string) {
	mag := s.Mags[redBand].Value
	col := s.Colors[color].Value
	s.rsMember[color] = brightMag < mag && mag < dimMag &&
		blueColor < col && col < redColor
}
