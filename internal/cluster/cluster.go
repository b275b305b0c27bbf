// Package cluster implements the redshift-estimation pipeline: a cluster
// of galaxy sources is matched against red-sequence models on a redshift
// grid, refined by iterative chi-squared fitting with membership
// re-selection, and quality-checked for anomalies.
package cluster

import (
	"github.com/redseq/rsz-go/internal/catalog"
	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/errors"
	"github.com/redseq/rsz-go/internal/photometry"
)

// Fit quality flags, one bitfield per color combination. Bits are
// additive and independent.
const (
	// FlagNotConcentrated: members are not significantly more
	// concentrated near the center than outside, or one population is
	// empty.
	FlagNotConcentrated = 1 << 0
	// FlagDoubleSequence: two or more maxima in the initial
	// density-vs-redshift curve.
	FlagDoubleSequence = 1 << 1
	// FlagNotClean: the member count does not sufficiently exceed the
	// blue/red offset control bands.
	FlagNotClean = 1 << 2
	// FlagManualBad: a reviewer marked the fit as bad.
	FlagManualBad = 1 << 3
)

// Cluster aggregates the sources of one galaxy cluster together with the
// per-color-combination fit results and quality flags.
type Cluster struct {
	Name string

	sources []*Source
	z       map[string]photometry.AsymmetricValue
	flags   map[string]int
}

// New builds a cluster from parsed catalog rows, deriving the colors
// needed by the given color combinations.
func New(name string, rows []catalog.Row, colors []string) (*Cluster, error) {
	c := &Cluster{
		Name:    name,
		sources: make([]*Source, 0, len(rows)),
		z:       make(map[string]photometry.AsymmetricValue),
		flags:   make(map[string]int),
	}

	for _, row := range rows {
		s := &Source{
			RA:       row.RA,
			Dec:      row.Dec,
			HasPos:   row.HasPos,
			Dist:     row.Dist,
			Mags:     row.Mags,
			Colors:   make(map[string]photometry.Measurement, len(colors)),
			rsMember: make(map[string]bool, len(colors)),
		}
		for _, color := range colors {
			blue, red, err := conf.ColorBands(color)
			if err != nil {
				return nil, err
			}
			blueMag, okBlue := row.Mags[blue]
			redMag, okRed := row.Mags[red]
			if !okBlue || !okRed {
				return nil, errors.Newf("color %q needs bands missing from the catalog", color).
					Component("cluster").
					Category(errors.CategoryValidation).
					Build()
			}
			s.Colors[color] = photometry.Color(blueMag, redMag)
		}
		c.sources = append(c.sources, s)
	}
	return c, nil
}

// Sources exposes the cluster's sources for result writing. The slice
// and its contents must not be modified by callers.
func (c *Cluster) Sources() []*Source {
	return c.sources
}

// Redshift returns the current fit result for a color combination.
func (c *Cluster) Redshift(color string) (photometry.AsymmetricValue, bool) {
	z, ok := c.z[color]
	return z, ok
}

// Flags returns the quality flag bitfield for a color combination.
func (c *Cluster) Flags(color string) int {
	return c.flags[color]
}

// MarkBadFit sets the manual bad-fit flag for a color combination.
func (c *Cluster) MarkBadFit(color string) {
	c.flags[color] |= FlagManualBad
}
