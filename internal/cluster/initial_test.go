package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redseq/rsz-go/internal/conf"
)

func initialFit() *conf.FitSettings {
	return &conf.FitSettings{
		Color:        testColor,
		RedBand:      testRedBand,
		InitialMag:   []float64{2.0, 0.6},
		InitialColor: []float64{0.3, 0.3},
	}
}

func TestInitialRedshiftPicksDensestModel(t *testing.T) {
	// model color tracks redshift, so sources at color 0.5 pile up
	// around z=0.5
	table := flatTable(gridZs(0.1, 1.0, 0.05), func(z float64) float64 { return z }, 19.0)

	var sources []*Source
	for i := 0; i < 8; i++ {
		s := testSource(150, 2, 19.0, 0.5, 0.05)
		s.NearCenter = true
		sources = append(sources, s)
	}
	// a far source never counts, however well it matches
	far := testSource(150, 2, 19.0, 0.5, 0.05)
	far.NearCenter = false
	sources = append(sources, far)

	c := testCluster(sources...)
	z := c.initialRedshift(table, initialFit())

	// counts plateau for z in (0.2, 0.8); the first maximum wins
	assert.InDelta(t, 0.25, z.Value, 1e-9)

	// errors span the full grid range around the best redshift
	assert.InDelta(t, 1.0-0.25, z.UpperError, 1e-9)
	assert.InDelta(t, 0.25-0.1, z.LowerError, 1e-9)
}

func TestInitialRedshiftEmptyCenterKeepsFirstGridPoint(t *testing.T) {
	table := flatTable(gridZs(0.1, 1.0, 0.05), func(z float64) float64 { return z }, 19.0)
	s := testSource(150, 2, 19.0, 0.5, 0.05)
	s.NearCenter = false
	c := testCluster(s)

	z := c.initialRedshift(table, initialFit())
	assert.InDelta(t, 0.1, z.Value, 1e-9, "all-zero counts fall back to the grid start")
}

func TestCountDensityPeaksTwoPeaks(t *testing.T) {
	counts := []int{0, 1, 2, 5, 2, 1, 0, 1, 2, 6, 2, 1, 0, 0}
	assert.Equal(t, 2, countDensityPeaks(counts))
}

func TestCountDensityPeaksSinglePeak(t *testing.T) {
	counts := []int{0, 0, 1, 3, 1, 0, 0, 0, 0}
	assert.Equal(t, 1, countDensityPeaks(counts))
}

func TestCountDensityPeaksCloseMaximaRejected(t *testing.T) {
	// maxima 4 apart fail the strict +-2/+-3 comparisons
	counts := []int{1, 2, 3, 2, 1, 2, 3, 2, 1}
	assert.Equal(t, 0, countDensityPeaks(counts))
}

func TestCountDensityPeaksShortSequence(t *testing.T) {
	assert.Equal(t, 0, countDensityPeaks([]int{1, 5, 1}))
	assert.Equal(t, 0, countDensityPeaks(nil))
}

func TestInitialRedshiftSetsDoubleSequenceFlag(t *testing.T) {
	// two separated populations, each with a dense core and loose tails
	// so its count profile rises to a sharp maximum instead of a wide
	// plateau; the detector only accepts maxima narrower than four grid
	// steps
	table := flatTable(gridZs(0.05, 1.5, 0.05), func(z float64) float64 { return z }, 19.0)

	var sources []*Source
	for _, color := range []float64{0.35, 0.35, 0.35, 0.35, 0.25, 0.45} {
		s := testSource(150, 2, 19.0, color, 0.05)
		s.NearCenter = true
		sources = append(sources, s)
	}
	for _, color := range []float64{1.00, 1.00, 1.00, 0.90, 1.10} {
		s := testSource(150, 2, 19.0, color, 0.05)
		s.NearCenter = true
		sources = append(sources, s)
	}

	c := testCluster(sources...)
	fit := initialFit()
	fit.InitialColor = []float64{0.12, 0.12}
	z := c.initialRedshift(table, fit)

	require.InDelta(t, 0.35, z.Value, 1e-9, "larger population wins")
	assert.NotZero(t, c.Flags(testColor)&FlagDoubleSequence)
}
