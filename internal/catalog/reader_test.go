package catalog

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/photometry"
)

func magConfig() *conf.CatalogSettings {
	return &conf.CatalogSettings{
		Extension:    ".cat",
		Type:         "mag",
		MagSystem:    "ab",
		MagZeropoint: 23.9,
		RA:           1,
		Dec:          2,
		Dist:         conf.ColumnAbsent,
		Bands: map[string]conf.BandColumns{
			"ch1": {Mag: 3, Err: 4},
			"ch2": {Mag: 5, Err: 6},
		},
		VegaToAB: map[string]float64{"ch1": 2.787, "ch2": 3.260},
	}
}

func TestParseMagCatalog(t *testing.T) {
	input := strings.Join([]string{
		"# ra dec ch1 ech1 ch2 ech2",
		"id ra dec ch1 ech1 ch2 ech2",
		"1  150.1234  2.3456  19.50 0.05  19.10 0.06",
		"",
		"2  150.2000  2.4000  20.10 0.08  19.80 0.09",
	}, "\n")

	rows, err := Parse(strings.NewReader(input), magConfig())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].HasPos)
	assert.InDelta(t, 150.1234, rows[0].RA, 1e-9)
	assert.InDelta(t, 2.3456, rows[0].Dec, 1e-9)
	assert.Nil(t, rows[0].Dist)
	assert.InDelta(t, 19.50, rows[0].Mags["ch1"].Value, 1e-9)
	assert.InDelta(t, 0.06, rows[0].Mags["ch2"].Error, 1e-9)
}

func TestParseVegaConversion(t *testing.T) {
	cfg := magConfig()
	cfg.MagSystem = "vega"

	rows, err := Parse(strings.NewReader("1 150.0 2.0 17.0 0.05 16.0 0.06"), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.InDelta(t, 17.0+2.787, rows[0].Mags["ch1"].Value, 1e-9)
	assert.InDelta(t, 16.0+3.260, rows[0].Mags["ch2"].Value, 1e-9)
}

func TestParseFluxConversion(t *testing.T) {
	cfg := magConfig()
	cfg.Type = "flux"
	cfg.MagZeropoint = 25.0

	rows, err := Parse(strings.NewReader("1 150.0 2.0 10.0 1.0 0.0 1.0"), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// F=10 at zeropoint 25 is mag 22.5, relative error 0.1
	assert.InDelta(t, 22.5, rows[0].Mags["ch1"].Value, 1e-9)
	assert.InDelta(t, 2.5/math.Ln10*0.1, rows[0].Mags["ch1"].Error, 1e-9)

	// zero flux becomes the bad-measurement sentinels
	assert.InDelta(t, photometry.BadMag, rows[0].Mags["ch2"].Value, 1e-9)
	assert.InDelta(t, photometry.BadMagError, rows[0].Mags["ch2"].Error, 1e-9)
}

func TestParseDistColumn(t *testing.T) {
	cfg := magConfig()
	cfg.RA = conf.ColumnAbsent
	cfg.Dec = conf.ColumnAbsent
	cfg.Dist = 0

	rows, err := Parse(strings.NewReader("42.5 150.0 2.0 19.0 0.05 18.5 0.06"), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].HasPos)
	require.NotNil(t, rows[0].Dist)
	assert.InDelta(t, 42.5, *rows[0].Dist, 1e-9)
}

func TestParseMissingPositionConfigIsFatal(t *testing.T) {
	cfg := magConfig()
	cfg.RA = conf.ColumnAbsent
	cfg.Dec = conf.ColumnAbsent
	cfg.Dist = conf.ColumnAbsent

	_, err := Parse(strings.NewReader("1 2 3 4 5 6 7"), cfg)
	require.Error(t, err)
}

func TestParseBadRowFailsLoad(t *testing.T) {
	input := "1 150.0 2.0 19.0 0.05 18.5 0.06\n2 150.1 bad 19.2 0.05 18.7 0.06\n"
	_, err := Parse(strings.NewReader(input), magConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	// too few columns also fails
	_, err = Parse(strings.NewReader("1 150.0 2.0"), magConfig())
	require.Error(t, err)
}

func TestClusterName(t *testing.T) {
	assert.Equal(t, "spt0546", ClusterName("/data/catalogs/spt0546.cat", ".cat"))
	assert.Equal(t, "cl1449.phot", ClusterName("cl1449.phot", ".cat"))
}
