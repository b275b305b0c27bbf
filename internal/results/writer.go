// Package results writes the fit outputs: a redshift summary for the
// run and a per-cluster member catalog marking centrality and
// red-sequence membership.
package results

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/redseq/rsz-go/internal/cluster"
	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/errors"
)

// badValue replaces magnitudes and errors too implausible to be real
// measurements in the output catalogs.
const badValue = -99.0

// SummaryWriter accumulates one line per fitted cluster into the run's
// results file.
type SummaryWriter struct {
	file  *os.File
	buf   *bufio.Writer
	runID string
}

// NewSummaryWriter creates (or truncates) the results file and writes
// the run header.
func NewSummaryWriter(path, runName string) (*SummaryWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Newf("creating results file: %w", err).
			Component("results").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	w := &SummaryWriter{
		file:  f,
		buf:   bufio.NewWriter(f),
		runID: uuid.NewString(),
	}
	fmt.Fprintf(w.buf, "# %s run %s at %s\n",
		runName, w.runID, time.Now().Format(time.RFC3339))
	fmt.Fprintf(w.buf, "# %-20s %-10s %-10s %-10s %-10s %-6s\n",
		"name", "color", "z", "z_up_err", "z_low_err", "flags")
	return w, nil
}

// RunID returns the unique identifier of this run.
func (w *SummaryWriter) RunID() string {
	return w.runID
}

// Add appends the fit result of one cluster for one color combination.
func (w *SummaryWriter) Add(c *cluster.Cluster, color string) error {
	z, ok := c.Redshift(color)
	if !ok {
		return errors.Newf("cluster %s has no redshift for color %s", c.Name, color).
			Component("results").
			Category(errors.CategoryFitting).
			Build()
	}
	_, err := fmt.Fprintf(w.buf, "  %-20s %-10s %-10.3f %-10.3f %-10.3f %-6d\n",
		c.Name, color, z.Value, z.UpperError, z.LowerError, c.Flags(color))
	return err
}

// Close flushes and closes the results file.
func (w *SummaryWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// MemberCatalogPath names the member catalog for a cluster.
func MemberCatalogPath(dir, clusterName string) string {
	return filepath.Join(dir, clusterName+".rs.cat")
}

// WriteMemberCatalog writes every source of the cluster with its
// photometry, centrality, and red-sequence membership for the given
// color combination. Magnitudes go out in the catalog's configured
// system: for vega catalogs the AB values are converted back.
func WriteMemberCatalog(path string, c *cluster.Cluster, cat *conf.CatalogSettings, color string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Newf("creating member catalog: %w", err).
			Component("results").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	blueBand, redBand, err := conf.ColorBands(color)
	if err != nil {
		return err
	}

	bands := make([]string, 0, len(cat.Bands))
	for band := range cat.Bands {
		bands = append(bands, band)
	}
	sort.Strings(bands)

	buf := bufio.NewWriter(f)
	fmt.Fprintf(buf, "# %-12s %-12s", "ra", "dec")
	for _, band := range bands {
		fmt.Fprintf(buf, " %-10s %-10s", band, "e"+band)
	}
	fmt.Fprintf(buf, " %-10s %-10s %-6s %-2s\n", color, "e"+color, "center", "RS")

	for _, s := range c.Sources() {
		fmt.Fprintf(buf, "  %-12.7f %-12.7f", s.RA, s.Dec)
		for _, band := range bands {
			m := s.Mags[band]
			fmt.Fprintf(buf, " %-10.2f %-10.3f",
				clampBad(outputMag(m.Value, band, cat)), clampBad(m.Error))
		}

		col := s.Colors[color]
		colValue := col.Value
		if cat.MagSystem == "vega" {
			colValue = colValue - cat.VegaToAB[blueBand] + cat.VegaToAB[redBand]
		}
		fmt.Fprintf(buf, " %-10.2f %-10.3f %-6d %-2d\n",
			clampBad(colValue), clampBad(col.Error),
			boolFlag(s.NearCenter), boolFlag(s.IsMember(color)))
	}
	return buf.Flush()
}

// outputMag converts an AB magnitude back to the catalog's system.
func outputMag(ab float64, band string, cat *conf.CatalogSettings) float64 {
	if cat.MagSystem == "vega" {
		return ab - cat.VegaToAB[band]
	}
	return ab
}

// clampBad replaces obviously unphysical values with the bad sentinel.
func clampBad(v float64) float64 {
	if math.Abs(v) > 50 {
		return badValue
	}
	return v
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
