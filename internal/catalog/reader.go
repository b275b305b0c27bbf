// Package catalog parses whitespace-separated photometric catalogs into
// source rows according to the configured column layout.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/errors"
	"github.com/redseq/rsz-go/internal/photometry"
)

// Row is one parsed catalog entry: position (or a precomputed center
// distance) plus per-band AB magnitudes with errors.
type Row struct {
	RA     float64
	Dec    float64
	HasPos bool
	Dist   *float64 // arcsec from the cluster center, if the catalog has it
	Mags   map[string]photometry.Measurement
}

// ClusterName derives the cluster name from a catalog path by dropping
// the configured extension.
func ClusterName(path, extension string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, extension)
}

// ReadFile parses the catalog at path.
func ReadFile(path string, cfg *conf.CatalogSettings) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Newf("opening catalog: %w", err).
			Component("catalog").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	rows, err := Parse(f, cfg)
	if err != nil {
		return nil, errors.Newf("catalog %s: %w", path, err).
			Component("catalog").
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Build()
	}
	return rows, nil
}

// Parse reads catalog rows from r. Comment lines (starting with "#") and
// column-header lines (starting with "id") are skipped. Any row that
// cannot be parsed according to the configured column indices fails the
// whole load.
func Parse(r io.Reader, cfg *conf.CatalogSettings) ([]Row, error) {
	hasRaDec := cfg.RA != conf.ColumnAbsent && cfg.Dec != conf.ColumnAbsent
	hasDist := cfg.Dist != conf.ColumnAbsent
	if !hasRaDec && !hasDist {
		return nil, errors.Newf("specify either ra/dec or dist columns").
			Component("catalog").
			Category(errors.CategoryConfiguration).
			Build()
	}

	var rows []Row
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(trimmed, "id") {
			continue
		}

		row, err := parseRow(strings.Fields(trimmed), cfg, hasRaDec, hasDist)
		if err != nil {
			return nil, errors.Newf("catalog line %d: %w", lineNo, err).
				Component("catalog").
				Category(errors.CategoryFileParsing).
				Build()
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Newf("reading catalog: %w", err).
			Component("catalog").
			Category(errors.CategoryFileIO).
			Build()
	}
	return rows, nil
}

func parseRow(fields []string, cfg *conf.CatalogSettings, hasRaDec, hasDist bool) (Row, error) {
	row := Row{Mags: make(map[string]photometry.Measurement, len(cfg.Bands))}

	if hasRaDec {
		ra, err := fieldFloat(fields, cfg.RA)
		if err != nil {
			return Row{}, err
		}
		dec, err := fieldFloat(fields, cfg.Dec)
		if err != nil {
			return Row{}, err
		}
		row.RA, row.Dec, row.HasPos = ra, dec, true
	}
	if hasDist {
		dist, err := fieldFloat(fields, cfg.Dist)
		if err != nil {
			return Row{}, err
		}
		row.Dist = &dist
	}

	for band, cols := range cfg.Bands {
		value, err := fieldFloat(fields, cols.Mag)
		if err != nil {
			return Row{}, err
		}
		errValue, err := fieldFloat(fields, cols.Err)
		if err != nil {
			return Row{}, err
		}
		row.Mags[band] = toABMag(band, value, errValue, cfg)
	}
	return row, nil
}

// toABMag converts a raw catalog measurement to an AB magnitude with
// error, handling flux catalogs and vega-system magnitudes.
func toABMag(band string, value, errValue float64, cfg *conf.CatalogSettings) photometry.Measurement {
	if cfg.Type == "flux" {
		if value == 0 {
			// a slightly negative flux parses as a bad magnitude
			value = -0.1
		}
		magErr := photometry.RelativeFluxErrToMagErr(errValue / value)
		mag := photometry.FluxToMag(value, cfg.MagZeropoint)
		return photometry.Measurement{Value: mag, Error: magErr}
	}

	if cfg.MagSystem == "vega" {
		value += cfg.VegaToAB[band]
	}
	return photometry.Measurement{Value: value, Error: errValue}
}

func fieldFloat(fields []string, idx int) (float64, error) {
	if idx < 0 || idx >= len(fields) {
		return 0, fmt.Errorf("column %d out of range (%d fields)", idx, len(fields))
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return 0, fmt.Errorf("column %d: %w", idx, err)
	}
	return v, nil
}
