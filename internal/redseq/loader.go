package redseq

import (
	"fmt"
	"os"
	"sort"

	"github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"

	"github.com/redseq/rsz-go/internal/errors"
)

// libraryEntry is one redshift knot of the model library file.
type libraryEntry struct {
	Z        float64 `yaml:"z"`
	MagPoint float64 `yaml:"magpoint"`
	Color    float64 `yaml:"color"`
	Slope    float64 `yaml:"slope"`
}

type libraryFile struct {
	Colors map[string][]libraryEntry `yaml:"colors"`
}

// Library is a parsed model library: per color combination, redshift
// knots that tables of any grid spacing are interpolated from.
type Library struct {
	colors map[string][]libraryEntry
}

// LoadLibrary reads and parses a model library file.
func LoadLibrary(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Newf("reading model library: %w", err).
			Component("redseq").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	var file libraryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Newf("parsing model library: %w", err).
			Component("redseq").
			Category(errors.CategoryModelLoad).
			Context("path", path).
			Build()
	}
	if len(file.Colors) == 0 {
		return nil, errors.Newf("model library %s defines no color combinations", path).
			Component("redseq").
			Category(errors.CategoryModelLoad).
			Build()
	}

	lib := &Library{colors: make(map[string][]libraryEntry, len(file.Colors))}
	for color, entries := range file.Colors {
		if len(entries) < 2 {
			return nil, errors.Newf("color %q needs at least two redshift knots", color).
				Component("redseq").
				Category(errors.CategoryModelLoad).
				Build()
		}
		sorted := make([]libraryEntry, len(entries))
		copy(sorted, entries)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Z < sorted[j].Z })
		lib.colors[color] = sorted
	}
	return lib, nil
}

// Colors lists the color combinations the library covers.
func (l *Library) Colors() []string {
	out := make([]string, 0, len(l.colors))
	for color := range l.colors {
		out = append(out, color)
	}
	sort.Strings(out)
	return out
}

// Table interpolates the library knots onto a regular redshift grid with
// the given spacing. Grid redshifts are snapped to three decimals so that
// repeated builds yield identical keys.
func (l *Library) Table(color string, spacing float64) (*Table, error) {
	knots, ok := l.colors[color]
	if !ok {
		return nil, errors.Newf("color %q is not in the model library", color).
			Component("redseq").
			Category(errors.CategoryModelLoad).
			Build()
	}

	zMin := knots[0].Z
	zMax := knots[len(knots)-1].Z

	var models []*Model
	for i := 0; ; i++ {
		z := roundZ(zMin + float64(i)*spacing)
		if z > zMax+1e-9 {
			break
		}
		models = append(models, interpolate(knots, z))
	}
	return NewTable(color, models), nil
}

// interpolate evaluates the model parameters at z by linear interpolation
// between the bracketing knots. z is within the knot range by
// construction.
func interpolate(knots []libraryEntry, z float64) *Model {
	hi := sort.Search(len(knots), func(i int) bool { return knots[i].Z >= z })
	if hi == 0 {
		k := knots[0]
		return &Model{Redshift: z, MagPoint: k.MagPoint, Color: k.Color, Slope: k.Slope}
	}
	if hi == len(knots) {
		k := knots[len(knots)-1]
		return &Model{Redshift: z, MagPoint: k.MagPoint, Color: k.Color, Slope: k.Slope}
	}

	lo := hi - 1
	a, b := knots[lo], knots[hi]
	span := b.Z - a.Z
	if span == 0 {
		return &Model{Redshift: z, MagPoint: a.MagPoint, Color: a.Color, Slope: a.Slope}
	}
	f := (z - a.Z) / span
	return &Model{
		Redshift: z,
		MagPoint: a.MagPoint + f*(b.MagPoint-a.MagPoint),
		Color:    a.Color + f*(b.Color-a.Color),
		Slope:    a.Slope + f*(b.Slope-a.Slope),
	}
}

// Loader loads the model library once and hands out gridded tables,
// caching each (color, spacing) build.
type Loader struct {
	lib    *Library
	tables *cache.Cache
}

// NewLoader parses the library at path and prepares the table cache.
func NewLoader(path string) (*Loader, error) {
	lib, err := LoadLibrary(path)
	if err != nil {
		return nil, err
	}
	return &Loader{
		lib:    lib,
		tables: cache.New(cache.NoExpiration, 0),
	}, nil
}

// Library returns the underlying parsed library.
func (l *Loader) Library() *Library {
	return l.lib
}

// Table returns the table for a color combination at the given grid
// spacing, building and caching it on first use.
func (l *Loader) Table(color string, spacing float64) (*Table, error) {
	key := fmt.Sprintf("%s|%.4f", color, spacing)
	if cached, ok := l.tables.Get(key); ok {
		return cached.(*Table), nil
	}

	table, err := l.lib.Table(color, spacing)
	if err != nil {
		return nil, err
	}
	l.tables.Set(key, table, cache.NoExpiration)
	return table, nil
}
