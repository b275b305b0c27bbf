// conf/validate.go

package conf

import (
	"fmt"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateCatalogSettings(&settings.Catalog); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateModelSettings(&settings.Models); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateFitSettings(&settings.Fit, &settings.Catalog); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateCatalogSettings(c *CatalogSettings) error {
	if c.Type != "mag" && c.Type != "flux" {
		return fmt.Errorf("catalog.type must be \"mag\" or \"flux\", got %q", c.Type)
	}
	if c.MagSystem != "vega" && c.MagSystem != "ab" {
		return fmt.Errorf("catalog.magsystem must be \"vega\" or \"ab\", got %q", c.MagSystem)
	}

	// Position must come from somewhere: either ra/dec columns or a
	// precomputed center distance column.
	hasRaDec := c.RA != ColumnAbsent && c.Dec != ColumnAbsent
	hasDist := c.Dist != ColumnAbsent
	if !hasRaDec && !hasDist {
		return fmt.Errorf("specify either catalog.ra and catalog.dec, or catalog.dist")
	}

	if len(c.Bands) == 0 {
		return fmt.Errorf("catalog.bands must define at least one band")
	}
	for band, cols := range c.Bands {
		if cols.Mag < 0 || cols.Err < 0 {
			return fmt.Errorf("catalog.bands.%s has a negative column index", band)
		}
	}

	if c.MagSystem == "vega" {
		for band := range c.Bands {
			if _, ok := c.VegaToAB[band]; !ok {
				return fmt.Errorf("catalog.vegatoab is missing the offset for band %q", band)
			}
		}
	}
	return nil
}

func validateModelSettings(m *ModelSettings) error {
	if m.Path == "" {
		return fmt.Errorf("models.path must be set")
	}
	if m.CoarseSpacing <= 0 || m.FineSpacing <= 0 {
		return fmt.Errorf("model grid spacings must be positive")
	}
	return nil
}

func validateFitSettings(f *FitSettings, c *CatalogSettings) error {
	blue, red, err := ColorBands(f.Color)
	if err != nil {
		return err
	}
	for _, band := range []string{blue, red, f.RedBand} {
		if _, ok := c.Bands[band]; !ok {
			return fmt.Errorf("band %q is not defined in catalog.bands", band)
		}
	}

	if f.RadiusArcmin <= 0 {
		return fmt.Errorf("fit.radiusarcmin must be positive")
	}
	if len(f.BluerCuts) == 0 || len(f.BluerCuts) != len(f.RedderCuts) {
		return fmt.Errorf("fit.bluercuts and fit.reddercuts must be non-empty and the same length")
	}

	pairs := map[string][]float64{
		"fit.initialmag":   f.InitialMag,
		"fit.initialcolor": f.InitialColor,
		"fit.finalcolor":   f.FinalColor,
		"fit.finalmag":     f.FinalMag,
	}
	for name, pair := range pairs {
		if len(pair) != 2 {
			return fmt.Errorf("%s must have exactly two entries", name)
		}
	}
	return nil
}
