// Package conf handles the application configuration: the catalog column
// layout, the model library location, the fit windows and cut schedule,
// and the output destinations.
package conf

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/redseq/rsz-go/internal/errors"
)

// ColumnAbsent marks a catalog column that is not present in the input.
const ColumnAbsent = -1

// MainSettings contains the application-level settings.
type MainSettings struct {
	Name string      // node name used in logs and result headers
	Log  LogSettings // structured log file sink
}

// LogSettings controls the rotating structured log file.
type LogSettings struct {
	Enabled    bool
	Path       string
	MaxSize    int // megabytes
	MaxBackups int
}

// BandColumns holds the catalog column indices for one photometric band.
type BandColumns struct {
	Mag int
	Err int
}

// CatalogSettings describes how to parse input catalogs.
type CatalogSettings struct {
	Extension    string // catalog file extension, e.g. ".cat"
	Type         string // "mag" or "flux"
	MagSystem    string // "vega" or "ab"
	MagZeropoint float64
	RA           int // column index, ColumnAbsent if not in the catalog
	Dec          int
	Dist         int // precomputed center distance in arcsec, optional
	Bands        map[string]BandColumns
	VegaToAB     map[string]float64 // per-band vega to AB offsets
}

// ModelSettings locates the red-sequence model library.
type ModelSettings struct {
	Path          string
	CoarseSpacing float64 // redshift grid step for the initial estimate
	FineSpacing   float64 // redshift grid step for refinement
}

// FitSettings holds the fit windows and the iterative cut schedule.
// Window pairs are ordered [brighter, dimmer] for magnitudes and
// [bluer, redder] for colors.
type FitSettings struct {
	Color        string  // color combination, e.g. "ch1-ch2"
	RedBand      string  // band whose magnitude anchors the model color
	RadiusArcmin float64 // center cut radius; 1.5 arcminutes is the canonical value
	InitialMag   []float64
	InitialColor []float64
	BluerCuts    []float64 // one entry per refinement iteration
	RedderCuts   []float64 // must be the same length as BluerCuts
	BrighterCut  float64
	DimmerCut    float64
	FinalColor   []float64
	FinalMag     []float64
}

// OutputSettings names the result destinations.
type OutputSettings struct {
	ResultsFile string // per-cluster redshift summary
	CatalogDir  string // directory for member catalogs
}

// Settings contains all runtime configuration.
type Settings struct {
	Debug       bool
	Interactive bool // prompt for a manual bad-fit flag after each fit
	Main        MainSettings
	Catalog     CatalogSettings
	Models      ModelSettings
	Fit         FitSettings
	Output      OutputSettings
}

// ColorBands splits a color combination key into its band names.
func ColorBands(color string) (blue, red string, err error) {
	parts := strings.SplitN(color, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("color %q is not of the form band1-band2", color)
	}
	return parts[0], parts[1], nil
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment into a Settings
// struct, applying defaults and validating the result.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.Newf("unmarshaling config: %w", err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// GetSettings returns the loaded settings instance, or nil before Load.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// initViper initializes viper with default values and reads the
// configuration file if one exists.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/rsz-go")

	viper.SetEnvPrefix("RSZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			// No config file is fine, defaults plus flags apply.
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}
