// conf/defaults.go default values for settings
package conf

import "github.com/spf13/viper"

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)
	viper.SetDefault("interactive", false)

	viper.SetDefault("main.name", "rsz-go")
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "rsz.log")
	viper.SetDefault("main.log.maxsize", 10)
	viper.SetDefault("main.log.maxbackups", 3)

	viper.SetDefault("catalog.extension", ".cat")
	viper.SetDefault("catalog.type", "mag")
	viper.SetDefault("catalog.magsystem", "ab")
	viper.SetDefault("catalog.magzeropoint", 23.9)
	viper.SetDefault("catalog.ra", 1)
	viper.SetDefault("catalog.dec", 2)
	viper.SetDefault("catalog.dist", ColumnAbsent)
	viper.SetDefault("catalog.bands", map[string]any{
		"ch1": map[string]any{"mag": 3, "err": 4},
		"ch2": map[string]any{"mag": 5, "err": 6},
	})
	// IRAC [3.6] and [4.5] vega to AB offsets
	viper.SetDefault("catalog.vegatoab", map[string]any{
		"ch1": 2.787,
		"ch2": 3.260,
	})

	viper.SetDefault("models.path", "models.yaml")
	viper.SetDefault("models.coarsespacing", 0.05)
	viper.SetDefault("models.finespacing", 0.01)

	viper.SetDefault("fit.color", "ch1-ch2")
	viper.SetDefault("fit.redband", "ch2")
	viper.SetDefault("fit.radiusarcmin", 1.5)
	viper.SetDefault("fit.initialmag", []float64{2.0, 0.6})
	viper.SetDefault("fit.initialcolor", []float64{0.3, 0.3})
	viper.SetDefault("fit.bluercuts", []float64{0.25, 0.225, 0.2})
	viper.SetDefault("fit.reddercuts", []float64{0.25, 0.225, 0.2})
	viper.SetDefault("fit.brightercut", 1.4)
	viper.SetDefault("fit.dimmercut", 0.6)
	viper.SetDefault("fit.finalcolor", []float64{0.2, 0.3})
	viper.SetDefault("fit.finalmag", []float64{1.4, 0.6})

	viper.SetDefault("output.resultsfile", "results.txt")
	viper.SetDefault("output.catalogdir", ".")
}
