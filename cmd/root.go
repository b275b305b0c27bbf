package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redseq/rsz-go/cmd/directory"
	"github.com/redseq/rsz-go/cmd/fit"
	"github.com/redseq/rsz-go/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rsz",
		Short: "Red-sequence cluster redshift fitting",
		Long: `rsz estimates galaxy cluster redshifts by matching the observed
color-magnitude distribution against a library of red-sequence models.`,
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		fit.Command(settings),
		directory.Command(settings),
	)

	return rootCmd
}

// setupFlags defines the flags shared by every subcommand.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&settings.Interactive, "interactive", "i", viper.GetBool("interactive"), "Review each fit and flag bad ones by hand")
	rootCmd.PersistentFlags().StringVar(&settings.Models.Path, "models", viper.GetString("models.path"), "Path to the red-sequence model library")
	rootCmd.PersistentFlags().StringVar(&settings.Fit.Color, "color", viper.GetString("fit.color"), "Color combination to fit, e.g. ch1-ch2")
	rootCmd.PersistentFlags().Float64VarP(&settings.Fit.RadiusArcmin, "radius", "r", viper.GetFloat64("fit.radiusarcmin"), "Center cut radius in arcminutes")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.ResultsFile, "results", "o", viper.GetString("output.resultsfile"), "Path of the redshift results file")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
