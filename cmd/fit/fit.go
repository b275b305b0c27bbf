package fit

import (
	"github.com/spf13/cobra"

	"github.com/redseq/rsz-go/internal/analysis"
	"github.com/redseq/rsz-go/internal/conf"
)

// Command creates the fit command for a single cluster catalog.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "fit [catalog.cat]",
		Short: "Fit the redshift of one cluster catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analysis.FileAnalysis(settings, args[0])
		},
	}
}
