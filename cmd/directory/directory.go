package directory

import (
	"github.com/spf13/cobra"

	"github.com/redseq/rsz-go/internal/analysis"
	"github.com/redseq/rsz-go/internal/conf"
)

// Command creates the directory command for batch runs over a directory
// of cluster catalogs.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "directory [path]",
		Short: "Fit every cluster catalog in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analysis.DirectoryAnalysis(settings, args[0])
		},
	}
}
