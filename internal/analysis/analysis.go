// Package analysis drives whole-catalog runs: it loads the model
// library, fits each cluster catalog, and writes the result files.
package analysis

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/redseq/rsz-go/internal/catalog"
	"github.com/redseq/rsz-go/internal/cluster"
	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/errors"
	"github.com/redseq/rsz-go/internal/logging"
	"github.com/redseq/rsz-go/internal/redseq"
	"github.com/redseq/rsz-go/internal/results"
)

// Runner holds the shared state of one analysis run: the model library,
// the results writer, and the interactive review input.
type Runner struct {
	settings *conf.Settings
	loader   *redseq.Loader
	summary  *results.SummaryWriter
	review   io.Reader // os.Stdin in production
	log      *slog.Logger
}

// NewRunner loads the model library and opens the results file.
func NewRunner(settings *conf.Settings) (*Runner, error) {
	loader, err := redseq.NewLoader(settings.Models.Path)
	if err != nil {
		return nil, err
	}

	summary, err := results.NewSummaryWriter(settings.Output.ResultsFile, settings.Main.Name)
	if err != nil {
		return nil, err
	}

	return &Runner{
		settings: settings,
		loader:   loader,
		summary:  summary,
		review:   os.Stdin,
		log:      logging.ForService("analysis"),
	}, nil
}

// Close flushes the results file.
func (r *Runner) Close() error {
	return r.summary.Close()
}

// ProcessFile fits a single cluster catalog, optionally prompts for a
// manual review, and writes the member catalog and summary line.
func (r *Runner) ProcessFile(path string) error {
	name := catalog.ClusterName(path, r.settings.Catalog.Extension)
	r.log.Info("fitting cluster", "cluster", name, "catalog", path)

	rows, err := catalog.ReadFile(path, &r.settings.Catalog)
	if err != nil {
		return err
	}

	c, err := cluster.New(name, rows, []string{r.settings.Fit.Color})
	if err != nil {
		return err
	}

	if err := c.FitRedshift(r.loader, &r.settings.Models, &r.settings.Fit); err != nil {
		return err
	}

	if r.settings.Interactive {
		r.reviewFit(c)
	}

	if err := r.summary.Add(c, r.settings.Fit.Color); err != nil {
		return err
	}

	catPath := results.MemberCatalogPath(r.settings.Output.CatalogDir, name)
	return results.WriteMemberCatalog(catPath, c, &r.settings.Catalog, r.settings.Fit.Color)
}

// reviewFit shows the fit and records a manual bad-fit flag when the
// reviewer enters "f".
func (r *Runner) reviewFit(c *cluster.Cluster) {
	color := r.settings.Fit.Color
	z, _ := c.Redshift(color)
	fmt.Fprintf(os.Stderr, "%s: z = %s, flags = %d\n", c.Name, z, c.Flags(color))
	fmt.Fprint(os.Stderr, "Enter the flags for this cluster [f/enter]: ")

	scanner := bufio.NewScanner(r.review)
	if scanner.Scan() && strings.TrimSpace(scanner.Text()) == "f" {
		c.MarkBadFit(color)
	}
}

// FileAnalysis fits one catalog file.
func FileAnalysis(settings *conf.Settings, path string) error {
	runner, err := NewRunner(settings)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.ProcessFile(path)
}

// DirectoryAnalysis fits every catalog with the configured extension in
// dir, in name order, sharing one results file.
func DirectoryAnalysis(settings *conf.Settings, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Newf("reading catalog directory: %w", err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			Context("dir", dir).
			Build()
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), settings.Catalog.Extension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return errors.Newf("no %s catalogs in %s", settings.Catalog.Extension, dir).
			Component("analysis").
			Category(errors.CategoryValidation).
			Build()
	}
	sort.Strings(paths)

	runner, err := NewRunner(settings)
	if err != nil {
		return err
	}
	defer runner.Close()

	for _, path := range paths {
		if err := runner.ProcessFile(path); err != nil {
			return err
		}
	}
	return nil
}
