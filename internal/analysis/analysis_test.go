package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redseq/rsz-go/internal/cluster"
	"github.com/redseq/rsz-go/internal/conf"
)

const modelLibrary = `
colors:
  ch1-ch2:
    - {z: 0.10, magpoint: 19.0, color: 0.10, slope: 0.0}
    - {z: 1.00, magpoint: 19.0, color: 1.00, slope: 0.0}
`

// writeCatalog writes a ten-source sequence straddling color 0.5 in the
// reader's column layout: ra dec ch1 ech1 ch2 ech2.
func writeCatalog(t *testing.T, path string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("# ra dec ch1 ech1 ch2 ech2\n")
	for i := 0; i < 10; i++ {
		color := 0.49
		if i%2 == 0 {
			color = 0.51
		}
		mag := 18.8 + 0.04*float64(i)
		fmt.Fprintf(&b, "%.6f %.6f %.3f 0.03 %.3f 0.04\n",
			150.0+0.002*float64(i%3), 2.0+0.002*float64(i%2), mag+color, mag)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func testSettings(t *testing.T) (*conf.Settings, string) {
	t.Helper()
	dir := t.TempDir()

	modelPath := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(modelLibrary), 0o644))

	settings := &conf.Settings{
		Main: conf.MainSettings{Name: "test"},
		Catalog: conf.CatalogSettings{
			Extension: ".cat",
			Type:      "mag",
			MagSystem: "ab",
			RA:        0,
			Dec:       1,
			Dist:      conf.ColumnAbsent,
			Bands: map[string]conf.BandColumns{
				"ch1": {Mag: 2, Err: 3},
				"ch2": {Mag: 4, Err: 5},
			},
		},
		Models: conf.ModelSettings{Path: modelPath, CoarseSpacing: 0.05, FineSpacing: 0.01},
		Fit: conf.FitSettings{
			Color:        "ch1-ch2",
			RedBand:      "ch2",
			RadiusArcmin: 60,
			InitialMag:   []float64{2.0, 0.6},
			InitialColor: []float64{0.3, 0.3},
			BluerCuts:    []float64{0.25, 0.225, 0.2},
			RedderCuts:   []float64{0.25, 0.225, 0.2},
			BrighterCut:  1.4,
			DimmerCut:    0.6,
			FinalColor:   []float64{0.2, 0.3},
			FinalMag:     []float64{1.4, 0.6},
		},
		Output: conf.OutputSettings{
			ResultsFile: filepath.Join(dir, "results.txt"),
			CatalogDir:  dir,
		},
	}
	return settings, dir
}

func TestDirectoryAnalysis(t *testing.T) {
	settings, dir := testSettings(t)
	writeCatalog(t, filepath.Join(dir, "abell.cat"))
	writeCatalog(t, filepath.Join(dir, "bullet.cat"))
	// files without the extension are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x\n"), 0o644))

	require.NoError(t, DirectoryAnalysis(settings, dir))

	raw, err := os.ReadFile(settings.Output.ResultsFile)
	require.NoError(t, err)

	var resultLines []string
	for _, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		if !strings.HasPrefix(line, "#") {
			resultLines = append(resultLines, line)
		}
	}
	require.Len(t, resultLines, 2)
	assert.Contains(t, resultLines[0], "abell")
	assert.Contains(t, resultLines[0], "0.500")
	assert.Contains(t, resultLines[1], "bullet")

	for _, name := range []string{"abell", "bullet"} {
		_, err := os.Stat(filepath.Join(dir, name+".rs.cat"))
		assert.NoError(t, err, "member catalog for %s", name)
	}
}

func TestDirectoryAnalysisEmptyDirectory(t *testing.T) {
	settings, _ := testSettings(t)
	err := DirectoryAnalysis(settings, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .cat catalogs")
}

func TestFileAnalysis(t *testing.T) {
	settings, dir := testSettings(t)
	path := filepath.Join(dir, "single.cat")
	writeCatalog(t, path)

	require.NoError(t, FileAnalysis(settings, path))

	raw, err := os.ReadFile(settings.Output.ResultsFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "single")
}

func TestInteractiveReviewMarksBadFit(t *testing.T) {
	settings, dir := testSettings(t)
	settings.Interactive = true
	path := filepath.Join(dir, "reviewed.cat")
	writeCatalog(t, path)

	runner, err := NewRunner(settings)
	require.NoError(t, err)
	defer runner.Close()

	runner.review = strings.NewReader("f\n")
	require.NoError(t, runner.ProcessFile(path))

	raw, err := os.ReadFile(filepath.Join(dir, "reviewed.rs.cat"))
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	// the manual flag lands in the summary line
	require.NoError(t, runner.Close())
	summary, err := os.ReadFile(settings.Output.ResultsFile)
	require.NoError(t, err)

	var resultLine string
	for _, line := range strings.Split(strings.TrimRight(string(summary), "\n"), "\n") {
		if !strings.HasPrefix(line, "#") {
			resultLine = line
		}
	}
	fields := strings.Fields(resultLine)
	require.NotEmpty(t, fields)
	flagged := fmt.Sprintf("%d", cluster.FlagNotConcentrated|cluster.FlagManualBad)
	assert.Equal(t, flagged, fields[len(fields)-1])
}
