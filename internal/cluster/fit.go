package cluster

import (
	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/errors"
	"github.com/redseq/rsz-go/internal/logging"
	"github.com/redseq/rsz-go/internal/redseq"
)

// FitRedshift runs the full pipeline for one color combination:
// location cut, coarse initial estimate, iterative chi-squared
// refinement over the configured cut schedule, quality checks, and the
// final membership classification. Results land in the cluster's
// redshift and flag maps; flags accumulate additively and are reset only
// here, at the start.
func (c *Cluster) FitRedshift(loader *redseq.Loader, models *conf.ModelSettings, fit *conf.FitSettings) error {
	log := logging.ForService("cluster")

	coarse, err := loader.Table(fit.Color, models.CoarseSpacing)
	if err != nil {
		return errors.Newf("loading coarse model table: %w", err).
			Component("cluster").
			Category(errors.CategoryFitting).
			Context("cluster", c.Name).
			Build()
	}
	fine, err := loader.Table(fit.Color, models.FineSpacing)
	if err != nil {
		return errors.Newf("loading fine model table: %w", err).
			Component("cluster").
			Category(errors.CategoryFitting).
			Context("cluster", c.Name).
			Build()
	}

	c.locationCut(fit.RadiusArcmin)
	c.flags[fit.Color] = 0

	c.z[fit.Color] = c.initialRedshift(coarse, fit)
	log.Debug("initial estimate",
		"cluster", c.Name,
		"color", fit.Color,
		"z", c.z[fit.Color].Value)

	// Each iteration narrows the color window around the current fit,
	// honing in on the red sequence.
	for i := range fit.BluerCuts {
		c.classifyMembers(fine, c.z[fit.Color].Value, membershipCuts{
			Bluer:    fit.BluerCuts[i],
			Redder:   fit.RedderCuts[i],
			Brighter: fit.BrighterCut,
			Dimmer:   fit.DimmerCut,
		}, fit.Color, fit.RedBand)

		c.z[fit.Color] = c.refineRedshift(fine, c.z[fit.Color], fit.Color, fit.RedBand)
		log.Debug("refinement iteration",
			"cluster", c.Name,
			"iteration", i,
			"bluer", fit.BluerCuts[i],
			"redder", fit.RedderCuts[i],
			"z", c.z[fit.Color].Value)
	}

	c.cleanSequenceCheck(fine, fit)

	// The clean check leaves its last control window applied, so the
	// final membership must be recomputed with the final window. The
	// final magnitude window is symmetric: FinalMag[0] is the half-width
	// on both sides of the characteristic magnitude, and FinalMag[1] is
	// not consulted here.
	c.classifyMembers(fine, c.z[fit.Color].Value, membershipCuts{
		Bluer:    fit.FinalColor[0],
		Redder:   fit.FinalColor[1],
		Brighter: fit.FinalMag[0],
		Dimmer:   fit.FinalMag[0],
	}, fit.Color, fit.RedBand)

	c.concentrationCheck(fit.Color)

	log.Info("fit complete",
		"cluster", c.Name,
		"color", fit.Color,
		"z", c.z[fit.Color].Value,
		"upper", c.z[fit.Color].UpperError,
		"lower", c.z[fit.Color].LowerError,
		"flags", c.flags[fit.Color],
		"members", c.countMembers(fit.Color))
	return nil
}
