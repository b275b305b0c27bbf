package photometry

import "math"

// BadMag is the sentinel magnitude written for non-detections, matching
// the convention used by the catalog formats this tool consumes.
const BadMag = -99.0

// BadMagError is the sentinel magnitude error for unusable measurements.
const BadMagError = 99.0

// FluxToMag converts a flux to a magnitude with the given zeropoint.
// Non-positive fluxes cannot be converted and yield the BadMag sentinel.
func FluxToMag(flux, zeropoint float64) float64 {
	if flux <= 0 {
		return BadMag
	}
	return -2.5*math.Log10(flux) + zeropoint
}

// RelativeFluxErrToMagErr converts a relative (fractional) flux error to a
// magnitude error:
//
//	m = -2.5 log10(F) + C
//	dm = (2.5 / ln 10) dF/F
//
// Negative relative errors mark bad measurements and yield BadMagError.
func RelativeFluxErrToMagErr(relativeErr float64) float64 {
	if relativeErr < 0 {
		return BadMagError
	}
	return (2.5 / math.Ln10) * relativeErr
}

// Color forms the difference of two band magnitudes. Errors add in
// quadrature since the band measurements are independent.
func Color(blue, red Measurement) Measurement {
	return Measurement{
		Value: blue.Value - red.Value,
		Error: math.Sqrt(blue.Error*blue.Error + red.Error*red.Error),
	}
}
