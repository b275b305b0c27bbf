// Package photometry provides the value types and magnitude conversions
// shared by the catalog reader and the fitting pipeline.
package photometry

import "fmt"

// Measurement is a value with a symmetric 1-sigma error, typically a
// magnitude or a color.
type Measurement struct {
	Value float64
	Error float64
}

// AsymmetricValue is a value with independent upper and lower 1-sigma
// errors. Redshift fits produce these because the chi-squared bounds are
// generally not symmetric around the minimum.
type AsymmetricValue struct {
	Value      float64
	UpperError float64
	LowerError float64
}

// Upper returns the value shifted up by the upper error.
func (a AsymmetricValue) Upper() float64 {
	return a.Value + a.UpperError
}

// Lower returns the value shifted down by the lower error.
func (a AsymmetricValue) Lower() float64 {
	return a.Value - a.LowerError
}

func (a AsymmetricValue) String() string {
	return fmt.Sprintf("%.3f +%.3f -%.3f", a.Value, a.UpperError, a.LowerError)
}
