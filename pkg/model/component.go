package model

import (
	"math"

	"github.com/theskyentist/gelato/pkg/spectrum"
)

// Component is a stateless sub-model. Its parameters live in the parameter
// vector of the Compound it belongs to.
type Component interface {
	// Name identifies the kind of the component.
	Name() string

	// ParamNames returns unqualified parameter roles in vector order.
	ParamNames() []string

	// Guess returns initial parameter values in vector order.
	Guess() []float64

	// Eval returns the component value at wavelength x, p is the
	// component's own slice of the parameter vector.
	Eval(p []float64, x float64) float64
}

// Kind is a line profile variant.
type Kind int

const (
	KindSpectralFeature Kind = iota
	KindBroad
	KindOutflow
	KindLorentzian
)

var kindNames = map[Kind]string{
	KindSpectralFeature: "SpectralFeature",
	KindBroad:           "Broad",
	KindOutflow:         "Outflow",
	KindLorentzian:      "Lorentzian",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var lineRoles = []string{RoleRedshift, RoleFlux, RoleDispersion}

// Feature is an emission line profile. Dispersion is a Gaussian sigma in
// km/s, or the half width at half maximum for Lorentzian profiles.
type Feature struct {
	Kind Kind
	// Center is the rest wavelength in Angstrom.
	Center float64
	init   []float64
}

// Name implements Component.
func (f *Feature) Name() string {
	return f.Kind.String()
}

// ParamNames implements Component.
func (f *Feature) ParamNames() []string {
	return append([]string(nil), lineRoles...)
}

// Guess implements Component.
func (f *Feature) Guess() []float64 {
	return append([]float64(nil), f.init...)
}

// Eval implements Component.
func (f *Feature) Eval(p []float64, x float64) float64 {
	z, flux, disp := p[0], p[1], p[2]
	mu := f.Center * (1 + z)
	width := disp / spectrum.C * mu
	if width <= 0 {
		return 0
	}
	d := x - mu
	if f.Kind == KindLorentzian {
		return flux * width / (math.Pi * (d*d + width*width))
	}
	return flux / (width * math.Sqrt(2*math.Pi)) *
		math.Exp(-0.5*d*d/(width*width))
}

// PowerLaw is the continuum of one fitting region:
// Coefficient * (x / (Reference*(1+Redshift)))^Index.
type PowerLaw struct {
	// Reference is the rest-frame pivot wavelength.
	Reference float64
	init      []float64
}

// Name implements Component.
func (c *PowerLaw) Name() string {
	return "PowerLaw"
}

// ParamNames implements Component.
func (c *PowerLaw) ParamNames() []string {
	return []string{RoleRedshift, RoleCoefficient, RoleIndex}
}

// Guess implements Component.
func (c *PowerLaw) Guess() []float64 {
	return append([]float64(nil), c.init...)
}

// Eval implements Component.
func (c *PowerLaw) Eval(p []float64, x float64) float64 {
	z, coef, index := p[0], p[1], p[2]
	pivot := c.Reference * (1 + z)
	if pivot <= 0 {
		return 0
	}
	return coef * math.Pow(x/pivot, index)
}
