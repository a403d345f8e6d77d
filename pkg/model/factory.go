package model

import (
	"math"

	"github.com/theskyentist/gelato/pkg/spectrum"
)

// Initial dispersions in km/s.
const (
	dispersionNarrow  = 100.0
	dispersionBroad   = 1_000.0
	dispersionOutflow = 500.0
)

// outflowVelocity is the initial blueshift of outflow components in km/s.
const outflowVelocity = -300.0

// additional maps negative species flags to additional components.
var additional = map[int]Kind{
	-1: KindBroad,
	-2: KindOutflow,
	-3: KindLorentzian,
}

// NewFeature creates the component for one line and returns it together
// with its unqualified parameter names. Non-negative flags produce the
// standard spectral feature, negative flags select an additional component.
func NewFeature(
	wavelength float64,
	flag int,
	spec *spectrum.Spectrum,
) (Component, []string, error) {
	if err := checkContext(spec); err != nil {
		return nil, nil, err
	}

	kind := KindSpectralFeature
	if flag < 0 {
		var ok bool
		if kind, ok = additional[flag]; !ok {
			return nil, nil, UnknownComponentError(flag, wavelength)
		}
	}

	res := &Feature{Kind: kind, Center: wavelength}
	res.init = guessLine(kind, wavelength, spec)
	return res, res.ParamNames(), nil
}

// newContinuum creates the continuum component for a region.
func newContinuum(
	r spectrum.Region,
	spec *spectrum.Spectrum,
) (Component, []string) {
	res := &PowerLaw{Reference: r.Center() / (1 + spec.Redshift)}
	res.init = []float64{spec.Redshift, spec.Median(r), 0}
	return res, res.ParamNames()
}

func guessLine(kind Kind, wavelength float64, spec *spectrum.Spectrum) []float64 {
	z := spec.Redshift
	disp := dispersionNarrow
	switch kind {
	case KindBroad:
		disp = dispersionBroad
	case KindOutflow:
		disp = dispersionOutflow
		z = (1+z)*(1+outflowVelocity/spectrum.C) - 1
	}

	obs := wavelength * (1 + z)
	width := disp / spectrum.C * obs
	height := spec.Peak(obs, 3*width)

	flux := height * width * math.Sqrt(2*math.Pi)
	if kind == KindLorentzian {
		flux = height * width * math.Pi
	}
	return []float64{z, flux, disp}
}

func checkContext(spec *spectrum.Spectrum) error {
	switch {
	case spec == nil:
		return SpectrumContextError("spectrum")
	case len(spec.Wav) == 0:
		return SpectrumContextError("wavelength")
	case len(spec.Flux) != len(spec.Wav):
		return SpectrumContextError("flux")
	case len(spec.Regions) == 0:
		return SpectrumContextError("regions")
	}
	return nil
}
