package model

import (
	"github.com/theskyentist/gelato/pkg/spectrum"
)

// BuildContinuum creates one power-law component per fitting region of
// the spectrum. All continuum redshifts follow the first one.
func BuildContinuum(spec *spectrum.Spectrum) (*Compound, error) {
	if err := checkContext(spec); err != nil {
		return nil, err
	}

	parts := make([]*Compound, 0, len(spec.Regions))
	for i, r := range spec.Regions {
		c, roles := newContinuum(r, spec)
		names := make([]ParamName, len(roles))
		for j, role := range roles {
			names[j] = continuumName(i, r.Center(), role)
		}
		part, err := New(c, names)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	res, err := Reduce(parts)
	if err != nil {
		return nil, err
	}
	if err = TieContinuum(res); err != nil {
		return nil, err
	}
	return res, nil
}

// BuildModel merges continuum and emission into the final model. The
// parameter vector is the continuum vector followed by the emission vector
// and emission ties keep pointing to the same parameters.
func BuildModel(continuum, emission *Compound) (*Compound, error) {
	return Sum(continuum, emission)
}

// Build creates the final model of a spectrum from its regions and
// emission groups.
func Build(spec *spectrum.Spectrum, opts ...Option) (*Compound, error) {
	cont, err := BuildContinuum(spec)
	if err != nil {
		return nil, err
	}
	em, _, err := BuildEmission(spec, opts...)
	if err != nil {
		return nil, err
	}
	return BuildModel(cont, em)
}
