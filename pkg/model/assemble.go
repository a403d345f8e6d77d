package model

import (
	"github.com/theskyentist/gelato/pkg/emission"
	"github.com/theskyentist/gelato/pkg/spectrum"
)

type builder struct {
	groups []emission.Group
}

// Option changes how the emission model is built.
type Option func(*builder)

// OptGroups replaces the emission groups of the spectrum.
func OptGroups(groups []emission.Group) Option {
	return func(b *builder) {
		b.groups = groups
	}
}

// BuildEmission creates one component per line of the emission groups,
// sums them in configuration order and ties their parameters. It returns
// the model and flattened names aligned with its parameter vector.
func BuildEmission(
	spec *spectrum.Spectrum,
	opts ...Option,
) (*Compound, []string, error) {
	if err := checkContext(spec); err != nil {
		return nil, nil, err
	}
	b := builder{groups: spec.Groups}
	for _, opt := range opts {
		opt(&b)
	}

	var parts []*Compound
	for _, l := range emission.Lines(b.groups) {
		c, roles, err := NewFeature(l.Wavelength, l.Flag, spec)
		if err != nil {
			return nil, nil, err
		}
		part, err := New(c, qualify(l.Group, l.Species, l.Wavelength, roles))
		if err != nil {
			return nil, nil, err
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil, nil, EmptyModelError("emission lines")
	}

	res, err := Reduce(parts)
	if err != nil {
		return nil, nil, err
	}
	if err = TieParams(res, b.groups); err != nil {
		return nil, nil, err
	}
	return res, res.Keys(), nil
}
