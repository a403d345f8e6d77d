package model

import (
	"github.com/theskyentist/gelato/pkg/emission"
)

// anchor keeps indices of the redshift and dispersion of a scope's first
// line.
type anchor struct {
	redshift   int
	dispersion int
}

// fluxRef is the flux reference of a species.
type fluxRef struct {
	index int
	ratio float64
}

// scopeState is the state of the hierarchy walk. Group is reset on every
// group, species and flux on every species.
type scopeState struct {
	group   *anchor
	species *anchor
	flux    *fluxRef
}

// TieParams ties continuum redshifts and emission parameters of the model.
// The model is changed only if all ties were created successfully.
func TieParams(m *Compound, groups []emission.Group) error {
	ties := make(map[string]Tie)
	for k, t := range continuumTies(m) {
		ties[k] = t
	}
	em, err := emissionTies(m, groups)
	if err != nil {
		return err
	}
	for k, t := range em {
		ties[k] = t
	}
	return m.AddTies(ties)
}

// TieContinuum ties every continuum redshift to the first one.
func TieContinuum(m *Compound) error {
	return m.AddTies(continuumTies(m))
}

// TieEmission ties redshift, dispersion and flux parameters of emission
// lines according to the groups. On error the model is not changed.
func TieEmission(m *Compound, groups []emission.Group) error {
	ties, err := emissionTies(m, groups)
	if err != nil {
		return err
	}
	return m.AddTies(ties)
}

func continuumTies(m *Compound) map[string]Tie {
	res := make(map[string]Tie)
	first := -1
	for i, n := range m.names {
		if !n.IsContinuum() || n.Role != RoleRedshift {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		res[n.String()] = MakeTie(first)
	}
	return res
}

func emissionTies(
	m *Compound,
	groups []emission.Group,
) (map[string]Tie, error) {
	res := make(map[string]Tie)
	lookup := func(n ParamName) (int, error) {
		if i, ok := m.index[n.String()]; ok {
			return i, nil
		}
		return 0, MissingParamError(n.String())
	}

	for _, g := range groups {
		var st scopeState
		for _, sp := range g.Species {
			st.species, st.flux = nil, nil
			for _, l := range sp.Lines {
				z := lineName(g.Name, sp.Name, l.Wavelength, RoleRedshift)
				d := lineName(g.Name, sp.Name, l.Wavelength, RoleDispersion)
				zi, err := lookup(z)
				if err != nil {
					return nil, err
				}
				di, err := lookup(d)
				if err != nil {
					return nil, err
				}

				if st.group == nil {
					st.group = &anchor{redshift: zi, dispersion: di}
				} else {
					if g.TieRedshift {
						res[z.String()] = MakeTie(st.group.redshift)
					}
					if g.TieDispersion {
						res[d.String()] = MakeTie(st.group.dispersion)
					}
				}

				if st.species == nil {
					st.species = &anchor{redshift: zi, dispersion: di}
				} else {
					res[z.String()] = MakeTie(st.species.redshift)
					res[d.String()] = MakeTie(st.species.dispersion)
				}

				if !l.HasRatio() {
					continue
				}
				f := lineName(g.Name, sp.Name, l.Wavelength, RoleFlux)
				fi, err := lookup(f)
				if err != nil {
					return nil, err
				}
				if st.flux == nil {
					st.flux = &fluxRef{index: fi, ratio: *l.RelStrength}
					continue
				}
				if st.flux.ratio == 0 {
					return nil, FluxReferenceError(sp.Name, l.Wavelength)
				}
				res[f.String()] = MakeScaledTie(
					st.flux.index, *l.RelStrength/st.flux.ratio,
				)
			}
		}
	}
	return res, nil
}
