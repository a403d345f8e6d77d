package emission

import (
	"fmt"
	"strings"
)

// Validate checks the hierarchy for errors and collects warnings.
// Warnings from previous calls are discarded.
func (h *Hierarchy) Validate() error {
	h.Warnings = nil
	if len(h.Groups) == 0 {
		return fmt.Errorf("no emission groups specified in configuration")
	}

	groups := make(map[string]struct{})
	for i := range h.Groups {
		g := &h.Groups[i]
		if _, ok := groups[g.Name]; ok {
			return fmt.Errorf("group %d: duplicate group name '%s'", i+1, g.Name)
		}
		groups[g.Name] = struct{}{}

		warnings, err := g.Validate()
		if err != nil {
			return fmt.Errorf("group %d: %w", i+1, err)
		}
		h.Warnings = append(h.Warnings, warnings...)
	}

	return nil
}

// Validate checks a single group. It returns non-fatal warnings and an error
// for fatal issues.
func (g *Group) Validate() ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	if err := checkName(g.Name); err != nil {
		return nil, fmt.Errorf("group name: %w", err)
	}
	if g.Name == ReservedGroup {
		return nil, fmt.Errorf("group name '%s' is reserved for continuum", g.Name)
	}
	if len(g.Species) == 0 {
		return nil, fmt.Errorf("group '%s' has no species", g.Name)
	}

	if len(g.Species) == 1 && (g.TieRedshift || g.TieDispersion) {
		warnings = append(warnings, ValidationWarning{
			Group:      g.Name,
			Message:    "group ties have no effect with a single species",
			Suggestion: "Add species to the group or remove tie_redshift/tie_dispersion",
		})
	}

	species := make(map[string]struct{})
	for i := range g.Species {
		s := &g.Species[i]
		if err := checkName(s.Name); err != nil {
			return nil, fmt.Errorf("species %d of group '%s': %w", i+1, g.Name, err)
		}
		if _, ok := species[s.Name]; ok {
			return nil, fmt.Errorf("group '%s': duplicate species name '%s'",
				g.Name, s.Name)
		}
		species[s.Name] = struct{}{}

		ws, err := s.validate(g.Name)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, ws...)
	}

	return warnings, nil
}

func (s *Species) validate(group string) ([]ValidationWarning, error) {
	var warnings []ValidationWarning
	if len(s.Lines) == 0 {
		return nil, fmt.Errorf("species '%s' of group '%s' has no lines",
			s.Name, group)
	}

	waves := make(map[float64]struct{})
	var ratios int
	for i, l := range s.Lines {
		if l.Wavelength <= 0 {
			return nil, fmt.Errorf(
				"line %d of species '%s': wavelength must be positive, got %g",
				i+1, s.Name, l.Wavelength,
			)
		}
		if _, ok := waves[l.Wavelength]; ok {
			return nil, fmt.Errorf(
				"species '%s': duplicate line wavelength %g",
				s.Name, l.Wavelength,
			)
		}
		waves[l.Wavelength] = struct{}{}

		if l.RelStrength == nil {
			continue
		}
		if *l.RelStrength < 0 {
			return nil, fmt.Errorf(
				"line %g of species '%s': rel_strength cannot be negative",
				l.Wavelength, s.Name,
			)
		}
		if ratios == 0 && *l.RelStrength == 0 {
			return nil, fmt.Errorf(
				"line %g of species '%s': flux reference line cannot have "+
					"zero rel_strength",
				l.Wavelength, s.Name,
			)
		}
		ratios++
	}

	if ratios == 1 {
		warnings = append(warnings, ValidationWarning{
			Group:      group,
			Species:    s.Name,
			Message:    "only one line has rel_strength, flux is not tied",
			Suggestion: "Set rel_strength on more lines or remove it",
		})
	}

	return warnings, nil
}

// checkName makes sure the name is usable as a part of parameter names.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.Contains(name, "-") {
		return fmt.Errorf("name '%s' cannot contain '-'", name)
	}
	return nil
}
