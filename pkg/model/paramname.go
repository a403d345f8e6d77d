package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theskyentist/gelato/pkg/emission"
)

// Canonical parameter roles.
const (
	RoleRedshift    = "Redshift"
	RoleDispersion  = "Dispersion"
	RoleFlux        = "Flux"
	RoleCoefficient = "Coefficient"
	RoleIndex       = "Index"
)

// ParamName is a structured identifier of one slot of the parameter vector.
type ParamName struct {
	Group      string
	Species    string
	Wavelength float64
	Role       string
}

// String flattens the name to Group-Species-Wavelength-Role.
func (p ParamName) String() string {
	return p.Prefix() + p.Role
}

// Prefix returns the line part of the name including the trailing dash.
func (p ParamName) Prefix() string {
	w := strconv.FormatFloat(p.Wavelength, 'f', -1, 64)
	return p.Group + "-" + p.Species + "-" + w + "-"
}

// IsContinuum returns true for parameters of continuum components.
func (p ParamName) IsContinuum() bool {
	return p.Group == emission.ReservedGroup
}

// ParseParamName converts a flattened name back to its parts.
func ParseParamName(s string) (ParamName, error) {
	var res ParamName
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return res, fmt.Errorf("parameter name '%s' must have 4 parts", s)
	}
	w, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return res, fmt.Errorf("parameter name '%s': bad wavelength: %w", s, err)
	}
	res = ParamName{
		Group:      parts[0],
		Species:    parts[1],
		Wavelength: w,
		Role:       parts[3],
	}
	return res, nil
}

// lineName returns the name of a role for a line of the hierarchy.
func lineName(g, s string, wavelength float64, role string) ParamName {
	return ParamName{Group: g, Species: s, Wavelength: wavelength, Role: role}
}

// qualify prefixes unqualified roles of a component with the line location.
func qualify(g, s string, wavelength float64, roles []string) []ParamName {
	res := make([]ParamName, len(roles))
	for i, r := range roles {
		res[i] = lineName(g, s, wavelength, r)
	}
	return res
}

// continuumName returns the name of a role of the i-th continuum region.
func continuumName(i int, center float64, role string) ParamName {
	return ParamName{
		Group:      emission.ReservedGroup,
		Species:    fmt.Sprintf("Region%d", i+1),
		Wavelength: math.Round(center*100) / 100,
		Role:       role,
	}
}
