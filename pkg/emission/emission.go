// Package emission provides the hierarchical emission-line configuration
// used to build spectral models.
//
// A parameter file lists emission groups. Each group contains species and
// each species contains lines. Order is significant on every level: the first
// species of a group and the first line of a species become anchors when
// redshift, dispersion and flux parameters are tied together.
//
// The configuration can be written in YAML:
//
//	version: v0.2.0
//	emission_groups:
//	  - name: Balmer
//	    tie_redshift: true
//	    tie_dispersion: true
//	    species:
//	      - name: HI
//	        flag: 0
//	        lines:
//	          - wavelength: 6564.61
//	            rel_strength: null
//	          - wavelength: 4862.68
//	            rel_strength: null
//
// or in HCL:
//
//	version = "v0.2.0"
//	group "Balmer" {
//	  tie_redshift   = true
//	  tie_dispersion = true
//	  species "HI" {
//	    flag = 0
//	    line { wavelength = 6564.61 }
//	    line { wavelength = 4862.68 }
//	  }
//	}
package emission

// ReservedGroup is the group name used for continuum parameters. Emission
// groups cannot use it.
const ReservedGroup = "Continuum"

// Hierarchy represents a complete emission-line parameter file.
type Hierarchy struct {
	// Version of the parameter-file format.
	Version string `yaml:"version" hcl:"version,optional"`

	// Groups is the ordered list of emission groups.
	Groups []Group `yaml:"emission_groups" hcl:"group,block"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Group      string // Name of the group
	Species    string // Name of the species, can be empty
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// Group is a set of species that may share redshift and dispersion.
type Group struct {
	// Name of the group, for example "Balmer" or "AGN".
	Name string `yaml:"name" hcl:"name,label"`

	// TieRedshift ties redshifts of all species in the group to the
	// first line of the group.
	TieRedshift bool `yaml:"tie_redshift" hcl:"tie_redshift,optional"`

	// TieDispersion ties dispersions of all species in the group to the
	// first line of the group.
	TieDispersion bool `yaml:"tie_dispersion" hcl:"tie_dispersion,optional"`

	// Species is the ordered list of species in the group.
	Species []Species `yaml:"species" hcl:"species,block"`
}

// Species is a named set of lines, usually a single ion.
type Species struct {
	// Name of the species, for example "[OIII]".
	Name string `yaml:"name" hcl:"name,label"`

	// Flag selects the profile. Non-negative values build the standard
	// spectral feature, negative values select an additional component.
	Flag int `yaml:"flag" hcl:"flag,optional"`

	// Lines is the ordered list of lines. Redshift and dispersion of every
	// line are tied to the first one.
	Lines []Line `yaml:"lines" hcl:"line,block"`
}

// Line is a single transition.
type Line struct {
	// Wavelength is the rest-frame wavelength in Angstrom.
	Wavelength float64 `yaml:"wavelength" hcl:"wavelength"`

	// RelStrength is the relative strength of the line within its species.
	// Lines with nil RelStrength are never tied on flux.
	RelStrength *float64 `yaml:"rel_strength" hcl:"rel_strength,optional"`
}

// LineRef is a line together with its position in the hierarchy.
type LineRef struct {
	Group   string
	Species string
	Flag    int
	Line
}

// Ratio returns a pointer to a relative strength value.
func Ratio(f float64) *float64 {
	return &f
}

// HasRatio returns true if the line takes part in flux tying.
func (l Line) HasRatio() bool {
	return l.RelStrength != nil
}

// IsAdditional returns true if the species uses an additional component
// instead of the standard spectral feature.
func (s Species) IsAdditional() bool {
	return s.Flag < 0
}

// Lines returns all lines of the hierarchy in configuration order.
func (h *Hierarchy) Lines() []LineRef {
	return Lines(h.Groups)
}

// Lines returns all lines of the groups in configuration order.
func Lines(groups []Group) []LineRef {
	var res []LineRef
	for _, g := range groups {
		for _, s := range g.Species {
			for _, l := range s.Lines {
				res = append(res, LineRef{
					Group:   g.Name,
					Species: s.Name,
					Flag:    s.Flag,
					Line:    l,
				})
			}
		}
	}
	return res
}

// Wavelengths returns rest wavelengths of all lines in configuration order.
func Wavelengths(groups []Group) []float64 {
	lines := Lines(groups)
	res := make([]float64, len(lines))
	for i := range lines {
		res[i] = lines[i].Wavelength
	}
	return res
}
