// Package spectrum provides the spectrum context used for model
// construction: data arrays, redshift, fitting regions and the emission-line
// hierarchy that applies to the spectrum.
//
// This is a pure package, reading spectra from files is done by iospec.
package spectrum

import (
	"fmt"
	"math"
	"slices"

	"github.com/theskyentist/gelato/pkg/emission"
)

// C is the speed of light in km/s.
const C = 299_792.458

// minRegionPoints is the smallest number of pixels a region must hold.
const minRegionPoints = 3

// Region is a fitting window in the observed frame.
type Region struct {
	Lo float64
	Hi float64
}

// Contains returns true if x is inside of the region.
func (r Region) Contains(x float64) bool {
	return x >= r.Lo && x <= r.Hi
}

// Center returns the middle of the region.
func (r Region) Center() float64 {
	return (r.Lo + r.Hi) / 2
}

// Spectrum is an immutable view of the data a model is built for.
type Spectrum struct {
	// Wav is the observed wavelength in Angstrom, strictly increasing.
	Wav []float64
	// Flux is the flux density for every wavelength.
	Flux []float64
	// Sigma is the flux uncertainty for every wavelength.
	Sigma []float64
	// Redshift is the initial redshift of the object.
	Redshift float64
	// Regions are the fitting regions in the observed frame, sorted.
	Regions []Region
	// Groups are the emission groups covered by the data.
	Groups []emission.Group
	// Dropped are the lines that fall outside of the data coverage.
	Dropped []emission.LineRef
}

// New validates data and creates a Spectrum. Regions are computed from
// rest wavelengths of all lines, lineRegion is the rest-frame half-width
// of a region in Angstrom. Lines outside of covered regions are removed
// from the spectrum's copy of the hierarchy.
func New(
	wav, flux, sigma []float64,
	z float64,
	groups []emission.Group,
	lineRegion float64,
) (*Spectrum, error) {
	if len(wav) == 0 {
		return nil, fmt.Errorf("spectrum has no data")
	}
	if len(flux) != len(wav) || len(sigma) != len(wav) {
		return nil, fmt.Errorf(
			"array lengths differ: wavelength %d, flux %d, sigma %d",
			len(wav), len(flux), len(sigma),
		)
	}
	for i := 1; i < len(wav); i++ {
		if wav[i] <= wav[i-1] {
			return nil, fmt.Errorf(
				"wavelength must increase, row %d has %g after %g",
				i+1, wav[i], wav[i-1],
			)
		}
	}
	for i, s := range sigma {
		if s <= 0 || math.IsNaN(s) {
			return nil, fmt.Errorf("sigma must be positive, row %d has %g", i+1, s)
		}
	}
	if z <= -1 || math.IsNaN(z) {
		return nil, fmt.Errorf("invalid redshift %g", z)
	}
	if lineRegion <= 0 {
		return nil, fmt.Errorf("line region must be positive, got %g", lineRegion)
	}

	res := &Spectrum{
		Wav:      slices.Clone(wav),
		Flux:     slices.Clone(flux),
		Sigma:    slices.Clone(sigma),
		Redshift: z,
	}
	res.Regions = res.regions(emission.Wavelengths(groups), lineRegion)
	res.Groups, res.Dropped = res.covered(groups)
	if len(res.Groups) == 0 {
		return nil, fmt.Errorf("no emission lines fall inside of the spectrum")
	}
	return res, nil
}

// Observed converts a rest-frame wavelength to the observed frame.
func (s *Spectrum) Observed(rest float64) float64 {
	return rest * (1 + s.Redshift)
}

// InRegions returns true if an observed wavelength is inside of any region.
func (s *Spectrum) InRegions(x float64) bool {
	for _, r := range s.Regions {
		if r.Contains(x) {
			return true
		}
	}
	return false
}

// Indices returns indices of pixels inside of the region.
func (s *Spectrum) Indices(r Region) []int {
	var res []int
	for i, x := range s.Wav {
		if r.Contains(x) {
			res = append(res, i)
		}
	}
	return res
}

// Median returns the median flux inside of the region.
func (s *Spectrum) Median(r Region) float64 {
	idx := s.Indices(r)
	if len(idx) == 0 {
		return 0
	}
	vals := make([]float64, len(idx))
	for i, v := range idx {
		vals[i] = s.Flux[v]
	}
	slices.Sort(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

// Peak returns the largest flux inside of the observed window
// [x-half, x+half] above the median of the enclosing region.
func (s *Spectrum) Peak(x, half float64) float64 {
	var base float64
	for _, r := range s.Regions {
		if r.Contains(x) {
			base = s.Median(r)
			break
		}
	}
	var res float64
	for i, w := range s.Wav {
		if w < x-half || w > x+half {
			continue
		}
		res = max(res, s.Flux[i]-base)
	}
	return res
}

func (s *Spectrum) regions(rest []float64, half float64) []Region {
	lo, hi := s.Wav[0], s.Wav[len(s.Wav)-1]
	var rr []Region
	for _, w := range rest {
		r := Region{Lo: s.Observed(w - half), Hi: s.Observed(w + half)}
		r.Lo, r.Hi = max(r.Lo, lo), min(r.Hi, hi)
		if r.Hi <= r.Lo {
			continue
		}
		rr = append(rr, r)
	}
	slices.SortFunc(rr, func(a, b Region) int {
		switch {
		case a.Lo < b.Lo:
			return -1
		case a.Lo > b.Lo:
			return 1
		}
		return 0
	})

	var res []Region
	for _, r := range rr {
		if n := len(res); n > 0 && r.Lo <= res[n-1].Hi {
			res[n-1].Hi = max(res[n-1].Hi, r.Hi)
			continue
		}
		res = append(res, r)
	}

	return slices.DeleteFunc(res, func(r Region) bool {
		return len(s.Indices(r)) < minRegionPoints
	})
}

// covered copies groups keeping only lines inside of regions. Species and
// groups left without lines are removed.
func (s *Spectrum) covered(
	groups []emission.Group,
) ([]emission.Group, []emission.LineRef) {
	var res []emission.Group
	var dropped []emission.LineRef
	for _, g := range groups {
		gc := g
		gc.Species = nil
		for _, sp := range g.Species {
			sc := sp
			sc.Lines = nil
			for _, l := range sp.Lines {
				if s.InRegions(s.Observed(l.Wavelength)) {
					sc.Lines = append(sc.Lines, l)
					continue
				}
				dropped = append(dropped, emission.LineRef{
					Group: g.Name, Species: sp.Name, Flag: sp.Flag, Line: l,
				})
			}
			if len(sc.Lines) > 0 {
				gc.Species = append(gc.Species, sc)
			}
		}
		if len(gc.Species) > 0 {
			res = append(res, gc)
		}
	}
	return res, dropped
}
