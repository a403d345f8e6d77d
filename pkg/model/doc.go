// Package model builds composite spectral models and ties their parameters.
//
// A model is a Compound: an ordered concatenation of stateless components
// (line profiles and continua) over one flat parameter vector. Every slot of
// the vector has a qualified name
//
//	Group-Species-Wavelength-Role
//
// for example "AGN-[OIII]-5008.24-Flux". Continuum parameters use the
// reserved group "Continuum" and one pseudo-species per fitting region.
//
// Some parameters are not free. A Tie pins a parameter to another one,
// optionally multiplied by a fixed scale. Ties are created while walking the
// emission hierarchy:
//
//   - the first line of a group is the group anchor, redshift and
//     dispersion of other group members follow it when the group enables
//     TieRedshift or TieDispersion;
//   - the first line of a species is the species anchor, redshift and
//     dispersion of other lines of the species always follow it, this takes
//     precedence over group ties;
//   - the first line of a species with a relative strength is the flux
//     reference, other lines with a relative strength follow its flux scaled
//     by the ratio of strengths;
//   - all continuum redshifts follow the first continuum redshift.
//
// A tie may only point to a parameter with a smaller index, so resolving
// ties in index order always sees final anchor values.
//
// This is a pure package, it performs no I/O.
package model
