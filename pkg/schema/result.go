package schema

import (
	"github.com/gnames/gnuuid"
	"github.com/theskyentist/gelato/pkg/model"
	"github.com/theskyentist/gelato/pkg/spectrum"
)

// SpectrumID returns the deterministic ID of a spectrum within a run.
func SpectrumID(runID, path string) string {
	return gnuuid.New(runID + "|" + path).String()
}

// NewResult converts a built model to storage records.
func NewResult(
	runID, path string,
	spec *spectrum.Spectrum,
	m *model.Compound,
) *Result {
	id := SpectrumID(runID, path)
	rows := model.Summary(m)
	res := &Result{
		Spectrum: SpectrumRecord{
			ID:           id,
			RunID:        runID,
			Path:         path,
			Redshift:     spec.Redshift,
			Pixels:       len(spec.Wav),
			Regions:      len(spec.Regions),
			Components:   m.NComponents(),
			Params:       m.NParams(),
			FreeParams:   len(m.Free()),
			DroppedLines: len(spec.Dropped),
		},
		Parameters: make([]ParameterRecord, len(rows)),
	}
	for i, r := range rows {
		res.Parameters[i] = ParameterRecord{
			SpectrumID: id,
			Position:   i,
			Name:       r.Name,
			GroupName:  r.Group,
			Species:    r.Species,
			Wavelength: r.Wavelength,
			Role:       r.Role,
			Value:      r.Value,
			TiedTo:     r.TiedTo,
			Scale:      r.Scale,
			Free:       r.Free,
		}
	}
	return res
}

// Values returns column values of a parameter in Columns order.
func (p ParameterRecord) Values() []any {
	return []any{
		p.SpectrumID, p.Position, p.Name, p.GroupName, p.Species,
		p.Wavelength, p.Role, p.Value, p.TiedTo, p.Scale, p.Free,
	}
}

// Values returns column values of a spectrum in Columns order.
func (s SpectrumRecord) Values() []any {
	return []any{
		s.ID, s.RunID, s.Path, s.Redshift, s.Pixels, s.Regions,
		s.Components, s.Params, s.FreeParams, s.DroppedLines,
	}
}

// Values returns column values of a run in Columns order.
func (r Run) Values() []any {
	return []any{
		r.ID, r.Version, r.ParamsPath, r.ParamsVersion, r.LineRegion,
		r.StartedAt,
	}
}
