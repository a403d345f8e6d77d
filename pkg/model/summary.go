package model

// Row describes one parameter of a model.
type Row struct {
	Name       string  `json:"name"`
	Group      string  `json:"group"`
	Species    string  `json:"species"`
	Wavelength float64 `json:"wavelength"`
	Role       string  `json:"role"`
	// Value is the parameter value with ties applied.
	Value float64 `json:"value"`
	// TiedTo is the name of the source parameter, empty for free ones.
	TiedTo string  `json:"tiedTo,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Free   bool    `json:"free"`
}

// Summary returns a row for every parameter in vector order.
func Summary(m *Compound) []Row {
	vals := m.Resolved()
	res := make([]Row, len(m.names))
	for i, n := range m.names {
		row := Row{
			Name:       n.String(),
			Group:      n.Group,
			Species:    n.Species,
			Wavelength: n.Wavelength,
			Role:       n.Role,
			Value:      vals[i],
			Free:       true,
		}
		if m.tied[i] {
			t := m.slots[i]
			row.TiedTo = m.names[t.Source].String()
			row.Scale = t.Scale
			row.Free = false
		}
		res[i] = row
	}
	return res
}
