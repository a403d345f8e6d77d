package model

import (
	"maps"
	"slices"
)

// Compound is an ordered sum of components sharing one flat parameter
// vector. The slice of every component starts at its offset, in insertion
// order. Ties are kept by qualified parameter name and mirrored by
// position for evaluation.
type Compound struct {
	components []Component
	offsets    []int
	params     []float64
	names      []ParamName
	index      map[string]int
	ties       map[string]Tie
	// slots[i] is the tie of the i-th parameter, valid when tied[i].
	slots []Tie
	tied  []bool
}

// New creates a compound of a single component. Names must match
// component's parameters one to one. Parameters start at the component's
// initial guess.
func New(c Component, names []ParamName) (*Compound, error) {
	guess := c.Guess()
	if len(names) != len(guess) || len(c.ParamNames()) != len(guess) {
		return nil, ParamCountError(len(guess), len(names))
	}
	res := &Compound{
		components: []Component{c},
		offsets:    []int{0},
		params:     guess,
		names:      slices.Clone(names),
		index:      make(map[string]int, len(names)),
		ties:       make(map[string]Tie),
		slots:      make([]Tie, len(names)),
		tied:       make([]bool, len(names)),
	}
	for i, n := range names {
		k := n.String()
		if _, ok := res.index[k]; ok {
			return nil, DuplicateParamError(k)
		}
		res.index[k] = i
	}
	return res, nil
}

// Sum concatenates two compounds into a new one. Parameters of b follow
// parameters of a and ties of b are moved accordingly. Inputs are not
// changed.
func Sum(a, b *Compound) (*Compound, error) {
	n := len(a.params)
	res := &Compound{
		components: slices.Concat(a.components, b.components),
		params:     slices.Concat(a.params, b.params),
		names:      slices.Concat(a.names, b.names),
		index:      maps.Clone(a.index),
		ties:       maps.Clone(a.ties),
		slots:      slices.Clone(a.slots),
		tied:       slices.Concat(a.tied, b.tied),
	}
	for _, t := range b.slots {
		res.slots = append(res.slots, t.shift(n))
	}
	res.offsets = slices.Clone(a.offsets)
	for _, o := range b.offsets {
		res.offsets = append(res.offsets, o+n)
	}
	for k, i := range b.index {
		if _, ok := res.index[k]; ok {
			return nil, DuplicateParamError(k)
		}
		res.index[k] = i + n
	}
	for k, t := range b.ties {
		res.ties[k] = t.shift(n)
	}
	return res, nil
}

// Reduce sums compounds pairwise keeping their order.
func Reduce(parts []*Compound) (*Compound, error) {
	if len(parts) == 0 {
		return nil, EmptyModelError("components")
	}
	res := parts[0]
	var err error
	for _, p := range parts[1:] {
		if res, err = Sum(res, p); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// NParams returns the size of the parameter vector.
func (m *Compound) NParams() int {
	return len(m.params)
}

// NComponents returns the number of components.
func (m *Compound) NComponents() int {
	return len(m.components)
}

// Component returns the i-th component and the bounds of its parameter
// slice.
func (m *Compound) Component(i int) (Component, int, int) {
	lo := m.offsets[i]
	hi := lo + len(m.components[i].ParamNames())
	return m.components[i], lo, hi
}

// Names returns structured names aligned with the parameter vector.
func (m *Compound) Names() []ParamName {
	return slices.Clone(m.names)
}

// Keys returns flattened names aligned with the parameter vector.
func (m *Compound) Keys() []string {
	res := make([]string, len(m.names))
	for i, n := range m.names {
		res[i] = n.String()
	}
	return res
}

// Index returns the position of a named parameter.
func (m *Compound) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Params returns a copy of the parameter vector.
func (m *Compound) Params() []float64 {
	return slices.Clone(m.params)
}

// SetParams replaces the parameter vector.
func (m *Compound) SetParams(p []float64) error {
	if len(p) != len(m.params) {
		return ParamCountError(len(m.params), len(p))
	}
	copy(m.params, p)
	return nil
}

// SetParam changes one named parameter.
func (m *Compound) SetParam(name string, v float64) error {
	i, ok := m.index[name]
	if !ok {
		return MissingParamError(name)
	}
	m.params[i] = v
	return nil
}

// Tie returns the tie of a parameter, ok is false for free parameters.
func (m *Compound) Tie(name string) (Tie, bool) {
	t, ok := m.ties[name]
	return t, ok
}

// Ties returns a copy of the tie table.
func (m *Compound) Ties() map[string]Tie {
	return maps.Clone(m.ties)
}

// Free returns indices of parameters without ties.
func (m *Compound) Free() []int {
	var res []int
	for i, ok := range m.tied {
		if !ok {
			res = append(res, i)
		}
	}
	return res
}

// AddTies validates ties and adds them to the tie table. Either all ties
// are added or, on error, the table stays unchanged.
func (m *Compound) AddTies(ties map[string]Tie) error {
	for _, k := range slices.Sorted(maps.Keys(ties)) {
		i, ok := m.index[k]
		if !ok {
			return MissingParamError(k)
		}
		t := ties[k]
		if t.Source < 0 || t.Source >= i {
			return InvalidTieError(k, t.Source)
		}
	}
	for k, t := range ties {
		m.ties[k] = t
		i := m.index[k]
		m.slots[i], m.tied[i] = t, true
	}
	return nil
}

// Resolved returns the parameter vector with ties applied. Ties only
// point backwards, so a single pass in index order resolves chains.
func (m *Compound) Resolved() []float64 {
	res := slices.Clone(m.params)
	for i, ok := range m.tied {
		if ok {
			res[i] = m.slots[i].Apply(res)
		}
	}
	return res
}

// Evaluate returns the model flux for every wavelength.
func (m *Compound) Evaluate(wav []float64) []float64 {
	p := m.Resolved()
	res := make([]float64, len(wav))
	for i, c := range m.components {
		lo := m.offsets[i]
		cp := p[lo : lo+len(c.ParamNames())]
		for j, x := range wav {
			res[j] += c.Eval(cp, x)
		}
	}
	return res
}
