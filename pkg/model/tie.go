package model

// Tie pins a parameter to the value of another parameter of the same
// model multiplied by Scale. Tie is a value, it never changes after it is
// created.
type Tie struct {
	// Source is the index of the reference parameter.
	Source int
	// Scale multiplies the reference value.
	Scale float64
}

// MakeTie returns a tie that follows the source parameter exactly.
func MakeTie(source int) Tie {
	return MakeScaledTie(source, 1)
}

// MakeScaledTie returns a tie that follows the source parameter
// multiplied by scale.
func MakeScaledTie(source int, scale float64) Tie {
	return Tie{Source: source, Scale: scale}
}

// Apply returns the value the tied parameter takes for a parameter vector.
func (t Tie) Apply(params []float64) float64 {
	return params[t.Source] * t.Scale
}

// shift moves the source when the parameter vector gets a prefix.
func (t Tie) shift(offset int) Tie {
	t.Source += offset
	return t
}
