package game

// Vector is a mutable 2D value. Mutating methods work in place; use Copy to
// hand a value to something that must not alias it.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v *Vector) AddX(d float64)      { v.X += d }
func (v *Vector) SubtractX(d float64) { v.X -= d }
func (v *Vector) AddY(d float64)      { v.Y += d }
func (v *Vector) SubtractY(d float64) { v.Y -= d }

func (v *Vector) MultiplyX(f float64) { v.X *= f }
func (v *Vector) MultiplyY(f float64) { v.Y *= f }

func (v *Vector) InvertX() { v.X = -v.X }
func (v *Vector) InvertY() { v.Y = -v.Y }

// Copy returns an independent value.
func (v Vector) Copy() Vector { return Vector{X: v.X, Y: v.Y} }

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Symmetric returns [-limit, +limit].
func Symmetric(limit float64) Range {
	return Range{Min: -limit, Max: limit}
}

func (r Range) clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Limits are the per-axis velocity clamps of a body.
type Limits struct {
	X Range `json:"x"`
	Y Range `json:"y"`
}

func (l Limits) isZero() bool {
	return l == Limits{}
}
