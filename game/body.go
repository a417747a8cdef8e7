package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize   = errors.New("body size must be positive")
	ErrMissingLimits = errors.New("velocity limits are missing")
	ErrInvertedRange = errors.New("velocity range min exceeds max")
)

// Size is the full extent of a body; Position is its center.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is the axis-aligned box of a body. Y grows downward, so Top < Bottom.
type Bounds struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Body is the kinematic state shared by the ball and the paddles.
type Body struct {
	Position Vector
	Velocity Vector
	Size     Size
	Limits   Limits
}

// NewBody validates size and limits and returns a body with the velocity
// already clamped.
func NewBody(pos, vel Vector, size Size, limits Limits) (Body, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return Body{}, fmt.Errorf("%w: %vx%v", ErrInvalidSize, size.Width, size.Height)
	}
	if limits.isZero() {
		return Body{}, ErrMissingLimits
	}
	if limits.X.Min > limits.X.Max || limits.Y.Min > limits.Y.Max {
		return Body{}, fmt.Errorf("%w: %+v", ErrInvertedRange, limits)
	}
	b := Body{Position: pos, Velocity: vel, Size: size, Limits: limits}
	b.ClampVelocity()
	return b, nil
}

// ClampVelocity forces each velocity axis into its configured range. Callers
// run it after every sequence of velocity mutations.
func (b *Body) ClampVelocity() {
	b.Velocity.X = b.Limits.X.clamp(b.Velocity.X)
	b.Velocity.Y = b.Limits.Y.clamp(b.Velocity.Y)
}

// Bounds derives the box around Position.
func (b *Body) Bounds() Bounds {
	hw, hh := b.Size.Width/2, b.Size.Height/2
	return Bounds{
		Top:    b.Position.Y - hh,
		Bottom: b.Position.Y + hh,
		Left:   b.Position.X - hw,
		Right:  b.Position.X + hw,
	}
}
