package game

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Tuning constants; not configurable at runtime.
const (
	DefaultBallSpeed          = 3.0
	DefaultPlayerSpeed        = 3.0
	DefaultPlayerAcceleration = 0.5
	BallHitMultiplier         = 2.0
	ReboundMultiplier         = 1.5
	ReboundKick               = 3.5
	PlayerFriction            = 0.9
)

// Config is the static field geometry. The simulation reads it and never
// writes to it.
type Config struct {
	Field        Size   `json:"field"`
	Paddle       Size   `json:"paddle"`
	Dash         Size   `json:"dash"`
	Ball         Size   `json:"ball"`
	BallLimits   Limits `json:"ballLimits"`
	PlayerLimits Limits `json:"playerLimits"`
	// PaddleInset is the distance from a field end to the paddle center.
	PaddleInset float64 `json:"paddleInset"`
}

func DefaultConfig() Config {
	return Config{
		Field:        Size{Width: 340, Height: 600},
		Paddle:       Size{Width: 85, Height: 12},
		Dash:         Size{Width: 10, Height: 3},
		Ball:         Size{Width: 10, Height: 10},
		BallLimits:   Limits{X: Symmetric(12), Y: Symmetric(16)},
		PlayerLimits: Limits{X: Symmetric(8), Y: Range{}},
		PaddleInset:  30,
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	checkSize := func(name string, s Size) {
		if s.Width <= 0 || s.Height <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s: %w", name, ErrInvalidSize))
		}
	}
	checkSize("field", c.Field)
	checkSize("paddle", c.Paddle)
	checkSize("dash", c.Dash)
	checkSize("ball", c.Ball)
	if c.BallLimits.isZero() {
		err = multierr.Append(err, fmt.Errorf("ballLimits: %w", ErrMissingLimits))
	}
	if c.PlayerLimits.X == (Range{}) {
		err = multierr.Append(err, fmt.Errorf("playerLimits: %w", ErrMissingLimits))
	}
	if c.Paddle.Width > c.Field.Width {
		err = multierr.Append(err, errors.New("paddle is wider than the field"))
	}
	if c.PaddleInset <= 0 || c.PaddleInset >= c.Field.Height/2 {
		err = multierr.Append(err, fmt.Errorf("paddleInset %v outside (0, %v)", c.PaddleInset, c.Field.Height/2))
	}
	return err
}

// FieldBounds is the playable rectangle, origin at the top-left corner.
func (c Config) FieldBounds() Bounds {
	return Bounds{Top: 0, Bottom: c.Field.Height, Left: 0, Right: c.Field.Width}
}

// Center is the ball's serve position.
func (c Config) Center() Vector {
	return Vector{X: c.Field.Width / 2, Y: c.Field.Height / 2}
}

// PaddleRange returns the leftEnd and rightEnd limits for a paddle center.
func (c Config) PaddleRange() (leftEnd, rightEnd float64) {
	return c.Paddle.Width / 2, c.Field.Width - c.Paddle.Width/2
}

// PrimaryStart is the primary paddle's home: centered, near the bottom end.
func (c Config) PrimaryStart() Vector {
	return Vector{X: c.Field.Width / 2, Y: c.Field.Height - c.PaddleInset}
}

// SecondaryStart is the secondary paddle's home near the top end.
func (c Config) SecondaryStart() Vector {
	return Vector{X: c.Field.Width / 2, Y: c.PaddleInset}
}
