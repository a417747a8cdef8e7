package game

import (
	"errors"
	"fmt"
)

// Intent is the directional key currently held by the local player.
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
)

func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	default:
		return "none"
	}
}

// ParseIntent maps a wire command to an Intent; anything unknown is IntentNone.
func ParseIntent(s string) Intent {
	switch s {
	case "left":
		return IntentLeft
	case "right":
		return IntentRight
	default:
		return IntentNone
	}
}

var ErrPaddleLimits = errors.New("paddle limits are inverted")

// Paddle moves on the horizontal axis only. MinX and MaxX bound its center.
// A remote paddle is never integrated; its state is assigned through Sync.
type Paddle struct {
	Body
	Intent Intent
	MinX   float64
	MaxX   float64
	Remote bool
}

func NewPaddle(pos Vector, size Size, limits Limits, minX, maxX float64, remote bool) (*Paddle, error) {
	if minX > maxX {
		return nil, fmt.Errorf("paddle: %w: [%v, %v]", ErrPaddleLimits, minX, maxX)
	}
	body, err := NewBody(pos, Vector{}, size, limits)
	if err != nil {
		return nil, fmt.Errorf("paddle: %w", err)
	}
	p := &Paddle{Body: body, MinX: minX, MaxX: maxX, Remote: remote}
	p.clampPosition()
	return p, nil
}

// CanMove reports whether the paddle has an intent and has room left on the
// side it wants to travel.
func (p *Paddle) CanMove() bool {
	switch p.Intent {
	case IntentLeft:
		return p.Position.X > p.MinX
	case IntentRight:
		return p.Position.X < p.MaxX
	default:
		return false
	}
}

// Update integrates the horizontal position and keeps the paddle inside
// [MinX, MaxX]. Hitting a limit zeroes the horizontal velocity.
func (p *Paddle) Update(delta float64) {
	if !p.Remote {
		p.Position.X += p.Velocity.X * delta
	}
	p.Velocity.Y = 0
	if p.clampPosition() {
		p.Velocity.X = 0
	}
}

// Sync overwrites the horizontal position and velocity with network state.
// The paddle stays on its own row whatever Y the peer reports.
func (p *Paddle) Sync(pos, vel Vector) {
	p.Position.X = pos.X
	p.Velocity = Vector{X: vel.X}
	p.ClampVelocity()
}

func (p *Paddle) clampPosition() bool {
	switch {
	case p.Position.X < p.MinX:
		p.Position.X = p.MinX
		return true
	case p.Position.X > p.MaxX:
		p.Position.X = p.MaxX
		return true
	}
	return false
}
