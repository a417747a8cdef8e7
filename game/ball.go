package game

import "fmt"

// CollisionSide names the face of the other body that the ball is touching.
// At most one flag is set.
type CollisionSide struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// Any reports whether any face is touched.
func (c CollisionSide) Any() bool {
	return c.Top || c.Bottom || c.Left || c.Right
}

type Ball struct {
	Body
}

func NewBall(pos, vel Vector, size Size, limits Limits) (*Ball, error) {
	body, err := NewBody(pos, vel, size, limits)
	if err != nil {
		return nil, fmt.Errorf("ball: %w", err)
	}
	return &Ball{Body: body}, nil
}

// CollisionSide runs an AABB test against other. The contact axis is the one
// with the shallower penetration; equal depths resolve to the vertical faces.
// Touching edges with zero depth do not count.
func (b *Ball) CollisionSide(other *Body) CollisionSide {
	bb, ob := b.Bounds(), other.Bounds()

	depthX := min(bb.Right, ob.Right) - max(bb.Left, ob.Left)
	depthY := min(bb.Bottom, ob.Bottom) - max(bb.Top, ob.Top)
	if depthX <= 0 || depthY <= 0 {
		return CollisionSide{}
	}

	var side CollisionSide
	if depthY <= depthX {
		if b.Position.Y < other.Position.Y {
			side.Top = true
		} else {
			side.Bottom = true
		}
		return side
	}
	if b.Position.X < other.Position.X {
		side.Left = true
	} else {
		side.Right = true
	}
	return side
}

// Update integrates position over delta frames.
func (b *Ball) Update(delta float64) {
	b.Position.X += b.Velocity.X * delta
	b.Position.Y += b.Velocity.Y * delta
}

// Reset puts the ball at pos with a copy of vel.
func (b *Ball) Reset(pos, vel Vector) {
	b.Position = pos.Copy()
	b.Velocity = vel.Copy()
	b.ClampVelocity()
}
