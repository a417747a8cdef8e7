package game

import "testing"

func testBall(t *testing.T, pos, vel Vector) *Ball {
	t.Helper()
	cfg := DefaultConfig()
	b, err := NewBall(pos, vel, cfg.Ball, cfg.BallLimits)
	if err != nil {
		t.Fatalf("NewBall: %v", err)
	}
	return b
}

func paddleBody(x, y float64) *Body {
	cfg := DefaultConfig()
	return &Body{Position: Vector{X: x, Y: y}, Size: cfg.Paddle, Limits: cfg.PlayerLimits}
}

func TestCollisionSide(t *testing.T) {
	cases := []struct {
		name   string
		ball   Vector
		paddle Vector
		want   CollisionSide
	}{
		{name: "apart", ball: Vector{X: 170, Y: 300}, paddle: Vector{X: 170, Y: 400}, want: CollisionSide{}},
		{name: "ball above paddle", ball: Vector{X: 170, Y: 300}, paddle: Vector{X: 170, Y: 309}, want: CollisionSide{Top: true}},
		{name: "ball below paddle", ball: Vector{X: 170, Y: 40}, paddle: Vector{X: 170, Y: 30}, want: CollisionSide{Bottom: true}},
		{name: "ball left of paddle", ball: Vector{X: 154, Y: 300}, paddle: Vector{X: 200, Y: 300}, want: CollisionSide{Left: true}},
		{name: "ball right of paddle", ball: Vector{X: 246, Y: 300}, paddle: Vector{X: 200, Y: 300}, want: CollisionSide{Right: true}},
		// edges touch with zero depth
		{name: "touching edge", ball: Vector{X: 170, Y: 300}, paddle: Vector{X: 170, Y: 311}, want: CollisionSide{}},
		// 2.5 deep on both axes
		{name: "corner tie", ball: Vector{X: 155, Y: 300}, paddle: Vector{X: 200, Y: 308.5}, want: CollisionSide{Top: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := testBall(t, tc.ball, Vector{})
			got := b.CollisionSide(paddleBody(tc.paddle.X, tc.paddle.Y))
			if got != tc.want {
				t.Fatalf("CollisionSide = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCollisionSideIsPure(t *testing.T) {
	b := testBall(t, Vector{X: 170, Y: 300}, Vector{X: 3, Y: 3})
	p := paddleBody(170, 309)
	first := b.CollisionSide(p)
	second := b.CollisionSide(p)
	if first != second {
		t.Fatalf("repeated query differs: %+v vs %+v", first, second)
	}
	if b.Position != (Vector{X: 170, Y: 300}) || b.Velocity != (Vector{X: 3, Y: 3}) {
		t.Fatal("CollisionSide mutated the ball")
	}
}

func TestBallUpdateScalesByDelta(t *testing.T) {
	b := testBall(t, Vector{X: 10, Y: 10}, Vector{X: 2, Y: -1})
	b.Update(1.5)
	if b.Position != (Vector{X: 13, Y: 8.5}) {
		t.Fatalf("Update(1.5) position = %+v", b.Position)
	}
}

func TestBallResetCopies(t *testing.T) {
	b := testBall(t, Vector{X: 1, Y: 1}, Vector{})
	vel := Vector{X: 40, Y: 2}
	b.Reset(Vector{X: 170, Y: 300}, vel)
	vel.X = 0
	if b.Velocity.X != DefaultConfig().BallLimits.X.Max {
		t.Fatalf("Reset velocity = %+v, want clamped copy", b.Velocity)
	}
}
