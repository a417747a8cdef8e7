package game

import (
	"errors"
	"testing"
)

func TestNewBodyRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		size   Size
		limits Limits
		want   error
	}{
		{name: "zero size", size: Size{}, limits: Limits{X: Symmetric(1), Y: Symmetric(1)}, want: ErrInvalidSize},
		{name: "negative height", size: Size{Width: 1, Height: -1}, limits: Limits{X: Symmetric(1)}, want: ErrInvalidSize},
		{name: "missing limits", size: Size{Width: 1, Height: 1}, limits: Limits{}, want: ErrMissingLimits},
		{name: "inverted range", size: Size{Width: 1, Height: 1}, limits: Limits{X: Range{Min: 2, Max: -2}}, want: ErrInvertedRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBody(Vector{}, Vector{}, tc.size, tc.limits)
			if !errors.Is(err, tc.want) {
				t.Fatalf("NewBody error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestClampVelocity(t *testing.T) {
	b, err := NewBody(Vector{}, Vector{X: 50, Y: -50}, Size{Width: 2, Height: 2}, Limits{X: Symmetric(5), Y: Symmetric(3)})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	if b.Velocity != (Vector{X: 5, Y: -3}) {
		t.Fatalf("constructor did not clamp: %+v", b.Velocity)
	}

	b.Velocity.MultiplyX(-4)
	b.Velocity.AddY(100)
	b.ClampVelocity()
	if b.Velocity != (Vector{X: -5, Y: 3}) {
		t.Fatalf("ClampVelocity = %+v, want {-5 3}", b.Velocity)
	}
}

func TestBoundsCenteredOnPosition(t *testing.T) {
	b := Body{Position: Vector{X: 10, Y: 20}, Size: Size{Width: 4, Height: 6}}
	got := b.Bounds()
	want := Bounds{Top: 17, Bottom: 23, Left: 8, Right: 12}
	if got != want {
		t.Fatalf("Bounds() = %+v, want %+v", got, want)
	}
	if b.Position != (Vector{X: 10, Y: 20}) {
		t.Fatal("Bounds mutated the position")
	}
}

func TestVectorOps(t *testing.T) {
	v := Vector{X: 2, Y: -3}
	v.AddX(1)
	v.SubtractY(1)
	v.InvertX()
	v.MultiplyY(0.5)
	if v != (Vector{X: -3, Y: -2}) {
		t.Fatalf("vector ops = %+v", v)
	}

	c := v.Copy()
	c.InvertY()
	if v.Y != -2 {
		t.Fatal("Copy aliases the original")
	}
}
