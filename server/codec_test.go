package server

import (
	"errors"
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"pongarena/game"
)

func TestPaddleFrameRoundTrip(t *testing.T) {
	in := PaddleFrame{Position: game.Vector{X: 42.5, Y: 570}, Velocity: game.Vector{X: -7.25}}
	out, err := DecodePaddleFrame(EncodePaddleFrame(in))
	if err != nil {
		t.Fatalf("DecodePaddleFrame: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestDecodePaddleFrameSkipsUnknownFields(t *testing.T) {
	b := protowire.AppendTag(nil, 9, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("ignored"))
	b = protowire.AppendTag(b, fieldPosX, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)
	b = append(b, EncodePaddleFrame(PaddleFrame{Position: game.Vector{X: 1, Y: 2}})...)

	f, err := DecodePaddleFrame(b)
	if err != nil {
		t.Fatalf("DecodePaddleFrame: %v", err)
	}
	if f.Position != (game.Vector{X: 1, Y: 2}) {
		t.Fatalf("position = %+v", f.Position)
	}
}

func TestDecodePaddleFrameErrors(t *testing.T) {
	nan := protowire.AppendTag(nil, fieldVelY, protowire.Fixed64Type)
	nan = protowire.AppendFixed64(nan, math.Float64bits(math.NaN()))
	inf := protowire.AppendTag(nil, fieldPosX, protowire.Fixed64Type)
	inf = protowire.AppendFixed64(inf, math.Float64bits(math.Inf(-1)))
	full := EncodePaddleFrame(PaddleFrame{Position: game.Vector{X: 3}})

	tests := []struct {
		name string
		b    []byte
	}{
		{"truncated value", full[:5]},
		{"bad tag", []byte{0xff}},
		{"nan", nan},
		{"inf", inf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePaddleFrame(tt.b); !errors.Is(err, ErrBadFrame) {
				t.Fatalf("err = %v, want ErrBadFrame", err)
			}
		})
	}
}

func TestNewEventMessage(t *testing.T) {
	rec := &game.Recorder{}
	bus := game.NewBus()
	bus.SubscribeAll(rec.Publish)
	// drive one real primary-paddle hit through Step
	s, err := game.NewSession(game.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.State.IsPaused = false
	s.Ball.Position = game.Vector{X: s.Primary.Position.X, Y: s.Primary.Position.Y - 10}
	game.Step(1, s.Config.FieldBounds(), s.State, s.Ball, s.Primary, s.Secondary, bus)

	if len(rec.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.Events))
	}
	m := newEventMessage(rec.Events[1])
	want := EventMessage{Type: "event", Event: "ball_hit_player", Face: "top", Tag: "ball_hit_primary_player"}
	if m != want {
		t.Fatalf("got %+v, want %+v", m, want)
	}
}
