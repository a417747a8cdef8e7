package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"pongarena/game"
)

// 二进制球拍帧（protobuf wire 格式，无需生成代码）：
//
//	1: position.x  fixed64(double)
//	2: position.y  fixed64(double)
//	3: velocity.x  fixed64(double)
//	4: velocity.y  fixed64(double)
const (
	fieldPosX protowire.Number = 1
	fieldPosY protowire.Number = 2
	fieldVelX protowire.Number = 3
	fieldVelY protowire.Number = 4
)

var ErrBadFrame = errors.New("bad paddle frame")

// PaddleFrame 网络上收发的球拍位置与速度
type PaddleFrame struct {
	Position game.Vector
	Velocity game.Vector
}

func EncodePaddleFrame(f PaddleFrame) []byte {
	b := make([]byte, 0, 4*(1+8))
	for _, fv := range []struct {
		num protowire.Number
		v   float64
	}{
		{fieldPosX, f.Position.X},
		{fieldPosY, f.Position.Y},
		{fieldVelX, f.Velocity.X},
		{fieldVelY, f.Velocity.Y},
	} {
		b = protowire.AppendTag(b, fv.num, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(fv.v))
	}
	return b
}

// DecodePaddleFrame 解析球拍帧；未知字段跳过，非有限数值视为非法
func DecodePaddleFrame(b []byte) (PaddleFrame, error) {
	var f PaddleFrame
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return f, fmt.Errorf("%w: %v", ErrBadFrame, protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.Fixed64Type || num < fieldPosX || num > fieldVelY {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return f, fmt.Errorf("%w: %v", ErrBadFrame, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		bits, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return f, fmt.Errorf("%w: %v", ErrBadFrame, protowire.ParseError(n))
		}
		b = b[n:]
		v := math.Float64frombits(bits)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return f, fmt.Errorf("%w: field %d is not finite", ErrBadFrame, num)
		}
		switch num {
		case fieldPosX:
			f.Position.X = v
		case fieldPosY:
			f.Position.Y = v
		case fieldVelX:
			f.Velocity.X = v
		case fieldVelY:
			f.Velocity.Y = v
		}
	}
	return f, nil
}

// 出站 JSON 文本消息

type WelcomeMessage struct {
	Type  string      `json:"type"`
	Room  string      `json:"room"`
	Role  string      `json:"role"`
	Field game.Config `json:"field"`
}

type StateMessage struct {
	Type string `json:"type"`
	Tick int64  `json:"tick"`
	game.Snapshot
}

type EventMessage struct {
	Type   string `json:"type"`
	Event  string `json:"event"`
	Face   string `json:"face,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Scorer string `json:"scorer,omitempty"`
}

type GameOverMessage struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
}

func newEventMessage(ev game.Event) EventMessage {
	m := EventMessage{Type: "event", Event: ev.Kind.String()}
	if ev.Hit != nil {
		m.Face = ev.Hit.Face.String()
		m.Tag = ev.Hit.Tag.String()
	}
	if ev.Score != nil {
		m.Scorer = ev.Score.Scorer.String()
	}
	return m
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		// 出站结构均为固定类型，不应失败
		Log.Errorf("marshal %T: %v", v, err)
		return nil
	}
	return b
}
