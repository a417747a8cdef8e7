package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"pongarena/game"
)

// InputKind 客户端输入的种类
type InputKind int

const (
	InputMove InputKind = iota
	InputPause
	InputRestart
)

// Input 客户端输入（意图），由房间在 Tick 中解释并写入 GameState
type Input struct {
	PlayerID PlayerID
	Kind     InputKind
	Intent   game.Intent
	Seq      int64 // 客户端本地序列号，用于去重
}

// 入站输入的 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"move","command":"left","seq":12}
//
//	{"type":"pause"}
type InputMessage struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Seq     int64  `json:"seq,omitempty"`
}

// ParseInput 将文本消息转换为 Input；未知类型返回错误
func ParseInput(pid PlayerID, payload []byte) (Input, error) {
	var im InputMessage
	if err := json.Unmarshal(payload, &im); err != nil {
		return Input{}, fmt.Errorf("decode input: %w", err)
	}
	in := Input{PlayerID: pid, Seq: im.Seq}
	switch strings.ToLower(im.Type) {
	case "move":
		in.Kind = InputMove
		in.Intent = game.ParseIntent(strings.ToLower(im.Command))
	case "pause":
		in.Kind = InputPause
	case "restart":
		in.Kind = InputRestart
	default:
		return Input{}, fmt.Errorf("unknown input type %q", im.Type)
	}
	return in, nil
}
