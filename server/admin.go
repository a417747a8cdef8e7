package server

import (
	"encoding/json"
	"net/http"
)

// roomFromQuery 按 ?room= 查找已存在的房间，缺省为 room-1
func roomFromQuery(w http.ResponseWriter, r *http.Request) (*Room, string, bool) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = "room-1"
	}
	room, ok := GetRoomManager().GetRoom(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return nil, roomID, false
	}
	return room, roomID, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// HandleAdminConfig 提供房间参数的读取与更新（热更新基本规则）
// GET /admin/config?room=room-1  返回当前配置
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	room, roomID, ok := roomFromQuery(w, r)
	if !ok {
		return
	}

	type cfg struct {
		MaxDelta         *float64 `json:"maxDelta,omitempty"`
		MaxInputsPerTick *int     `json:"maxInputsPerTick,omitempty"`
		WinningScore     *int     `json:"winningScore,omitempty"`
		SimulateDropProb *float64 `json:"simulateDropProb,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, room.Settings())
		return
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		err := room.UpdateSettings(func(s *Settings) {
			if body.MaxDelta != nil {
				s.MaxDelta = *body.MaxDelta
			}
			if body.MaxInputsPerTick != nil {
				s.MaxInputsPerTick = *body.MaxInputsPerTick
			}
			if body.WinningScore != nil {
				s.WinningScore = *body.WinningScore
			}
			if body.SimulateDropProb != nil {
				s.SimulateDropProb = *body.SimulateDropProb
			}
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s := room.Settings()
		Log.Infof("config updated: room=%s maxDelta=%.2f maxInputsPerTick=%d winningScore=%d drop=%.2f",
			roomID, s.MaxDelta, s.MaxInputsPerTick, s.WinningScore, s.SimulateDropProb)
		writeJSON(w, map[string]any{"ok": true})
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleAdminPause 由管理端切换暂停（经 Tick 线程处理）
// POST /admin/pause?room=room-1
func HandleAdminPause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	room, _, ok := roomFromQuery(w, r)
	if !ok {
		return
	}
	room.TogglePause()
	writeJSON(w, map[string]any{"ok": true})
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	room, roomID, ok := roomFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"room":    roomID,
		"metrics": room.Metrics().Snapshot(),
	})
}

// HandleRooms 列出所有房间；POST 创建一个随机房间号的新房间
func HandleRooms(w http.ResponseWriter, r *http.Request) {
	m := GetRoomManager()
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]any{"rooms": m.RoomIDs()})
	case http.MethodPost:
		id := NewRoomID()
		if _, err := m.GetOrCreateRoom(id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"room": id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
