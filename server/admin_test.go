package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAdminConfig(t *testing.T) {
	id := NewRoomID()
	room, err := GetRoomManager().GetOrCreateRoom(id)
	if err != nil {
		t.Fatalf("GetOrCreateRoom: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/config?room="+id, strings.NewReader(`{"winningScore":5}`))
	rec := httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d: %s", rec.Code, rec.Body)
	}
	if got := room.Settings().WinningScore; got != 5 {
		t.Fatalf("winningScore = %d, want 5", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/config?room="+id, strings.NewReader(`{"maxDelta":-1}`))
	rec = httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid POST status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/config?room="+id, nil)
	rec = httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	var s Settings
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s != room.Settings() {
		t.Fatalf("GET = %+v, want %+v", s, room.Settings())
	}
}

func TestAdminUnknownRoom(t *testing.T) {
	for _, h := range []http.HandlerFunc{HandleAdminConfig, HandleAdminPause, HandleMetrics} {
		req := httptest.NewRequest(http.MethodPost, "/x?room=does-not-exist", nil)
		rec := httptest.NewRecorder()
		h(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	}
}

func TestHandleRooms(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleRooms(rec, httptest.NewRequest(http.MethodPost, "/rooms", nil))
	var created struct {
		Room string `json:"room"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil || created.Room == "" {
		t.Fatalf("create: %v %+v", err, created)
	}
	if _, ok := GetRoomManager().GetRoom(created.Room); !ok {
		t.Fatalf("room %s not registered", created.Room)
	}
}
