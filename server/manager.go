package server

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    Config

	mu    sync.RWMutex
	rooms map[string]*Room
}

var (
	defaultManager *RoomManager
	once           sync.Once
)

// InitRoomManager 用配置初始化全局房间管理器，只有第一次调用生效
func InitRoomManager(ctx context.Context, cfg Config) *RoomManager {
	once.Do(func() {
		defaultManager = NewRoomManager(ctx, cfg)
	})
	return defaultManager
}

// GetRoomManager 单例房间管理器；未初始化时使用默认配置
func GetRoomManager() *RoomManager {
	return InitRoomManager(context.Background(), DefaultConfig())
}

func NewRoomManager(ctx context.Context, cfg Config) *RoomManager {
	ctx, cancel := context.WithCancel(ctx)
	return &RoomManager{ctx: ctx, cancel: cancel, cfg: cfg, rooms: make(map[string]*Room)}
}

// NewRoomID 生成短房间号
func NewRoomID() string {
	return uuid.NewString()[:8]
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		var err error
		r, err = NewRoom(id, m.cfg)
		if err != nil {
			return nil, err
		}
		m.rooms[id] = r
		r.StartTicker(m.ctx, m.cfg.TickInterval())
		Log.Infof("room=%s created", id)
	}
	return r, nil
}

// GetRoom 仅查找，不创建
func (m *RoomManager) GetRoom(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// RoomIDs 当前所有房间号
func (m *RoomManager) RoomIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown 停止所有房间的 Tick 并断开连接
func (m *RoomManager) Shutdown() {
	m.cancel()
}
