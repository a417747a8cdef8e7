package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount         int64 // 统计的 Tick 次数
	PausedTicks       int64 // 暂停状态下空转的 Tick 次数
	DeltaClamped      int64 // 帧间隔过大被截断的次数
	InputsAccepted    int64 // 被接受的输入数
	RateLimited       int64 // 因同帧限流被拒绝的输入数
	OldSeqIgnored     int64 // 因旧序列被忽略的输入数
	DropsSimulated    int64 // 因模拟丢包被丢弃的输入数
	ChanFullDiscarded int64 // 因通道满被丢弃的输入数
	BadMessages       int64 // 无法解析的客户端消息数
	RemoteFrames      int64 // 收到的对手球拍帧数
	PaddleHits        int64 // 球拍击球次数
	PrimaryPoints     int64 // 主玩家得分次数
	SecondaryPoints   int64 // 副玩家得分次数
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncRateLimited()       { atomic.AddInt64(&m.RateLimited, 1) }
func (m *RoomMetrics) IncOldSeqIgnored()     { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *RoomMetrics) IncDropsSimulated()    { atomic.AddInt64(&m.DropsSimulated, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) IncBadMessages()       { atomic.AddInt64(&m.BadMessages, 1) }
func (m *RoomMetrics) IncRemoteFrames()      { atomic.AddInt64(&m.RemoteFrames, 1) }
func (m *RoomMetrics) IncPausedTicks()       { atomic.AddInt64(&m.PausedTicks, 1) }
func (m *RoomMetrics) IncDeltaClamped()      { atomic.AddInt64(&m.DeltaClamped, 1) }
func (m *RoomMetrics) IncPaddleHits()        { atomic.AddInt64(&m.PaddleHits, 1) }
func (m *RoomMetrics) IncPrimaryPoints()     { atomic.AddInt64(&m.PrimaryPoints, 1) }
func (m *RoomMetrics) IncSecondaryPoints()   { atomic.AddInt64(&m.SecondaryPoints, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"paused_ticks":        atomic.LoadInt64(&m.PausedTicks),
		"delta_clamped":       atomic.LoadInt64(&m.DeltaClamped),
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"rate_limited":        atomic.LoadInt64(&m.RateLimited),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"drops_simulated":     atomic.LoadInt64(&m.DropsSimulated),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"bad_messages":        atomic.LoadInt64(&m.BadMessages),
		"remote_frames":       atomic.LoadInt64(&m.RemoteFrames),
		"paddle_hits":         atomic.LoadInt64(&m.PaddleHits),
		"primary_points":      atomic.LoadInt64(&m.PrimaryPoints),
		"secondary_points":    atomic.LoadInt64(&m.SecondaryPoints),
		"avg_tick_ms":         avgMs,
	}
}
