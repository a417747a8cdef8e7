package server

import (
	"context"
	"time"
)

// frameDuration 一帧的基准时长，delta 以帧为单位（1.0 = 1/60 秒）
const frameDuration = time.Second / 60

// StartTicker 启动房间的 Tick 循环（单协程推进世界），ctx 取消时退出
func (r *Room) StartTicker(ctx context.Context, interval time.Duration) {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				r.Close()
				return
			case now := <-ticker.C:
				r.RunTick(now.Sub(last))
				last = now
			}
		}
	}()
}

// RunTick 核心循环：处理输入 → 更新世界 → 广播结果
func (r *Room) RunTick(elapsed time.Duration) {
	start := time.Now()
	r.BeginTick() // 同一 Tick 时间线：重置输入计数等帧内状态
	r.ProcessInputs()
	r.UpdateWorld(r.frameDelta(elapsed))
	r.Broadcast()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}

// frameDelta 将真实间隔换算为帧数，并截断到 MaxDelta，避免后台挂起后一次跳太远穿过球拍
func (r *Room) frameDelta(elapsed time.Duration) float64 {
	delta := float64(elapsed) / float64(frameDuration)
	if limit := r.Settings().MaxDelta; delta > limit {
		r.metrics.IncDeltaClamped()
		return limit
	}
	if delta < 0 {
		return 0
	}
	return delta
}
