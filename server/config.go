package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"

	"pongarena/game"
)

// Config 服务端配置：可从 JSON 文件加载，命令行参数覆盖其中的部分字段
type Config struct {
	Addr string    `json:"addr"`
	Log  LogConfig `json:"log"`

	// TicksPerSecond 房间 Tick 频率
	TicksPerSecond int `json:"ticksPerSecond"`
	// MaxDelta 单次 Tick 允许推进的最大帧数（防止卡顿后穿透）
	MaxDelta float64 `json:"maxDelta"`
	// MaxInputsPerTick 每个玩家每 Tick 最多接受的输入数
	MaxInputsPerTick int `json:"maxInputsPerTick"`
	// WinningScore 先到该分数者获胜，0 表示不限
	WinningScore int `json:"winningScore"`

	Game game.Config `json:"game"`
}

type LogConfig struct {
	File    string `json:"file"`
	Level   string `json:"level"`
	Console bool   `json:"console"`
}

func DefaultConfig() Config {
	return Config{
		Addr:             ":8080",
		Log:              LogConfig{File: "app.log", Level: "debug"},
		TicksPerSecond:   60,
		MaxDelta:         4,
		MaxInputsPerTick: 4,
		WinningScore:     10,
		Game:             game.DefaultConfig(),
	}
}

// LoadConfig 读取 JSON 配置；path 为空时返回默认配置。文件中缺省的字段保留默认值
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 启动前一次性校验所有字段，尽早失败
func (c Config) Validate() error {
	var err error
	if c.Addr == "" {
		err = multierr.Append(err, errors.New("addr is empty"))
	}
	if c.TicksPerSecond <= 0 || c.TicksPerSecond > 240 {
		err = multierr.Append(err, fmt.Errorf("ticksPerSecond %d outside (0, 240]", c.TicksPerSecond))
	}
	if c.MaxDelta <= 0 {
		err = multierr.Append(err, fmt.Errorf("maxDelta %v must be positive", c.MaxDelta))
	}
	if c.MaxInputsPerTick <= 0 {
		err = multierr.Append(err, fmt.Errorf("maxInputsPerTick %d must be positive", c.MaxInputsPerTick))
	}
	if c.WinningScore < 0 {
		err = multierr.Append(err, fmt.Errorf("winningScore %d is negative", c.WinningScore))
	}
	if _, lerr := parseLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	if gerr := c.Game.Validate(); gerr != nil {
		err = multierr.Append(err, fmt.Errorf("game: %w", gerr))
	}
	return err
}

// TickInterval 由 TicksPerSecond 推导
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}
