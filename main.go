package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/rand"

	"pongarena/server"
)

// pongarena 入口：加载配置，启动 HTTP + WebSocket 服务，并初始化房间管理器
func main() {
	var (
		cfgPath string
		addr    string
		logFile string
		console bool
	)
	flag.StringVar(&cfgPath, "config", "", "path to a JSON config file")
	flag.StringVar(&addr, "addr", "", "server listen address, e.g. :8080 (overrides config)")
	flag.StringVar(&logFile, "log", "", "log file path (overrides config)")
	flag.BoolVar(&console, "console", false, "also write logs to stderr")
	flag.Parse()

	cfg, err := server.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if console {
		cfg.Log.Console = true
	}
	// 配置错误尽早失败，不带着错误的物理参数启动
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// 使用第三方 zap 日志库写入日志文件（带滚动）
	if err := server.InitLogger(cfg.Log); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	rand.Seed(uint64(time.Now().UnixNano()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rm := server.InitRoomManager(ctx, cfg)
	// 先预创建一个默认房间，便于快速试跑
	if _, err := rm.GetOrCreateRoom("room-1"); err != nil {
		server.Log.Fatalf("create default room: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.HandleFunc("/rooms", server.HandleRooms)
	// 管理与监控接口
	mux.HandleFunc("/admin/config", server.HandleAdminConfig)
	mux.HandleFunc("/admin/pause", server.HandleAdminPause)
	mux.HandleFunc("/metrics", server.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		server.Log.Infof("pongarena listening on %s (%d ticks/s)", cfg.Addr, cfg.TicksPerSecond)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		server.Log.Warnf("http shutdown: %v", err)
	}
	rm.Shutdown()
}
