package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/rand"

	"pongarena/game"
)

var (
	ErrDuplicatePlayer = errors.New("player already in room")
	ErrReservedPlayer  = errors.New("player id is reserved")
)

// systemPlayer 服务端自身发出的输入（管理接口、开局），不受角色与限流约束
const systemPlayer PlayerID = "@system"

// PlayerID 表示玩家唯一标识
type PlayerID string

// Role 玩家在房间中的身份：主玩家由键盘意图驱动，副玩家上报自己的球拍位置，其余为观众
type Role int

const (
	RolePrimary Role = iota
	RoleSecondary
	RoleSpectator
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	default:
		return "spectator"
	}
}

// Sender 网络连接的发送端（写协程），Enqueue 不得阻塞 Tick
type Sender interface {
	Enqueue(msgType int, b []byte)
	Close()
}

// Player 房间内的连接者
type Player struct {
	ID   PlayerID
	Role Role
	Conn Sender

	// 以下字段仅在 Tick 协程内读写
	lastSeq        int64
	inputsThisTick int
}

// Settings 可在运行期通过管理接口调整的房间参数
type Settings struct {
	MaxDelta         float64 `json:"maxDelta"`
	MaxInputsPerTick int     `json:"maxInputsPerTick"`
	WinningScore     int     `json:"winningScore"`
	SimulateDropProb float64 `json:"simulateDropProb"`
}

type remoteFrame struct {
	PlayerID PlayerID
	Frame    PaddleFrame
}

// Room 房间世界：一局比赛的权威状态保存在内存，由单一 Tick 协程推进
type Room struct {
	ID string

	session *game.Session
	metrics *RoomMetrics

	mu          sync.RWMutex // 保护 players、角色与 settings
	players     map[PlayerID]*Player
	primaryID   PlayerID
	secondaryID PlayerID
	settings    Settings

	inputChan  chan Input
	remoteChan chan remoteFrame
	leaveChan  chan PlayerID
	done       chan struct{} // Close 后关闭
	closeOnce  sync.Once

	// 以下字段仅在 Tick 协程内读写
	tickSeq   int64
	events    game.Recorder // 本 Tick 内发布的事件
	outbox    [][]byte      // 本 Tick 待广播的额外文本消息
	lastSnap  game.Snapshot
	snapSent  bool
	matchOver bool

	tickerStarted bool
}

// NewRoom 创建房间并构建比赛；配置非法时直接返回错误
func NewRoom(id string, cfg Config) (*Room, error) {
	session, err := game.NewSession(cfg.Game)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", id, err)
	}
	r := &Room{
		ID:         id,
		session:    session,
		metrics:    &RoomMetrics{},
		players:    make(map[PlayerID]*Player),
		inputChan:  make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		remoteChan: make(chan remoteFrame, 64),
		leaveChan:  make(chan PlayerID, 64),
		done:       make(chan struct{}),
		settings: Settings{
			MaxDelta:         cfg.MaxDelta,
			MaxInputsPerTick: cfg.MaxInputsPerTick,
			WinningScore:     cfg.WinningScore,
		},
	}
	session.Bus.SubscribeAll(r.onEvent)
	session.Scores.OnMatchOver = r.onMatchOver
	return r, nil
}

func (r *Room) Metrics() *RoomMetrics { return r.metrics }

func (r *Room) Settings() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// UpdateSettings 修改房间参数，校验失败时不生效
func (r *Room) UpdateSettings(fn func(*Settings)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.settings
	fn(&next)
	if next.MaxDelta <= 0 || next.MaxInputsPerTick <= 0 || next.WinningScore < 0 ||
		next.SimulateDropProb < 0 || next.SimulateDropProb > 1 {
		return fmt.Errorf("invalid settings: %+v", next)
	}
	r.settings = next
	return nil
}

// JoinPlayer 将玩家加入房间并分配角色：先到者为主玩家，其次为副玩家，其余观众
func (r *Room) JoinPlayer(id PlayerID, conn Sender) (Role, error) {
	if id == systemPlayer {
		return RoleSpectator, ErrReservedPlayer
	}
	r.mu.Lock()
	if _, ok := r.players[id]; ok {
		r.mu.Unlock()
		return RoleSpectator, fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
	}
	role := RoleSpectator
	switch {
	case r.primaryID == "":
		role = RolePrimary
		r.primaryID = id
	case r.secondaryID == "":
		role = RoleSecondary
		r.secondaryID = id
	}
	r.players[id] = &Player{ID: id, Role: role, Conn: conn}
	r.mu.Unlock()

	if conn != nil {
		conn.Enqueue(websocket.TextMessage, mustJSON(WelcomeMessage{
			Type:  "welcome",
			Room:  r.ID,
			Role:  role.String(),
			Field: r.session.Config,
		}))
	}
	// 对手到齐后在 Tick 线程中重开一局（保持暂停，由玩家按暂停键开始）
	if role == RoleSecondary {
		r.enqueueSystem(InputRestart)
	}
	Log.Infof("room=%s player=%s joined as %s", r.ID, id, role)
	return role, nil
}

// LeavePlayer 将玩家移出房间；任一球员离开都会暂停比赛
func (r *Room) LeavePlayer(id PlayerID) {
	r.mu.Lock()
	p, ok := r.players[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.players, id)
	switch p.Role {
	case RolePrimary:
		r.primaryID = ""
	case RoleSecondary:
		r.secondaryID = ""
	}
	r.mu.Unlock()

	if p.Conn != nil {
		p.Conn.Close()
	}
	if p.Role == RolePrimary || p.Role == RoleSecondary {
		// 对端断开时冻结比赛，网络层不做重连
		r.session.State.IsPaused = true
		if p.Role == RolePrimary {
			r.session.State.PrimaryPlayerState = game.IntentNone
		}
	}
	Log.Infof("room=%s player=%s (%s) left", r.ID, id, p.Role)
}

// RequestLeave 请求在 Tick 线程中移除玩家，避免并发改动房间状态
func (r *Room) RequestLeave(pid PlayerID) {
	// 房间运行时阻塞写入以保证移除生效；房间关闭后 Tick 不再消费，直接返回
	select {
	case r.leaveChan <- pid:
	case <-r.done:
	}
}

// OnInput 入站输入（不立即改变状态），仅记录意图，等下一次 Tick 处理
func (r *Room) OnInput(in Input) {
	if drop := r.Settings().SimulateDropProb; drop > 0 && rand.Float64() < drop {
		r.metrics.IncDropsSimulated()
		return
	}
	// 不阻塞：输入拥塞时丢弃，保证 Tick 准时
	select {
	case r.inputChan <- in:
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// TogglePause 管理端切换暂停，同样在 Tick 线程中生效
func (r *Room) TogglePause() {
	r.enqueueSystem(InputPause)
}

func (r *Room) enqueueSystem(kind InputKind) {
	select {
	case r.inputChan <- Input{PlayerID: systemPlayer, Kind: kind}:
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// OnRemoteFrame 对手上报的球拍位置/速度，同样排队到 Tick 中写入 GameState
func (r *Room) OnRemoteFrame(pid PlayerID, f PaddleFrame) {
	select {
	case r.remoteChan <- remoteFrame{PlayerID: pid, Frame: f}:
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// BeginTick 重置帧内状态
func (r *Room) BeginTick() {
	r.tickSeq++
	r.events.Events = r.events.Events[:0]
	r.outbox = r.outbox[:0]
	r.mu.RLock()
	for _, p := range r.players {
		p.inputsThisTick = 0
	}
	r.mu.RUnlock()
}

// ProcessInputs 处理当前帧的所有排队输入（非阻塞 drain）
func (r *Room) ProcessInputs() {
	for {
		select {
		case pid := <-r.leaveChan:
			r.LeavePlayer(pid)
		case in := <-r.inputChan:
			r.applyInput(in)
		case rf := <-r.remoteChan:
			r.applyRemote(rf)
		default:
			return
		}
	}
}

func (r *Room) player(id PlayerID) *Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players[id]
}

func (r *Room) applyInput(in Input) {
	if in.PlayerID == systemPlayer {
		r.applySystem(in.Kind)
		return
	}
	p := r.player(in.PlayerID)
	if p == nil {
		return
	}
	if in.Seq > 0 {
		if in.Seq <= p.lastSeq {
			r.metrics.IncOldSeqIgnored()
			return
		}
		p.lastSeq = in.Seq
	}
	if p.inputsThisTick >= r.Settings().MaxInputsPerTick {
		r.metrics.IncRateLimited()
		return
	}
	p.inputsThisTick++

	switch in.Kind {
	case InputMove:
		if p.Role != RolePrimary {
			return
		}
		r.session.State.PrimaryPlayerState = in.Intent
	case InputPause, InputRestart:
		if p.Role == RoleSpectator {
			return
		}
		r.applySystem(in.Kind)
	}
	r.metrics.IncAccepted()
}

func (r *Room) applySystem(kind InputKind) {
	switch kind {
	case InputPause:
		if r.matchOver {
			r.restart()
		}
		paused := r.session.State.TogglePause()
		Log.Debugf("room=%s paused=%v", r.ID, paused)
	case InputRestart:
		r.restart()
	}
}

func (r *Room) applyRemote(rf remoteFrame) {
	p := r.player(rf.PlayerID)
	if p == nil || p.Role != RoleSecondary {
		r.metrics.IncBadMessages()
		return
	}
	// 只信任横向分量，球拍固定在自己的行上
	r.session.State.SecondaryPlayerPos = game.Vector{X: rf.Frame.Position.X, Y: r.session.Config.SecondaryStart().Y}
	r.session.State.SecondaryPlayerVel = game.Vector{X: rf.Frame.Velocity.X}
	r.metrics.IncRemoteFrames()
}

// restart 重开一局，随机决定发球的横向方向
func (r *Room) restart() {
	x := game.DefaultBallSpeed
	if rand.Intn(2) == 0 {
		x = -x
	}
	r.session.Restart(game.Vector{X: x, Y: game.DefaultBallSpeed})
	r.matchOver = false
	Log.Infof("room=%s new match", r.ID)
}

// UpdateWorld 以 delta 帧推进比赛
func (r *Room) UpdateWorld(delta float64) {
	if r.session.State.IsPaused {
		r.metrics.IncPausedTicks()
	}
	r.session.Scores.WinningScore = r.Settings().WinningScore
	r.session.Tick(delta)
}

func (r *Room) onEvent(ev game.Event) {
	r.events.Publish(ev)
	switch ev.Kind {
	case game.EventBallHitPlayer:
		if ev.Hit.Tag == game.HitAny {
			r.metrics.IncPaddleHits()
		}
	case game.EventBallToSecondaryEnd:
		r.metrics.IncPrimaryPoints()
	case game.EventBallToPrimaryEnd:
		r.metrics.IncSecondaryPoints()
	}
	if ev.Score != nil {
		st := r.session.State
		Log.Infof("room=%s %s scored: %d-%d", r.ID, ev.Score.Scorer, st.PrimaryPlayerScore, st.SecondaryPlayerScore)
	}
}

func (r *Room) onMatchOver(winner game.Player) {
	r.matchOver = true
	r.outbox = append(r.outbox, mustJSON(GameOverMessage{Type: "gameover", Winner: winner.String()}))
	Log.Infof("room=%s match over, winner=%s", r.ID, winner)
}

// Broadcast 将本 Tick 的事件与状态广播给所有连接；状态未变化时不重复发送
func (r *Room) Broadcast() {
	msgs := make([][]byte, 0, len(r.events.Events)+len(r.outbox)+1)
	for _, ev := range r.events.Events {
		msgs = append(msgs, mustJSON(newEventMessage(ev)))
	}
	msgs = append(msgs, r.outbox...)

	snap := r.session.Snapshot()
	if !r.snapSent || snap != r.lastSnap {
		msgs = append(msgs, mustJSON(StateMessage{Type: "state", Tick: r.tickSeq, Snapshot: snap}))
		r.lastSnap = snap
		r.snapSent = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.Conn == nil {
			continue
		}
		for _, m := range msgs {
			p.Conn.Enqueue(websocket.TextMessage, m)
		}
	}
	// 将本地（主玩家）球拍同步给对手
	if sec := r.players[r.secondaryID]; sec != nil && sec.Conn != nil && !snap.Paused {
		sec.Conn.Enqueue(websocket.BinaryMessage, EncodePaddleFrame(PaddleFrame{
			Position: snap.Primary.Position,
			Velocity: snap.Primary.Velocity,
		}))
	}
}

// Close 关闭所有连接，并释放等待离开的读协程
func (r *Room) Close() {
	r.closeOnce.Do(func() { close(r.done) })
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.players {
		if p.Conn != nil {
			p.Conn.Close()
		}
		delete(r.players, id)
	}
	r.primaryID, r.secondaryID = "", ""
}
