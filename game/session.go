package game

import "fmt"

// Session is one match: the bodies, the shared state and the event bus.
type Session struct {
	Config    Config
	State     *GameState
	Ball      *Ball
	Primary   *Paddle
	Secondary *Paddle
	Bus       *Bus
	Scores    *ScoreKeeper

	field Bounds
}

// NewSession validates cfg and builds a paused match with the ball at the
// center.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	ball, err := NewBall(cfg.Center(), Vector{X: DefaultBallSpeed, Y: DefaultBallSpeed}, cfg.Ball, cfg.BallLimits)
	if err != nil {
		return nil, err
	}
	leftEnd, rightEnd := cfg.PaddleRange()
	primary, err := NewPaddle(cfg.PrimaryStart(), cfg.Paddle, cfg.PlayerLimits, leftEnd, rightEnd, false)
	if err != nil {
		return nil, err
	}
	secondary, err := NewPaddle(cfg.SecondaryStart(), cfg.Paddle, cfg.PlayerLimits, leftEnd, rightEnd, true)
	if err != nil {
		return nil, err
	}

	state := NewGameState(cfg)
	bus := NewBus()
	keeper := NewScoreKeeper(state, ball, cfg.Center())
	keeper.Attach(bus)

	return &Session{
		Config:    cfg,
		State:     state,
		Ball:      ball,
		Primary:   primary,
		Secondary: secondary,
		Bus:       bus,
		Scores:    keeper,
		field:     cfg.FieldBounds(),
	}, nil
}

// Tick runs one simulation step, then serves the ball again if a point was
// scored during it.
func (s *Session) Tick(delta float64) {
	Step(delta, s.field, s.State, s.Ball, s.Primary, s.Secondary, s.Bus)
	s.Scores.Settle()
}

// Restart zeroes the scores, re-centers everything and leaves the match
// paused.
func (s *Session) Restart(serve Vector) {
	s.Scores.Reset()
	s.State.SetBallVelocity(serve)
	s.Scores.ResetBall()
	s.Primary.Sync(s.Config.PrimaryStart(), Vector{})
	s.State.PrimaryPlayerPos = s.Config.PrimaryStart()
	s.State.PrimaryPlayerVel = Vector{}
	s.State.PrimaryPlayerState = IntentNone
	s.State.IsPaused = true
}

// BodyState is a copied position/velocity pair.
type BodyState struct {
	Position Vector `json:"position"`
	Velocity Vector `json:"velocity"`
}

// Snapshot is a copy of everything a renderer needs. It shares no memory
// with the session.
type Snapshot struct {
	Ball           BodyState `json:"ball"`
	Primary        BodyState `json:"primary"`
	Secondary      BodyState `json:"secondary"`
	PrimaryScore   int       `json:"primaryScore"`
	SecondaryScore int       `json:"secondaryScore"`
	Paused         bool      `json:"paused"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Ball:           BodyState{Position: s.Ball.Position.Copy(), Velocity: s.Ball.Velocity.Copy()},
		Primary:        BodyState{Position: s.Primary.Position.Copy(), Velocity: s.Primary.Velocity.Copy()},
		Secondary:      BodyState{Position: s.Secondary.Position.Copy(), Velocity: s.Secondary.Velocity.Copy()},
		PrimaryScore:   s.State.PrimaryPlayerScore,
		SecondaryScore: s.State.SecondaryPlayerScore,
		Paused:         s.State.IsPaused,
	}
}
