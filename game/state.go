package game

// GameState is the mutable match state shared by the simulation and its
// collaborators. All access happens on one goroutine.
type GameState struct {
	IsPaused bool

	PrimaryPlayerPos   Vector
	PrimaryPlayerVel   Vector
	PrimaryPlayerState Intent

	SecondaryPlayerPos Vector
	SecondaryPlayerVel Vector

	// BallVelocity is the last velocity written back by Step or the score
	// keeper. nil until the first write.
	BallVelocity *Vector

	PrimaryPlayerScore   int
	SecondaryPlayerScore int
}

// NewGameState seeds paddle positions from the config. The match starts paused.
func NewGameState(cfg Config) *GameState {
	return &GameState{
		IsPaused:           true,
		PrimaryPlayerPos:   cfg.PrimaryStart(),
		SecondaryPlayerPos: cfg.SecondaryStart(),
	}
}

// TogglePause flips the pause flag and returns the new value.
func (s *GameState) TogglePause() bool {
	s.IsPaused = !s.IsPaused
	return s.IsPaused
}

// SetBallVelocity stores a copy of v.
func (s *GameState) SetBallVelocity(v Vector) {
	c := v.Copy()
	s.BallVelocity = &c
}

// Score returns the counter for p.
func (s *GameState) Score(p Player) int {
	if p == PlayerSecondary {
		return s.SecondaryPlayerScore
	}
	return s.PrimaryPlayerScore
}
