package game

// ScoreKeeper does the bookkeeping Step leaves out: it counts points and
// serves the ball again from the center.
type ScoreKeeper struct {
	state  *GameState
	ball   *Ball
	center Vector

	// WinningScore ends the match when a player reaches it. Zero disables it.
	WinningScore int
	// OnMatchOver runs after the winning point, with the state already paused.
	OnMatchOver func(winner Player)

	// serve recorded during a Step, applied by Settle once the Step is done
	pending *Vector
	scorer  Player
}

func NewScoreKeeper(state *GameState, ball *Ball, center Vector) *ScoreKeeper {
	return &ScoreKeeper{state: state, ball: ball, center: center}
}

// Attach subscribes the keeper to both scoring events.
func (k *ScoreKeeper) Attach(bus *Bus) {
	bus.Subscribe(EventBallToPrimaryEnd, k.handle)
	bus.Subscribe(EventBallToSecondaryEnd, k.handle)
}

func (k *ScoreKeeper) handle(ev Event) {
	if ev.Score == nil {
		return
	}
	scorer := ev.Score.Scorer
	if scorer == PlayerPrimary {
		k.state.PrimaryPlayerScore++
	} else {
		k.state.SecondaryPlayerScore++
	}
	serve := k.serveVelocity(scorer)
	k.pending = &serve
	k.scorer = scorer
}

// Settle serves the ball for a point scored during the last Step and ends
// the match at the winning score. It is a no-op when nobody scored.
func (k *ScoreKeeper) Settle() {
	if k.pending == nil {
		return
	}
	serve, scorer := *k.pending, k.scorer
	k.pending = nil

	k.state.SetBallVelocity(serve)
	k.ResetBall()

	if k.WinningScore > 0 && k.state.Score(scorer) >= k.WinningScore {
		k.state.IsPaused = true
		if k.OnMatchOver != nil {
			k.OnMatchOver(scorer)
		}
	}
}

// ResetBall puts the ball at the center with the stored ball velocity, or the
// default serve when none was ever stored.
func (k *ScoreKeeper) ResetBall() {
	vel := Vector{X: DefaultBallSpeed, Y: DefaultBallSpeed}
	if k.state.BallVelocity != nil {
		vel = *k.state.BallVelocity
	}
	k.ball.Reset(k.center, vel)
}

// serveVelocity aims the next serve at the player who conceded, at default
// speed, keeping the horizontal direction of the last stored velocity.
func (k *ScoreKeeper) serveVelocity(scorer Player) Vector {
	x := DefaultBallSpeed
	if k.state.BallVelocity != nil && k.state.BallVelocity.X < 0 {
		x = -DefaultBallSpeed
	}
	// primary defends the bottom end (+Y)
	y := DefaultBallSpeed
	if scorer == PlayerPrimary {
		y = -DefaultBallSpeed
	}
	return Vector{X: x, Y: y}
}

// Reset zeroes both scores and drops any unserved point.
func (k *ScoreKeeper) Reset() {
	k.state.PrimaryPlayerScore = 0
	k.state.SecondaryPlayerScore = 0
	k.pending = nil
}
