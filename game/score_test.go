package game

import "testing"

func TestScoreKeeperCountsAndServes(t *testing.T) {
	s := runningSession(t)
	s.Ball.Position = Vector{X: 10, Y: -20}

	s.Bus.Publish(scoreEvent(EventBallToSecondaryEnd, PlayerPrimary))
	if s.Ball.Position != (Vector{X: 10, Y: -20}) {
		t.Fatal("ball served before Settle")
	}
	s.Scores.Settle()

	if s.State.PrimaryPlayerScore != 1 || s.State.SecondaryPlayerScore != 0 {
		t.Fatalf("scores = %d-%d, want 1-0", s.State.PrimaryPlayerScore, s.State.SecondaryPlayerScore)
	}
	if s.Ball.Position != s.Config.Center() {
		t.Fatalf("ball not re-centered: %+v", s.Ball.Position)
	}
	// served toward the secondary end, the one that conceded
	if s.Ball.Velocity != (Vector{X: DefaultBallSpeed, Y: -DefaultBallSpeed}) {
		t.Fatalf("serve velocity = %+v", s.Ball.Velocity)
	}

	s.State.SetBallVelocity(Vector{X: -9, Y: 9})
	s.Bus.Publish(scoreEvent(EventBallToPrimaryEnd, PlayerSecondary))
	s.Scores.Settle()

	if s.State.SecondaryPlayerScore != 1 {
		t.Fatalf("secondary score = %d, want 1", s.State.SecondaryPlayerScore)
	}
	if s.Ball.Velocity != (Vector{X: -DefaultBallSpeed, Y: DefaultBallSpeed}) {
		t.Fatalf("serve velocity = %+v", s.Ball.Velocity)
	}
}

func TestScoreKeeperIgnoresHits(t *testing.T) {
	s := runningSession(t)
	s.Bus.Publish(hitEvent(FaceTop, HitAny))
	if s.State.PrimaryPlayerScore+s.State.SecondaryPlayerScore != 0 {
		t.Fatal("hit event changed the score")
	}
}

func TestScoreKeeperMatchOver(t *testing.T) {
	s := runningSession(t)
	s.Scores.WinningScore = 2
	var winners []Player
	s.Scores.OnMatchOver = func(p Player) { winners = append(winners, p) }

	s.Bus.Publish(scoreEvent(EventBallToPrimaryEnd, PlayerSecondary))
	s.Scores.Settle()
	if s.State.IsPaused || len(winners) != 0 {
		t.Fatal("match ended after one point")
	}
	s.Bus.Publish(scoreEvent(EventBallToPrimaryEnd, PlayerSecondary))
	s.Scores.Settle()
	if !s.State.IsPaused {
		t.Fatal("state not paused after the winning point")
	}
	if len(winners) != 1 || winners[0] != PlayerSecondary {
		t.Fatalf("winners = %v", winners)
	}
}

func TestSessionScoresThroughTick(t *testing.T) {
	s := runningSession(t)
	s.Ball.Position = Vector{X: 100, Y: 4}
	s.Ball.Velocity = Vector{X: 1, Y: -3}

	s.Tick(1)

	if s.State.PrimaryPlayerScore != 1 {
		t.Fatalf("primary score = %d, want 1", s.State.PrimaryPlayerScore)
	}
	if s.Ball.Position != s.Config.Center() {
		t.Fatalf("ball = %+v, want center", s.Ball.Position)
	}
	if s.Ball.Velocity != (Vector{X: DefaultBallSpeed, Y: -DefaultBallSpeed}) {
		t.Fatalf("serve velocity = %+v", s.Ball.Velocity)
	}
}

func TestSessionCornerExitKeepsServeDirection(t *testing.T) {
	s := runningSession(t)
	s.State.SetBallVelocity(Vector{X: -3, Y: -3})
	s.Ball.Position = Vector{X: 3, Y: 2}
	s.Ball.Velocity = Vector{X: -3, Y: -3}

	s.Tick(1)

	want := Vector{X: -DefaultBallSpeed, Y: -DefaultBallSpeed}
	if got := *s.State.BallVelocity; got != want {
		t.Fatalf("stored velocity = %+v, want %+v", got, want)
	}
	if s.Ball.Velocity != want || s.Ball.Position != s.Config.Center() {
		t.Fatalf("ball = %+v %+v, want center with %+v", s.Ball.Position, s.Ball.Velocity, want)
	}

	// the serve moves on the following tick
	s.Tick(1)
	if s.Ball.Position != (Vector{X: 170 - DefaultBallSpeed, Y: 300 - DefaultBallSpeed}) {
		t.Fatalf("ball after serve = %+v", s.Ball.Position)
	}
}

func TestSessionWinningPointLeavesBallCentered(t *testing.T) {
	s := runningSession(t)
	s.Scores.WinningScore = 1
	var winner *Player
	s.Scores.OnMatchOver = func(p Player) { winner = &p }
	s.Ball.Position = Vector{X: 170, Y: 2}

	s.Tick(1)

	if !s.State.IsPaused || winner == nil || *winner != PlayerPrimary {
		t.Fatalf("paused = %v, winner = %v", s.State.IsPaused, winner)
	}
	if s.Ball.Position != s.Config.Center() {
		t.Fatalf("ball = %+v, want center", s.Ball.Position)
	}
	s.Tick(1)
	if s.Ball.Position != s.Config.Center() {
		t.Fatal("ball moved while paused")
	}
}
