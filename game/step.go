package game

import "math"

// Below this speed a coasting paddle is considered stopped.
const restSpeed = 0.01

// Step advances the match by delta frames. It mutates ball, paddles and state
// in place and publishes events on pub. Scores are left to listeners.
//
// A paused state makes Step a no-op.
func Step(delta float64, field Bounds, state *GameState, ball *Ball, primary, secondary *Paddle, pub Publisher) {
	if state.IsPaused {
		return
	}

	primaryHit := ball.CollisionSide(&primary.Body)
	secondaryHit := ball.CollisionSide(&secondary.Body)
	ballTouched := false

	if primaryHit.Left || secondaryHit.Left {
		if ball.Velocity.X > 0 {
			ball.Velocity.InvertX()
		}
		ball.Velocity.MultiplyX(BallHitMultiplier)
		ball.ClampVelocity()
		ballTouched = true
		pub.Publish(hitEvent(FaceLeft, HitAny))
	}

	if primaryHit.Right || secondaryHit.Right {
		if ball.Velocity.X < 0 {
			ball.Velocity.InvertX()
		}
		ball.Velocity.MultiplyX(BallHitMultiplier)
		ball.ClampVelocity()
		ballTouched = true
		pub.Publish(hitEvent(FaceRight, HitAny))
	}

	if primaryHit.Top || secondaryHit.Bottom {
		ball.Velocity.InvertY()
		ball.Velocity.Y = ball.Velocity.Y*ReboundMultiplier + ReboundKick*direction(ball.Velocity.Y)
		ball.ClampVelocity()
		ballTouched = true
		face := FaceBottom
		if primaryHit.Top {
			face = FaceTop
		}
		pub.Publish(hitEvent(face, HitAny))
	}

	if primaryHit.Top {
		pub.Publish(hitEvent(FaceTop, HitPrimaryPlayer))
	}

	bb := ball.Bounds()
	if bb.Top < field.Top {
		pub.Publish(scoreEvent(EventBallToSecondaryEnd, PlayerPrimary))
	}
	if bb.Bottom > field.Bottom {
		pub.Publish(scoreEvent(EventBallToPrimaryEnd, PlayerSecondary))
	}

	if bounceOffSideWalls(bb, field, ball) {
		ballTouched = true
	}

	steerPrimary(delta, field, state.PrimaryPlayerState, primary)

	secondary.Sync(state.SecondaryPlayerPos, state.SecondaryPlayerVel)

	ball.Update(delta)
	primary.Update(delta)
	secondary.Update(delta)

	if ballTouched {
		state.SetBallVelocity(ball.Velocity)
	}
	state.PrimaryPlayerPos = primary.Position.Copy()
	state.PrimaryPlayerVel = primary.Velocity.Copy()
}

// steerPrimary applies the local player's intent to the paddle velocity.
func steerPrimary(delta float64, field Bounds, intent Intent, p *Paddle) {
	p.Intent = intent
	accel := DefaultPlayerAcceleration * delta
	bounds := p.Bounds()

	switch intent {
	case IntentLeft:
		if p.CanMove() {
			// one-time push when reversing out of a rightward slide
			if p.Velocity.X > 0 {
				p.Velocity.SubtractX(DefaultPlayerSpeed)
			}
			p.Velocity.SubtractX(accel)
			p.ClampVelocity()
		} else if bounds.Right >= field.Right {
			p.Velocity.SubtractX(accel)
			p.ClampVelocity()
		}
	case IntentRight:
		if p.CanMove() {
			if p.Velocity.X < 0 {
				p.Velocity.AddX(DefaultPlayerSpeed)
			}
			p.Velocity.AddX(accel)
			p.ClampVelocity()
		} else if bounds.Left <= field.Left {
			p.Velocity.AddX(accel)
			p.ClampVelocity()
		}
	default:
		p.Velocity.MultiplyX(math.Pow(PlayerFriction, delta))
		if math.Abs(p.Velocity.X) < restSpeed {
			p.Velocity.X = 0
		}
		p.ClampVelocity()
	}
}

// bounceOffSideWalls turns the ball back into the field when it crosses the
// left or right edge while still heading outward.
func bounceOffSideWalls(bb, field Bounds, ball *Ball) bool {
	if (bb.Left < field.Left && ball.Velocity.X < 0) || (bb.Right > field.Right && ball.Velocity.X > 0) {
		ball.Velocity.InvertX()
		return true
	}
	return false
}

// direction is sign(v) with zero mapped to +1.
func direction(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
