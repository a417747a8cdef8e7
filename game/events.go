package game

// EventKind is the closed set of events the simulation publishes.
type EventKind int

const (
	// EventBallHitPlayer fires on every paddle contact. Payload: *HitPayload
	EventBallHitPlayer EventKind = iota
	// EventBallToPrimaryEnd fires when the ball leaves through the bottom edge,
	// behind the primary paddle. Payload: *ScorePayload (secondary scores)
	EventBallToPrimaryEnd
	// EventBallToSecondaryEnd fires when the ball leaves through the top edge.
	// Payload: *ScorePayload (primary scores)
	EventBallToSecondaryEnd
)

func (k EventKind) String() string {
	switch k {
	case EventBallHitPlayer:
		return "ball_hit_player"
	case EventBallToPrimaryEnd:
		return "ball_to_primary_end"
	case EventBallToSecondaryEnd:
		return "ball_to_secondary_end"
	default:
		return "unknown"
	}
}

// Player identifies one side of the match.
type Player int

const (
	PlayerPrimary Player = iota
	PlayerSecondary
)

func (p Player) String() string {
	if p == PlayerSecondary {
		return "secondary"
	}
	return "primary"
}

// Face is the paddle face a hit landed on.
type Face int

const (
	FaceTop Face = iota
	FaceBottom
	FaceLeft
	FaceRight
)

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	default:
		return "right"
	}
}

// HitTag refines EventBallHitPlayer. The primary-player tag is published in
// addition to the untagged hit, never instead of it.
type HitTag int

const (
	HitAny HitTag = iota
	HitPrimaryPlayer
)

func (t HitTag) String() string {
	if t == HitPrimaryPlayer {
		return "ball_hit_primary_player"
	}
	return ""
}

type HitPayload struct {
	Face Face
	Tag  HitTag
}

type ScorePayload struct {
	Scorer Player
}

// Event carries exactly one payload matching its Kind.
type Event struct {
	Kind  EventKind
	Hit   *HitPayload
	Score *ScorePayload
}

func hitEvent(face Face, tag HitTag) Event {
	return Event{Kind: EventBallHitPlayer, Hit: &HitPayload{Face: face, Tag: tag}}
}

func scoreEvent(kind EventKind, scorer Player) Event {
	return Event{Kind: kind, Score: &ScorePayload{Scorer: scorer}}
}

// Publisher receives events from Step.
type Publisher interface {
	Publish(ev Event)
}

type Listener func(ev Event)

// Bus delivers events synchronously, in subscription order, on the caller's
// goroutine. It is not safe for concurrent use.
type Bus struct {
	byKind map[EventKind][]Listener
	all    []Listener
}

func NewBus() *Bus {
	return &Bus{byKind: make(map[EventKind][]Listener)}
}

func (b *Bus) Subscribe(kind EventKind, l Listener) {
	b.byKind[kind] = append(b.byKind[kind], l)
}

// SubscribeAll registers l for every kind. These run after kind listeners.
func (b *Bus) SubscribeAll(l Listener) {
	b.all = append(b.all, l)
}

func (b *Bus) Publish(ev Event) {
	for _, l := range b.byKind[ev.Kind] {
		l(ev)
	}
	for _, l := range b.all {
		l(ev)
	}
}

// Recorder is a Publisher that keeps every event, in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(ev Event) { r.Events = append(r.Events, ev) }

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
