package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventMatchStart EventType = iota
	EventRound
	EventMatchEnd
	EventCancelled // match stopped before its last round
)

func (e EventType) String() string {
	switch e {
	case EventMatchStart:
		return "MatchStart"
	case EventRound:
		return "Round"
	case EventMatchEnd:
		return "MatchEnd"
	case EventCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// MatchEvent represents a single observable event in a match.
type MatchEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based, 0 before the first round)
	Type    EventType // event type
	Moves   [2]string // each player's move this round, "" outside rounds
	Result  string    // round result from player 0's view
	Details string    // human-readable detail string
}
