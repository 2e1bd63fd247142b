package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event MatchEvent)
	Events() []MatchEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []MatchEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event MatchEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []MatchEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []MatchEvent {
	var result []MatchEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() MatchEvent {
	if len(l.events) == 0 {
		return MatchEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event MatchEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e MatchEvent) string {
	if e.Type != EventRound {
		return fmt.Sprintf("R%-4d | %s", e.Round, e.Details)
	}
	return fmt.Sprintf("R%-4d | %s vs %s %-4s | %s", e.Round, e.Moves[0], e.Moves[1], e.Result, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []MatchEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewMatchStartEvent(p0, p1 string, rounds int) MatchEvent {
	return MatchEvent{
		Type:    EventMatchStart,
		Details: fmt.Sprintf("=== %s vs %s (%d rounds) ===", p0, p1, rounds),
	}
}

func NewRoundEvent(round int, move0, move1, result, score string) MatchEvent {
	return MatchEvent{
		Round:   round,
		Type:    EventRound,
		Moves:   [2]string{move0, move1},
		Result:  result,
		Details: score,
	}
}

func NewMatchEndEvent(round int, summary string) MatchEvent {
	return MatchEvent{
		Round:   round,
		Type:    EventMatchEnd,
		Details: summary,
	}
}

func NewCancelledEvent(round int, reason string) MatchEvent {
	return MatchEvent{
		Round:   round,
		Type:    EventCancelled,
		Details: fmt.Sprintf("match stopped (%s)", reason),
	}
}

// --- NopLogger: drops every event ---

type NopLogger struct{}

func (NopLogger) Log(MatchEvent) {}

func (NopLogger) Events() []MatchEvent { return nil }
