package turn

import (
	"encoding/json"

	"github.com/udisondev/beastclash/internal/model"
)

// Outcome summarizes how a round concluded. At most one of ActionRejected,
// NeedSwitch and BattleEnded is set.
type Outcome struct {
	ActionRejected bool         `json:"actionRejected"`
	RejectReason   RejectReason `json:"rejectReason,omitempty"`
	NeedSwitch     bool         `json:"needSwitch"`
	SwitchSide     model.Side   `json:"switchSide"`
	BattleEnded    bool         `json:"battleEnded"`
	Winner         model.Side   `json:"winner"`
	Reason         EndReason    `json:"reason,omitempty"`
	Message        string       `json:"message,omitempty"`
}

// Result is the event log of a single round. It is append-only until
// Finalize seals it.
type Result struct {
	Round int

	events  []Event
	outcome Outcome
	sealed  bool

	rejected   bool
	rejectWhy  RejectReason
	message    string
	switchSide model.Side
	ended      bool
	winner     model.Side
	endReason  EndReason
}

// NewResult starts the log of round.
func NewResult(round int) *Result {
	return &Result{
		Round:      round,
		switchSide: model.SideNone,
		winner:     model.SideNone,
	}
}

// Append adds events in order. Appending to a sealed result is a no-op.
func (r *Result) Append(events ...Event) {
	if r.sealed {
		return
	}
	r.events = append(r.events, events...)
}

// Reject marks the round as a void action.
func (r *Result) Reject(reason RejectReason, message string) {
	if r.sealed {
		return
	}
	r.rejected = true
	r.rejectWhy = reason
	r.message = message
}

// RequireSwitch marks side as needing a replacement before the next round.
func (r *Result) RequireSwitch(side model.Side) {
	if r.sealed {
		return
	}
	r.switchSide = side
}

// End marks the battle as concluded.
func (r *Result) End(winner model.Side, reason EndReason) {
	if r.sealed {
		return
	}
	r.ended = true
	r.winner = winner
	r.endReason = reason
}

// Ended reports whether End was called.
func (r *Result) Ended() bool {
	return r.ended
}

// Finalize seals the log and derives the outcome from the marker that was
// set. A battle end appends exactly one BattleEnded event. Calling it again
// changes nothing.
func (r *Result) Finalize() Outcome {
	if r.sealed {
		return r.outcome
	}

	// Markers are trusted; when several are set the strongest wins.
	switch {
	case r.ended:
		r.events = append(r.events, BattleEnded{Winner: r.winner, Reason: r.endReason})
		r.outcome = Outcome{BattleEnded: true, Winner: r.winner, Reason: r.endReason, SwitchSide: model.SideNone}
	case r.switchSide.Valid():
		r.outcome = Outcome{NeedSwitch: true, SwitchSide: r.switchSide, Winner: model.SideNone}
	case r.rejected:
		r.outcome = Outcome{ActionRejected: true, RejectReason: r.rejectWhy, SwitchSide: model.SideNone, Winner: model.SideNone}
	default:
		r.outcome = Outcome{SwitchSide: model.SideNone, Winner: model.SideNone}
	}
	r.outcome.Message = r.message
	r.sealed = true
	return r.outcome
}

// Sealed reports whether Finalize has run.
func (r *Result) Sealed() bool {
	return r.sealed
}

// Events returns a copy of the log in emission order.
func (r *Result) Events() []Event {
	return append([]Event(nil), r.events...)
}

// Len returns the number of events appended so far.
func (r *Result) Len() int {
	return len(r.events)
}

// Outcome returns the derived summary. Zero until Finalize.
func (r *Result) Outcome() Outcome {
	return r.outcome
}

// Count returns how many events of kind k were appended.
func (r *Result) Count(k Kind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

type resultJSON struct {
	Round   int        `json:"round"`
	Events  []Envelope `json:"events"`
	Outcome Outcome    `json:"outcome"`
}

// MarshalJSON encodes the round with enveloped events.
func (r *Result) MarshalJSON() ([]byte, error) {
	envs, err := Wrap(r.events)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resultJSON{Round: r.Round, Events: envs, Outcome: r.outcome})
}

// UnmarshalJSON restores a stored round. The decoded result is sealed.
func (r *Result) UnmarshalJSON(b []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	events, err := Unwrap(raw.Events)
	if err != nil {
		return err
	}
	*r = Result{Round: raw.Round, events: events, outcome: raw.Outcome, sealed: true}
	return nil
}
