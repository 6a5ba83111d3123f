package turn

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Envelope is the wire form of one event: its position in the log, its
// kind and the kind-specific payload.
type Envelope struct {
	Seq  int             `json:"seq"`
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Wrap encodes events into envelopes numbered from 1.
func Wrap(events []Event) ([]Envelope, error) {
	out := make([]Envelope, 0, len(events))
	for i, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encoding %s event: %w", e.Kind(), err)
		}
		out = append(out, Envelope{Seq: i + 1, Kind: e.Kind(), Data: data})
	}
	return out, nil
}

// Decode restores the concrete event carried by the envelope.
func (e Envelope) Decode() (Event, error) {
	ptr, ok := newEvent(e.Kind)
	if !ok {
		return nil, fmt.Errorf("decoding event %d: unknown kind %d", e.Seq, e.Kind)
	}
	if err := json.Unmarshal(e.Data, ptr); err != nil {
		return nil, fmt.Errorf("decoding %s event: %w", e.Kind, err)
	}
	// Events are handled by value everywhere else.
	return reflect.ValueOf(ptr).Elem().Interface().(Event), nil
}

// Unwrap decodes envelopes in order.
func Unwrap(envs []Envelope) ([]Event, error) {
	out := make([]Event, 0, len(envs))
	for _, env := range envs {
		e, err := env.Decode()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
