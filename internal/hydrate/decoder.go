// Package hydrate decodes JSON objects into typed values after running
// checks, such as schema validation, against their generic form.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Stage names the step of Decode that failed.
type Stage string

const (
	StageParse  Stage = "parse"
	StageCheck  Stage = "check"
	StageDecode Stage = "decode"
)

// Error reports which stage rejected the payload named Source.
type Error struct {
	Source string
	Stage  Stage
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("hydrate: %s %q: %v", e.Stage, e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Check inspects a payload before typed decoding. Numbers arrive as
// json.Number so 64-bit revisions are not rounded.
type Check func(payload map[string]any) error

// Decoder decodes JSON objects into T.
type Decoder[T any] struct {
	checks []Check
}

// NewDecoder returns a decoder that runs checks, in order, before decoding.
func NewDecoder[T any](checks ...Check) *Decoder[T] {
	d := &Decoder[T]{}
	for _, check := range checks {
		if check != nil {
			d.checks = append(d.checks, check)
		}
	}
	return d
}

// Decode parses data as a JSON object, runs the checks on it and decodes it
// into T. The first failing stage is returned as an *Error.
func (d *Decoder[T]) Decode(source string, data []byte) (T, error) {
	var zero T
	if len(bytes.TrimSpace(data)) == 0 {
		return zero, &Error{Source: source, Stage: StageParse, Err: fmt.Errorf("payload is empty")}
	}

	if len(d.checks) > 0 {
		var payload map[string]any
		if err := newDecoder(data).Decode(&payload); err != nil {
			return zero, &Error{Source: source, Stage: StageParse, Err: err}
		}
		if payload == nil {
			return zero, &Error{Source: source, Stage: StageParse, Err: fmt.Errorf("payload is not an object")}
		}
		for _, check := range d.checks {
			if err := check(payload); err != nil {
				return zero, &Error{Source: source, Stage: StageCheck, Err: err}
			}
		}
	}

	var result T
	if err := newDecoder(data).Decode(&result); err != nil {
		return zero, &Error{Source: source, Stage: StageDecode, Err: err}
	}
	return result, nil
}

func newDecoder(data []byte) *json.Decoder {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder
}
