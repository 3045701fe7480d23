package hydrate

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type placement struct {
	ID       string   `json:"id"`
	Revision int64    `json:"revision"`
	Products []string `json:"products"`
}

func TestDecodeRunsChecksBeforeDecoding(t *testing.T) {
	var seen json.Number
	decoder := NewDecoder[placement](func(payload map[string]any) error {
		seen, _ = payload["revision"].(json.Number)
		return nil
	})

	got, err := decoder.Decode("onboarding", []byte(`{"id": "onboarding", "revision": 9007199254740993, "products": ["a", "b"]}`))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	want := placement{ID: "onboarding", Revision: 9007199254740993, Products: []string{"a", "b"}}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("decoded value mismatch:\nwant: %#v\n got: %#v", want, got)
	}
	if seen.String() != "9007199254740993" {
		t.Fatalf("check must see the exact revision, got %q", seen)
	}
}

func TestDecodeReportsFailingStage(t *testing.T) {
	rejected := errors.New("schema rejected payload")
	cases := []struct {
		name    string
		checks  []Check
		payload string
		stage   Stage
	}{
		{name: "blank", payload: "  ", stage: StageParse},
		{name: "not an object", checks: []Check{func(map[string]any) error { return nil }}, payload: "null", stage: StageParse},
		{name: "check", checks: []Check{func(map[string]any) error { return rejected }}, payload: `{"id":"x"}`, stage: StageCheck},
		{name: "type mismatch", payload: `{"revision":"seven"}`, stage: StageDecode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDecoder[placement](tc.checks...).Decode("paywall.json", []byte(tc.payload))
			var hydrateErr *Error
			if !errors.As(err, &hydrateErr) || hydrateErr.Stage != tc.stage {
				t.Fatalf("expected %s failure, got %v", tc.stage, err)
			}
			if !strings.Contains(err.Error(), `"paywall.json"`) {
				t.Fatalf("expected source in message, got %v", err)
			}
		})
	}

	_, err := NewDecoder[placement](func(map[string]any) error { return rejected }).Decode("paywall.json", []byte(`{}`))
	if !errors.Is(err, rejected) {
		t.Fatalf("expected check error to be wrapped, got %v", err)
	}
}

func TestDecodeStopsAtFirstFailingCheck(t *testing.T) {
	var calls int
	first := errors.New("first")
	decoder := NewDecoder[placement](
		func(map[string]any) error { calls++; return first },
		nil,
		func(map[string]any) error { calls++; return nil },
	)
	if _, err := decoder.Decode("ordered", []byte(`{}`)); !errors.Is(err, first) {
		t.Fatalf("expected first check error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected later checks to be skipped, ran %d", calls)
	}
}
