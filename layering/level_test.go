package layering

import (
	"reflect"
	"testing"
)

func TestNewChainOrdersAndDeduplicates(t *testing.T) {
	chain := NewChain(LevelBase, LevelRequested, LevelUnknown, LevelDefault, LevelBase)

	want := []Level{LevelRequested, LevelDefault, LevelBase}
	if got := chain.Ordered(); !reflect.DeepEqual(want, got) {
		t.Fatalf("unexpected order\nwant: %v\n got: %v", want, got)
	}
	if chain.Strongest() != LevelRequested {
		t.Fatalf("expected requested to be strongest, got %v", chain.Strongest())
	}
	if chain.Weakest() != LevelBase {
		t.Fatalf("expected base to be weakest, got %v", chain.Weakest())
	}
}

func TestEmptyChain(t *testing.T) {
	chain := NewChain()
	if chain.Strongest() != LevelUnknown || chain.Weakest() != LevelUnknown {
		t.Fatalf("expected unknown levels for empty chain")
	}
	if len(chain.Ordered()) != 0 {
		t.Fatalf("expected empty ordering")
	}
}

func TestLevelTextRoundTrip(t *testing.T) {
	for _, level := range []Level{LevelBase, LevelDefault, LevelRequested} {
		text, err := level.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", level, err)
		}
		var parsed Level
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %q: %v", text, err)
		}
		if parsed != level {
			t.Fatalf("expected %v, got %v", level, parsed)
		}
	}
	if ParseLevel("GLOBAL") != LevelUnknown {
		t.Fatalf("unexpected level for unrecognised input")
	}
}
