//go:build property
// +build property

package remoteui

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return parameters
}

// Reconcile never returns a version lower than the incoming one inside a
// language bucket, and only restores when the cached version is higher.
func TestReconcileProperties(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())
	languages := gen.OneConstOf("en", "en-GB", "fr", "de-AT")

	properties.Property("restored only when cached is strictly newer in the same language", prop.ForAll(
		func(incomingVersion, cachedVersion int64, incomingLocale, cachedLocale string) bool {
			incoming := VersionedValue[int64]{Value: incomingVersion, Version: incomingVersion, Locale: ParseLocale(incomingLocale)}
			cached := VersionedValue[int64]{Value: cachedVersion, Version: cachedVersion, Locale: ParseLocale(cachedLocale)}
			got := Reconcile(incoming, &cached)

			sameBucket := incoming.Locale.SameLanguage(cached.Locale)
			if sameBucket && cachedVersion > incomingVersion {
				return got.Origin == OriginRestored && got.Value == cached
			}
			return got.Origin == OriginFresh && got.Value == incoming
		},
		gen.Int64Range(0, 20),
		gen.Int64Range(0, 20),
		languages,
		languages,
	))

	properties.Property("reconcile is idempotent", prop.ForAll(
		func(incomingVersion, cachedVersion int64) bool {
			incoming := VersionedValue[int64]{Version: incomingVersion, Locale: DefaultLocale}
			cached := VersionedValue[int64]{Version: cachedVersion, Locale: DefaultLocale}
			first := Reconcile(incoming, &cached)
			second := Reconcile(incoming, &first.Value)
			return second.Value == first.Value
		},
		gen.Int64Range(-5, 5),
		gen.Int64Range(-5, 5),
	))

	properties.TestingRun(t)
}

// The requested overlay wins every key it defines; every other default key
// survives the merge unchanged.
func TestOverlayMergeProperties(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("requested keys win, default keys survive", prop.ForAll(
		func(defaults, requested map[string]string) bool {
			set, err := NewOverlaySet(ParseLocale("en"),
				Overlay{ID: ParseLocale("en"), Strings: defaults},
				Overlay{ID: ParseLocale("nl"), Strings: requested},
			)
			if err != nil {
				return false
			}
			effective := set.Overlay(ParseLocale("nl"))
			for key, value := range requested {
				if effective.Strings[key] != value {
					return false
				}
			}
			for key, value := range defaults {
				if _, overridden := requested[key]; !overridden && effective.Strings[key] != value {
					return false
				}
			}
			for key := range effective.Strings {
				_, inDefault := defaults[key]
				_, inRequested := requested[key]
				if !inDefault && !inRequested {
					return false
				}
			}
			return true
		},
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// A chain of fragments resolves to its leaf whatever its length, and closing
// the chain back onto any earlier link is always reported as a cycle.
func TestLocalizeGraphProperties(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())
	l, err := NewLocalizer()
	if err != nil {
		t.Fatalf("new localizer: %v", err)
	}

	chain := func(length int, backTo int) *Descriptor {
		fragments := map[string]RawElement{}
		for i := 0; i < length-1; i++ {
			fragments[fmt.Sprintf("n%d", i)] = RawReference{ElementID: fmt.Sprintf("n%d", i+1)}
		}
		last := fmt.Sprintf("n%d", length-1)
		if backTo >= 0 {
			fragments[last] = RawReference{ElementID: fmt.Sprintf("n%d", backTo)}
		} else {
			fragments[last] = RawSpace{Count: length}
		}
		return &Descriptor{ID: "chain", DefaultScreen: RawScreen{Content: RawReference{ElementID: "n0"}}, Fragments: fragments}
	}

	properties.Property("acyclic chains resolve deterministically", prop.ForAll(
		func(length int) bool {
			d := chain(length, -1)
			first, err := l.Localize(d, LocaleID{})
			if err != nil {
				return false
			}
			second, err := l.Localize(d, LocaleID{})
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first, second) && first.Screen.Content.(Space).Count == length
		},
		gen.IntRange(1, 64),
	))

	properties.Property("closed chains are cycles", prop.ForAll(
		func(length, back int) bool {
			back = back % length
			_, err := l.Localize(chain(length, back), LocaleID{})
			return errors.Is(err, ErrReferenceCycle)
		},
		gen.IntRange(1, 64),
		gen.IntRange(0, 64),
	))

	properties.TestingRun(t)
}
