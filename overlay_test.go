package remoteui

import (
	"errors"
	"testing"
)

func boolPtr(v bool) *bool { return &v }

func TestOverlayMergeRequestedWins(t *testing.T) {
	set := mustOverlays(t, "en",
		Overlay{ID: ParseLocale("en"), Strings: map[string]string{"a": "1", "b": "2"}},
		Overlay{ID: ParseLocale("de"), Strings: map[string]string{"a": "9"}},
	)

	effective := set.Overlay(ParseLocale("de"))
	if effective.Locale.String() != "de" {
		t.Fatalf("expected de, got %s", effective.Locale)
	}
	if effective.Strings["a"] != "9" || effective.Strings["b"] != "2" || len(effective.Strings) != 2 {
		t.Fatalf("unexpected merge %v", effective.Strings)
	}

	base, _ := set.Lookup(ParseLocale("en"))
	if base.Strings["a"] != "1" {
		t.Fatalf("merge must not mutate the default overlay, got %v", base.Strings)
	}
}

func TestOverlayDefaultAndMissingLocale(t *testing.T) {
	set := mustOverlays(t, "en_US",
		Overlay{ID: ParseLocale("en-US"), Strings: map[string]string{"title": "Hello"}},
		Overlay{ID: ParseLocale("ar"), IsRightToLeft: boolPtr(true), Strings: map[string]string{"title": "مرحبا"}},
	)

	for _, requested := range []string{"en-US", "it", "en"} {
		effective := set.Overlay(ParseLocale(requested))
		if effective.Locale.String() != "en-US" || effective.Strings["title"] != "Hello" {
			t.Fatalf("%s: expected default overlay unmerged, got %+v", requested, effective)
		}
		if effective.IsRightToLeft {
			t.Fatalf("%s: default overlay is left to right", requested)
		}
	}

	ar := set.Overlay(ParseLocale("ar"))
	if !ar.IsRightToLeft || ar.Strings["title"] != "مرحبا" {
		t.Fatalf("unexpected ar overlay %+v", ar)
	}
}

func TestOverlayRightToLeftFallsBackToDefault(t *testing.T) {
	set := mustOverlays(t, "he",
		Overlay{ID: ParseLocale("he"), IsRightToLeft: boolPtr(true)},
		Overlay{ID: ParseLocale("yi"), Strings: map[string]string{"x": "y"}},
	)
	if !set.Overlay(ParseLocale("yi")).IsRightToLeft {
		t.Fatalf("expected unset direction to inherit from the default overlay")
	}
}

func TestOverlayWithoutDefault(t *testing.T) {
	set := mustOverlays(t, "en", Overlay{ID: ParseLocale("fr"), Strings: map[string]string{"t": "Bonjour"}})

	if fr := set.Overlay(ParseLocale("fr")); fr.Strings["t"] != "Bonjour" {
		t.Fatalf("expected fr overlay alone, got %+v", fr)
	}
	empty := set.Overlay(ParseLocale("de"))
	if empty.Locale.String() != "en" || len(empty.Strings) != 0 {
		t.Fatalf("expected empty effective overlay, got %+v", empty)
	}

	var zero OverlaySet
	if zero.Overlay(ParseLocale("fr")).Locale != DefaultLocale {
		t.Fatalf("zero set should report the default locale")
	}
}

func TestOverlaySetRejectsDuplicateLocale(t *testing.T) {
	_, err := NewOverlaySet(DefaultLocale,
		Overlay{ID: ParseLocale("pt_BR")},
		Overlay{ID: ParseLocale("pt-br")},
	)
	if !errors.Is(err, ErrDuplicateLocale) {
		t.Fatalf("expected ErrDuplicateLocale, got %v", err)
	}
}

func TestOverlayIsDeterministic(t *testing.T) {
	set := mustOverlays(t, "en",
		Overlay{ID: ParseLocale("en"), Strings: map[string]string{"a": "1", "b": "2", "c": "3"}},
		Overlay{ID: ParseLocale("es"), Strings: map[string]string{"b": "dos"}},
	)
	first := set.Overlay(ParseLocale("es"))
	for i := 0; i < 10; i++ {
		next := set.Overlay(ParseLocale("es"))
		for key, value := range first.Strings {
			if next.Strings[key] != value {
				t.Fatalf("iteration %d: key %s changed %q -> %q", i, key, value, next.Strings[key])
			}
		}
	}
}

func TestParseLocale(t *testing.T) {
	cases := []struct {
		in       string
		id       string
		language string
	}{
		{"en_us", "en-US", "en"},
		{"EN-gb", "en-GB", "en"},
		{"zh-Hant-TW", "zh-Hant-TW", "zh"},
		{" fr ", "fr", "fr"},
		{"", "", ""},
	}
	for _, tc := range cases {
		got := ParseLocale(tc.in)
		if got.String() != tc.id || got.LanguageCode() != tc.language {
			t.Fatalf("ParseLocale(%q) = %q/%q, want %q/%q", tc.in, got, got.LanguageCode(), tc.id, tc.language)
		}
	}
	if !ParseLocale("en-GB").SameLanguage(ParseLocale("en_US")) {
		t.Fatalf("expected same language bucket")
	}
	if ParseLocale("en-GB").Equal(ParseLocale("en-US")) {
		t.Fatalf("different regions are different locales")
	}

	var decoded LocaleID
	if err := decoded.UnmarshalText([]byte("pt_br")); err != nil || decoded.String() != "pt-BR" {
		t.Fatalf("unexpected text decode %q (%v)", decoded, err)
	}
}
