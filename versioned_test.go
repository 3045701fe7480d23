package remoteui

import "testing"

func TestReconcile(t *testing.T) {
	en := ParseLocale("en-US")
	cases := []struct {
		name     string
		incoming VersionedValue[string]
		cached   *VersionedValue[string]
		want     string
		origin   Origin
	}{
		{
			name:     "empty cache",
			incoming: VersionedValue[string]{Value: "new", Version: 1, Locale: en},
			want:     "new",
			origin:   OriginFresh,
		},
		{
			name:     "cached is newer",
			incoming: VersionedValue[string]{Value: "new", Version: 5, Locale: en},
			cached:   &VersionedValue[string]{Value: "old", Version: 7, Locale: ParseLocale("en-GB")},
			want:     "old",
			origin:   OriginRestored,
		},
		{
			name:     "incoming is newer",
			incoming: VersionedValue[string]{Value: "new", Version: 9, Locale: en},
			cached:   &VersionedValue[string]{Value: "old", Version: 7, Locale: en},
			want:     "new",
			origin:   OriginFresh,
		},
		{
			name:     "equal versions prefer incoming",
			incoming: VersionedValue[string]{Value: "new", Version: 7, Locale: en},
			cached:   &VersionedValue[string]{Value: "old", Version: 7, Locale: en},
			want:     "new",
			origin:   OriginFresh,
		},
		{
			name:     "other language never restores",
			incoming: VersionedValue[string]{Value: "nouveau", Version: 1, Locale: ParseLocale("fr")},
			cached:   &VersionedValue[string]{Value: "old", Version: 100, Locale: en},
			want:     "nouveau",
			origin:   OriginFresh,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(tc.incoming, tc.cached)
			if got.Origin != tc.origin || got.Value.Value != tc.want {
				t.Fatalf("got %s/%q, want %s/%q", got.Origin, got.Value.Value, tc.origin, tc.want)
			}
		})
	}
}

func TestOriginString(t *testing.T) {
	if OriginFresh.String() != "fresh" || OriginRestored.String() != "restored" || Origin(42).String() != "unknown" {
		t.Fatalf("unexpected origin names")
	}
}
