package remoteui

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/goliatone/go-remoteui/layering"
)

// Overlay is a per-locale bundle of string and asset overrides.
type Overlay struct {
	ID            LocaleID
	IsRightToLeft *bool
	Strings       map[string]string
	Assets        map[AssetID]Asset
}

// overlaySnapshot is the mergeable part of an Overlay.
type overlaySnapshot struct {
	IsRightToLeft *bool
	Strings       map[string]string
	Assets        map[AssetID]Asset
}

func (o Overlay) snapshot() overlaySnapshot {
	return overlaySnapshot{IsRightToLeft: o.IsRightToLeft, Strings: o.Strings, Assets: o.Assets}
}

// OverlaySet holds every localization of a descriptor keyed by locale, plus
// the locale the descriptor was authored in.
type OverlaySet struct {
	defaultLocale LocaleID
	overlays      map[string]Overlay
}

// NewOverlaySet builds a set. Two overlays for the same locale are rejected
// with ErrDuplicateLocale.
func NewOverlaySet(defaultLocale LocaleID, overlays ...Overlay) (OverlaySet, error) {
	if defaultLocale.IsZero() {
		defaultLocale = DefaultLocale
	}
	set := OverlaySet{defaultLocale: defaultLocale, overlays: make(map[string]Overlay, len(overlays))}
	for _, overlay := range overlays {
		key := overlay.ID.String()
		if _, exists := set.overlays[key]; exists {
			return OverlaySet{}, duplicateLocale(overlay.ID)
		}
		set.overlays[key] = overlay
	}
	return set, nil
}

// DefaultLocale returns the locale the descriptor was authored in.
func (s OverlaySet) DefaultLocale() LocaleID {
	if s.defaultLocale.IsZero() {
		return DefaultLocale
	}
	return s.defaultLocale
}

// Lookup returns the overlay registered for exactly locale.
func (s OverlaySet) Lookup(locale LocaleID) (Overlay, bool) {
	overlay, ok := s.overlays[locale.String()]
	return overlay, ok
}

// Len returns the number of overlays in the set.
func (s OverlaySet) Len() int {
	return len(s.overlays)
}

// Overlays returns every overlay in the set ordered by locale.
func (s OverlaySet) Overlays() []Overlay {
	out := make([]Overlay, 0, len(s.overlays))
	for _, overlay := range s.overlays {
		out = append(out, overlay)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// EffectiveOverlay is the merged view of a requested overlay over the default
// overlay. Requested and Default keep the contributing layers for tracing.
type EffectiveOverlay struct {
	Locale        LocaleID
	IsRightToLeft bool
	Strings       map[string]string
	Assets        map[AssetID]Asset

	requested *Overlay
	fallback  *Overlay
}

// Overlay returns the effective overlay for locale. An exact, non-default
// match is merged over the default overlay with the match winning on key
// collisions; the default overlay itself, or a locale with no overlay, yields
// the default overlay unmerged. The result depends only on the inputs.
func (s OverlaySet) Overlay(locale LocaleID) EffectiveOverlay {
	defaultLocale := s.DefaultLocale()
	fallback, hasDefault := s.overlays[defaultLocale.String()]

	requested, ok := s.overlays[locale.String()]
	if !ok || requested.ID.Equal(defaultLocale) {
		if !hasDefault {
			return EffectiveOverlay{Locale: defaultLocale}
		}
		return effectiveFrom(fallback.ID, layering.Clone(fallback.snapshot()), nil, &fallback)
	}
	if !hasDefault {
		return effectiveFrom(requested.ID, layering.Clone(requested.snapshot()), &requested, nil)
	}

	merged := layering.MergeLayers(requested.snapshot(), fallback.snapshot())
	return effectiveFrom(requested.ID, merged, &requested, &fallback)
}

func effectiveFrom(locale LocaleID, snapshot overlaySnapshot, requested, fallback *Overlay) EffectiveOverlay {
	rtl := false
	if snapshot.IsRightToLeft != nil {
		rtl = *snapshot.IsRightToLeft
	}
	return EffectiveOverlay{
		Locale:        locale,
		IsRightToLeft: rtl,
		Strings:       snapshot.Strings,
		Assets:        snapshot.Assets,
		requested:     requested,
		fallback:      fallback,
	}
}

// String returns the effective string for id.
func (e EffectiveOverlay) String(id string) (string, bool) {
	value, ok := e.Strings[id]
	return value, ok
}

// Asset returns the effective overlay asset for id.
func (e EffectiveOverlay) Asset(id AssetID) (Asset, bool) {
	asset, ok := e.Assets[id]
	return asset, ok
}

type wireOverlay struct {
	ID            string       `json:"id"`
	IsRightToLeft *bool        `json:"is_right_to_left"`
	Strings       []wireString `json:"strings"`
	Assets        *AssetTable  `json:"assets"`
}

type wireString struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// UnmarshalJSON decodes a wire localization object.
func (o *Overlay) UnmarshalJSON(data []byte) error {
	var wire wireOverlay
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	locale := ParseLocale(wire.ID)
	if locale.IsZero() {
		return fmt.Errorf("remoteui: localization id is required")
	}
	overlay := Overlay{ID: locale, IsRightToLeft: wire.IsRightToLeft}
	if wire.Strings != nil {
		overlay.Strings = make(map[string]string, len(wire.Strings))
		for _, entry := range wire.Strings {
			overlay.Strings[entry.ID] = entry.Value
		}
	}
	if wire.Assets != nil {
		overlay.Assets = wire.Assets.Map()
	}
	*o = overlay
	return nil
}

// MarshalJSON encodes the overlay as a wire localization object with strings
// ordered by id.
func (o Overlay) MarshalJSON() ([]byte, error) {
	wire := wireOverlay{ID: o.ID.String(), IsRightToLeft: o.IsRightToLeft}
	if o.Strings != nil {
		ids := make([]string, 0, len(o.Strings))
		for id := range o.Strings {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		wire.Strings = make([]wireString, 0, len(ids))
		for _, id := range ids {
			wire.Strings = append(wire.Strings, wireString{ID: id, Value: o.Strings[id]})
		}
	}
	if o.Assets != nil {
		entries := make([]AssetEntry, 0, len(o.Assets))
		for id, asset := range o.Assets {
			entries = append(entries, AssetEntry{ID: id, Asset: asset})
		}
		table, err := NewAssetTable(entries...)
		if err != nil {
			return nil, err
		}
		wire.Assets = &table
	}
	return json.Marshal(wire)
}
