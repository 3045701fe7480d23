package remoteui

import (
	"encoding/json"

	"github.com/goliatone/go-remoteui/layering"
)

// Trace captures provenance information for an asset id across the layers a
// Resolver consults, strongest first.
type Trace struct {
	ID     AssetID      `json:"id"`
	Layers []Provenance `json:"layers"`
}

// Provenance details how one layer contributed to a traced id.
type Provenance struct {
	Level  layering.Level `json:"level"`
	Locale string         `json:"locale,omitempty"`
	Kind   AssetKind      `json:"kind,omitempty"`
	Found  bool           `json:"found"`
}

// Winner returns the strongest layer that defines the id.
func (t Trace) Winner() (Provenance, bool) {
	for _, layer := range t.Layers {
		if layer.Found {
			return layer, true
		}
	}
	return Provenance{}, false
}

// Trace reports, for every layer the resolver consults, whether it defines id.
// The first found entry is the one Asset returns.
func (r Resolver) Trace(id AssetID) Trace {
	trace := Trace{ID: id}
	chain := layering.NewChain(layering.LevelRequested, layering.LevelDefault, layering.LevelBase)
	for _, level := range chain.Ordered() {
		var (
			asset  Asset
			found  bool
			locale string
		)
		switch level {
		case layering.LevelRequested:
			if r.overlay.requested == nil {
				continue
			}
			locale = r.overlay.requested.ID.String()
			asset, found = r.overlay.requested.Assets[id]
		case layering.LevelDefault:
			if r.overlay.fallback == nil {
				continue
			}
			locale = r.overlay.fallback.ID.String()
			asset, found = r.overlay.fallback.Assets[id]
		case layering.LevelBase:
			asset, found = r.base.Lookup(id)
		}
		entry := Provenance{Level: level, Locale: locale, Found: found}
		if found {
			entry.Kind = asset.Kind()
		}
		trace.Layers = append(trace.Layers, entry)
	}
	return trace
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
