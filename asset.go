package remoteui

import (
	"fmt"
	"sort"
)

// AssetID identifies an entry in an asset table or a localization overlay.
type AssetID string

// DarkSuffix is appended to an AssetID to derive the id of its dark-mode
// variant. Dark variants are never stored as a separate relation.
const DarkSuffix = "@dark"

// Dark returns the derived identifier of the dark-mode variant of id.
func (id AssetID) Dark() AssetID {
	return id + DarkSuffix
}

// AssetKind names the variant held by an Asset.
type AssetKind string

const (
	AssetKindFilling AssetKind = "filling"
	AssetKindImage   AssetKind = "image"
	AssetKindVideo   AssetKind = "video"
	AssetKindFont    AssetKind = "font"
	AssetKindUnknown AssetKind = "unknown"
)

// Asset is the sum type of every value an asset id can resolve to. The
// concrete variants are Filling, Image, Video, Font and UnknownAsset.
type Asset interface {
	Kind() AssetKind
}

// Color is an RGBA color decoded from "#RRGGBB" or "#RRGGBBAA".
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Hex renders the color in "#RRGGBBAA" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// GradientKind is the geometry of a gradient filling.
type GradientKind string

const (
	GradientLinear GradientKind = "linear"
	GradientRadial GradientKind = "radial"
	GradientConic  GradientKind = "conic"
)

// GradientStop places a color at a relative position in [0, 1].
type GradientStop struct {
	Color    Color   `json:"color"`
	Position float64 `json:"p"`
}

// GradientPoints are the start and end coordinates of a gradient in unit space.
type GradientPoints struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Gradient is a multi-stop gradient.
type Gradient struct {
	Kind   GradientKind   `json:"kind"`
	Stops  []GradientStop `json:"stops"`
	Points GradientPoints `json:"points"`
}

// Filling is either a solid color or a gradient. Exactly one of Color and
// Gradient is set.
type Filling struct {
	Color    *Color    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

func (Filling) Kind() AssetKind { return AssetKindFilling }

// Image references a remote or inline raster/vector source.
type Image struct {
	URL     string `json:"url,omitempty"`
	Data    []byte `json:"data,omitempty"`
	Preview []byte `json:"preview,omitempty"`
}

func (Image) Kind() AssetKind { return AssetKindImage }

// Video references a stream source and its poster frame.
type Video struct {
	URL    string `json:"url"`
	Poster Image  `json:"poster"`
}

func (Video) Kind() AssetKind { return AssetKindVideo }

// Font describes a typeface and its defaults.
type Font struct {
	Families []string `json:"families"`
	Weight   int      `json:"weight,omitempty"`
	Size     float64  `json:"size,omitempty"`
	Color    *Color   `json:"color,omitempty"`
}

func (Font) Kind() AssetKind { return AssetKindFont }

// UnknownAsset preserves an asset whose wire type this version does not
// understand. It never satisfies a typed lookup.
type UnknownAsset struct {
	Type string `json:"type,omitempty"`
}

func (UnknownAsset) Kind() AssetKind { return AssetKindUnknown }

// AssetEntry pairs an id with its asset, in wire order.
type AssetEntry struct {
	ID    AssetID
	Asset Asset
}

// AssetTable is an immutable mapping from AssetID to Asset.
type AssetTable struct {
	entries map[AssetID]Asset
}

// NewAssetTable builds a table from entries. A repeated id is rejected with
// ErrDuplicateAssetID rather than overwriting the earlier entry.
func NewAssetTable(entries ...AssetEntry) (AssetTable, error) {
	table := AssetTable{entries: make(map[AssetID]Asset, len(entries))}
	for _, entry := range entries {
		if _, exists := table.entries[entry.ID]; exists {
			return AssetTable{}, duplicateAssetID(entry.ID)
		}
		asset := entry.Asset
		if asset == nil {
			asset = UnknownAsset{}
		}
		table.entries[entry.ID] = asset
	}
	return table, nil
}

// Lookup returns the asset stored for id.
func (t AssetTable) Lookup(id AssetID) (Asset, bool) {
	asset, ok := t.entries[id]
	return asset, ok
}

// Len returns the number of assets in the table.
func (t AssetTable) Len() int {
	return len(t.entries)
}

// IDs returns the table's ids in sorted order.
func (t AssetTable) IDs() []AssetID {
	ids := make([]AssetID, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Map returns a copy of the table contents.
func (t AssetTable) Map() map[AssetID]Asset {
	if len(t.entries) == 0 {
		return nil
	}
	out := make(map[AssetID]Asset, len(t.entries))
	for id, asset := range t.entries {
		out[id] = asset
	}
	return out
}
