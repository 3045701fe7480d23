package remoteui

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	wireAssetColor          = "color"
	wireAssetLinearGradient = "linear-gradient"
	wireAssetRadialGradient = "radial-gradient"
	wireAssetConicGradient  = "conic-gradient"
	wireAssetImage          = "image"
	wireAssetVideo          = "video"
	wireAssetFont           = "font"
)

// UnmarshalJSON decodes a wire asset array into the table, rejecting
// duplicate ids.
func (t *AssetTable) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("remoteui: asset table: %w", err)
	}
	entries := make([]AssetEntry, 0, len(items))
	for i, item := range items {
		entry, err := DecodeAsset(item)
		if err != nil {
			return fmt.Errorf("remoteui: asset table entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	table, err := NewAssetTable(entries...)
	if err != nil {
		return err
	}
	*t = table
	return nil
}

// DecodeAsset decodes one wire asset object. The "type" tag is read once and
// selects the concrete variant; unrecognised tags decode to UnknownAsset.
func DecodeAsset(raw []byte) (AssetEntry, error) {
	if !gjson.ValidBytes(raw) {
		return AssetEntry{}, fmt.Errorf("invalid json")
	}
	id := gjson.GetBytes(raw, "id")
	if !id.Exists() || id.String() == "" {
		return AssetEntry{}, fmt.Errorf("asset id is required")
	}
	assetID := AssetID(id.String())
	tag := gjson.GetBytes(raw, "type").String()
	asset, err := decodeAssetValue(raw, tag)
	if err != nil {
		return AssetEntry{}, fmt.Errorf("asset %q (%s): %w", assetID, tag, err)
	}
	return AssetEntry{ID: assetID, Asset: asset}, nil
}

// decodeAssetValue decodes the id-less part of a wire asset object whose
// "type" tag is tag.
func decodeAssetValue(raw []byte, tag string) (Asset, error) {
	switch tag {
	case wireAssetColor:
		return decodeColorAsset(raw)
	case wireAssetLinearGradient:
		return decodeGradientAsset(raw, GradientLinear)
	case wireAssetRadialGradient:
		return decodeGradientAsset(raw, GradientRadial)
	case wireAssetConicGradient:
		return decodeGradientAsset(raw, GradientConic)
	case wireAssetImage:
		return decodeImage(raw)
	case wireAssetVideo:
		return decodeVideo(raw)
	case wireAssetFont:
		return decodeFont(raw)
	default:
		return UnknownAsset{Type: tag}, nil
	}
}

func decodeColorAsset(raw []byte) (Asset, error) {
	var wire struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	color, err := ParseColor(wire.Value)
	if err != nil {
		return nil, err
	}
	return Filling{Color: &color}, nil
}

type wireGradientStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"p"`
}

func decodeGradientAsset(raw []byte, kind GradientKind) (Asset, error) {
	var wire struct {
		Values []wireGradientStop `json:"values"`
		Points GradientPoints     `json:"points"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if len(wire.Values) == 0 {
		return nil, fmt.Errorf("gradient requires at least one stop")
	}
	stops := make([]GradientStop, 0, len(wire.Values))
	for _, value := range wire.Values {
		color, err := ParseColor(value.Color)
		if err != nil {
			return nil, err
		}
		stops = append(stops, GradientStop{Color: color, Position: value.Position})
	}
	return Filling{Gradient: &Gradient{Kind: kind, Stops: stops, Points: wire.Points}}, nil
}

type wireImage struct {
	URL     string `json:"url"`
	Value   []byte `json:"value"`
	Preview []byte `json:"preview_value"`
}

func (w wireImage) image() (Image, error) {
	if w.URL == "" && len(w.Value) == 0 {
		return Image{}, fmt.Errorf("image requires url or value")
	}
	return Image{URL: w.URL, Data: w.Value, Preview: w.Preview}, nil
}

func decodeImage(raw []byte) (Asset, error) {
	var wire wireImage
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	return wire.image()
}

func decodeVideo(raw []byte) (Asset, error) {
	var wire struct {
		URL   string    `json:"url"`
		Image wireImage `json:"image"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if wire.URL == "" {
		return nil, fmt.Errorf("video requires url")
	}
	poster, err := wire.Image.image()
	if err != nil {
		return nil, fmt.Errorf("video poster: %w", err)
	}
	return Video{URL: wire.URL, Poster: poster}, nil
}

func decodeFont(raw []byte) (Asset, error) {
	var wire struct {
		Weight int     `json:"weight"`
		Size   float64 `json:"size"`
		Color  string  `json:"color"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	font := Font{Weight: wire.Weight, Size: wire.Size}
	value := gjson.GetBytes(raw, "value")
	switch {
	case value.IsArray():
		for _, family := range value.Array() {
			if name := strings.TrimSpace(family.String()); name != "" {
				font.Families = append(font.Families, name)
			}
		}
	case value.Type == gjson.String:
		if name := strings.TrimSpace(value.String()); name != "" {
			font.Families = []string{name}
		}
	}
	if len(font.Families) == 0 {
		return nil, fmt.Errorf("font requires at least one family")
	}
	if wire.Color != "" {
		color, err := ParseColor(wire.Color)
		if err != nil {
			return nil, err
		}
		font.Color = &color
	}
	return font, nil
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA". A missing alpha is opaque.
func ParseColor(value string) (Color, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 && len(trimmed) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", value)
	}
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	color := Color{R: decoded[0], G: decoded[1], B: decoded[2], A: 0xFF}
	if len(decoded) == 4 {
		color.A = decoded[3]
	}
	return color, nil
}
