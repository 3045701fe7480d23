package remoteui

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// MarshalJSON encodes the table as a wire asset array ordered by id, the
// inverse of UnmarshalJSON.
func (t AssetTable) MarshalJSON() ([]byte, error) {
	items := make([]map[string]any, 0, len(t.entries))
	for _, id := range t.IDs() {
		item, err := encodeAsset(t.entries[id])
		if err != nil {
			return nil, fmt.Errorf("remoteui: asset %q: %w", id, err)
		}
		item["id"] = string(id)
		items = append(items, item)
	}
	return json.Marshal(items)
}

// encodeAsset renders asset as a wire asset object without its id.
func encodeAsset(asset Asset) (map[string]any, error) {
	switch a := asset.(type) {
	case Filling:
		return encodeFilling(a)
	case Image:
		item := encodeImage(a)
		item["type"] = wireAssetImage
		return item, nil
	case Video:
		return map[string]any{"type": wireAssetVideo, "url": a.URL, "image": encodeImage(a.Poster)}, nil
	case Font:
		item := map[string]any{"type": wireAssetFont, "value": a.Families}
		if a.Weight != 0 {
			item["weight"] = a.Weight
		}
		if a.Size != 0 {
			item["size"] = a.Size
		}
		if a.Color != nil {
			item["color"] = a.Color.Hex()
		}
		return item, nil
	case UnknownAsset:
		return map[string]any{"type": a.Type}, nil
	case nil:
		return map[string]any{"type": ""}, nil
	default:
		return nil, fmt.Errorf("unsupported asset %T", asset)
	}
}

func encodeFilling(f Filling) (map[string]any, error) {
	switch {
	case f.Color != nil:
		return map[string]any{"type": wireAssetColor, "value": f.Color.Hex()}, nil
	case f.Gradient != nil:
		var tag string
		switch f.Gradient.Kind {
		case GradientLinear:
			tag = wireAssetLinearGradient
		case GradientRadial:
			tag = wireAssetRadialGradient
		case GradientConic:
			tag = wireAssetConicGradient
		default:
			return nil, fmt.Errorf("unsupported gradient kind %q", f.Gradient.Kind)
		}
		values := make([]wireGradientStop, 0, len(f.Gradient.Stops))
		for _, stop := range f.Gradient.Stops {
			values = append(values, wireGradientStop{Color: stop.Color.Hex(), Position: stop.Position})
		}
		return map[string]any{"type": tag, "values": values, "points": f.Gradient.Points}, nil
	default:
		return nil, fmt.Errorf("filling has neither color nor gradient")
	}
}

func encodeImage(image Image) map[string]any {
	item := map[string]any{}
	if image.URL != "" {
		item["url"] = image.URL
	}
	if len(image.Data) > 0 {
		item["value"] = image.Data
	}
	if len(image.Preview) > 0 {
		item["preview_value"] = image.Preview
	}
	return item
}

type wireBackground struct {
	Light json.RawMessage `json:"light"`
	Dark  json.RawMessage `json:"dark,omitempty"`
}

// MarshalJSON encodes both values in the wire asset form so the concrete
// variant survives decoding.
func (b Background) MarshalJSON() ([]byte, error) {
	light, err := marshalAssetValue(b.Light)
	if err != nil {
		return nil, fmt.Errorf("remoteui: background light: %w", err)
	}
	wire := wireBackground{Light: light}
	if b.Dark != nil {
		if wire.Dark, err = marshalAssetValue(*b.Dark); err != nil {
			return nil, fmt.Errorf("remoteui: background dark: %w", err)
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (b *Background) UnmarshalJSON(data []byte) error {
	var wire wireBackground
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if isNullJSON(wire.Light) {
		return fmt.Errorf("remoteui: background light is required")
	}
	light, err := unmarshalAssetValue(wire.Light)
	if err != nil {
		return fmt.Errorf("remoteui: background light: %w", err)
	}
	background := Background{Light: light}
	if !isNullJSON(wire.Dark) {
		dark, err := unmarshalAssetValue(wire.Dark)
		if err != nil {
			return fmt.Errorf("remoteui: background dark: %w", err)
		}
		background.Dark = &dark
	}
	*b = background
	return nil
}

func marshalAssetValue(asset Asset) (json.RawMessage, error) {
	item, err := encodeAsset(asset)
	if err != nil {
		return nil, err
	}
	return json.Marshal(item)
}

func unmarshalAssetValue(raw json.RawMessage) (Asset, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid json")
	}
	return decodeAssetValue(raw, gjson.GetBytes(raw, "type").String())
}

func isNullJSON(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
