package remoteui

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
)

const (
	wireElementSpace     = "space"
	wireElementStack     = "stack"
	wireElementBox       = "box"
	wireElementText      = "text"
	wireElementImage     = "image"
	wireElementVideo     = "video"
	wireElementButton    = "button"
	wireElementReference = "reference"
	wireElementIf        = "if"
)

type wireDecorator struct {
	Background      AssetID `json:"background"`
	BorderColor     AssetID `json:"border_color"`
	BorderThickness float64 `json:"border_thickness"`
	CornerRadius    float64 `json:"corner_radius"`
}

func (w *wireDecorator) decorator() *RawDecorator {
	if w == nil {
		return nil
	}
	return &RawDecorator{
		Background:      w.Background,
		BorderColor:     w.BorderColor,
		BorderThickness: w.BorderThickness,
		CornerRadius:    w.CornerRadius,
	}
}

// DecodeElement decodes one wire element. The "type" tag is read once and
// selects the concrete RawElement; unrecognised tags are preserved as
// RawUnknownElement.
func DecodeElement(raw []byte) (RawElement, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid json")
	}
	tag := gjson.GetBytes(raw, "type").String()
	switch tag {
	case wireElementSpace:
		return decodeSpace(raw)
	case wireElementStack:
		return decodeStack(raw)
	case wireElementBox:
		return decodeBox(raw)
	case wireElementText:
		return decodeText(raw)
	case wireElementImage:
		return decodeImageElement(raw)
	case wireElementVideo:
		return decodeVideoElement(raw)
	case wireElementButton:
		return decodeButton(raw)
	case wireElementReference:
		return decodeReference(raw)
	case wireElementIf:
		return decodeIf(raw)
	case "":
		return nil, fmt.Errorf("element type is required")
	default:
		return RawUnknownElement{Type: tag}, nil
	}
}

func decodeChild(raw json.RawMessage, field string, required bool) (RawElement, error) {
	if len(raw) == 0 || string(raw) == "null" {
		if required {
			return nil, fmt.Errorf("%s is required", field)
		}
		return nil, nil
	}
	element, err := DecodeElement(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return element, nil
}

func decodeSpace(raw []byte) (RawElement, error) {
	var wire struct {
		Count *int `json:"count"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	space := RawSpace{Count: 1}
	if wire.Count != nil {
		space.Count = *wire.Count
	}
	return space, nil
}

func decodeStack(raw []byte) (RawElement, error) {
	var wire struct {
		Axis      StackAxis         `json:"axis"`
		Spacing   float64           `json:"spacing"`
		Items     []json.RawMessage `json:"items"`
		Decorator *wireDecorator    `json:"decorator"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	switch wire.Axis {
	case "":
		wire.Axis = StackVertical
	case StackVertical, StackHorizontal, StackZ:
	default:
		return nil, fmt.Errorf("stack: unsupported axis %q", wire.Axis)
	}
	stack := RawStack{Axis: wire.Axis, Spacing: wire.Spacing, Decorator: wire.Decorator.decorator()}
	for i, item := range wire.Items {
		element, err := decodeChild(item, fmt.Sprintf("stack item %d", i), true)
		if err != nil {
			return nil, err
		}
		stack.Items = append(stack.Items, element)
	}
	return stack, nil
}

func decodeBox(raw []byte) (RawElement, error) {
	var wire struct {
		Width     *float64        `json:"width"`
		Height    *float64        `json:"height"`
		Content   json.RawMessage `json:"content"`
		Decorator *wireDecorator  `json:"decorator"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	content, err := decodeChild(wire.Content, "box content", false)
	if err != nil {
		return nil, err
	}
	return RawBox{Width: wire.Width, Height: wire.Height, Content: content, Decorator: wire.Decorator.decorator()}, nil
}

func decodeText(raw []byte) (RawElement, error) {
	var wire struct {
		StringID string  `json:"string_id"`
		Color    AssetID `json:"color"`
		Font     AssetID `json:"font"`
		MaxLines int     `json:"max_lines"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if wire.StringID == "" {
		return nil, fmt.Errorf("text: string_id is required")
	}
	return RawText(wire), nil
}

func decodeImageElement(raw []byte) (RawElement, error) {
	var wire struct {
		Asset  AssetID `json:"asset_id"`
		Aspect string  `json:"aspect"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if wire.Asset == "" {
		return nil, fmt.Errorf("image: asset_id is required")
	}
	return RawImage(wire), nil
}

func decodeVideoElement(raw []byte) (RawElement, error) {
	var wire struct {
		Asset  AssetID `json:"asset_id"`
		Aspect string  `json:"aspect"`
		Loop   bool    `json:"loop"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if wire.Asset == "" {
		return nil, fmt.Errorf("video: asset_id is required")
	}
	return RawVideo(wire), nil
}

func decodeButton(raw []byte) (RawElement, error) {
	var wire struct {
		Action   Action          `json:"action"`
		Normal   json.RawMessage `json:"normal"`
		Selected json.RawMessage `json:"selected"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if wire.Action.Type == "" {
		return nil, fmt.Errorf("button: action type is required")
	}
	if wire.Action.Type == ActionOpenScreen && wire.Action.ScreenID == "" {
		return nil, fmt.Errorf("button: open_screen requires screen_id")
	}
	normal, err := decodeChild(wire.Normal, "button normal", true)
	if err != nil {
		return nil, err
	}
	selected, err := decodeChild(wire.Selected, "button selected", false)
	if err != nil {
		return nil, err
	}
	return RawButton{Action: wire.Action, Normal: normal, Selected: selected}, nil
}

func decodeReference(raw []byte) (RawElement, error) {
	id := gjson.GetBytes(raw, "element_id").String()
	if id == "" {
		return nil, fmt.Errorf("reference: element_id is required")
	}
	return RawReference{ElementID: id}, nil
}

func decodeIf(raw []byte) (RawElement, error) {
	var wire struct {
		Platform string          `json:"platform"`
		Version  string          `json:"version"`
		Expr     string          `json:"expr"`
		Then     json.RawMessage `json:"then"`
		Else     json.RawMessage `json:"else"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	node := RawIf{Platform: wire.Platform, Version: wire.Version, Expr: wire.Expr}
	if wire.Version != "" {
		constraint, err := semver.NewConstraint(wire.Version)
		if err != nil {
			return nil, fmt.Errorf("if: version %q: %w", wire.Version, err)
		}
		node.Constraint = constraint
	}
	var err error
	if node.Then, err = decodeChild(wire.Then, "if then", true); err != nil {
		return nil, err
	}
	if node.Else, err = decodeChild(wire.Else, "if else", false); err != nil {
		return nil, err
	}
	return node, nil
}

type wireScreen struct {
	Background AssetID         `json:"background"`
	Cover      json.RawMessage `json:"cover"`
	Content    json.RawMessage `json:"content"`
	Footer     json.RawMessage `json:"footer"`
	Overlay    json.RawMessage `json:"overlay"`
}

// UnmarshalJSON decodes a wire screen. The cover, when present, must be a box.
func (s *RawScreen) UnmarshalJSON(data []byte) error {
	var wire wireScreen
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	screen := RawScreen{Background: wire.Background}
	cover, err := decodeChild(wire.Cover, "cover", false)
	if err != nil {
		return err
	}
	if cover != nil {
		box, ok := cover.(RawBox)
		if !ok {
			return fmt.Errorf("cover must be a box")
		}
		screen.Cover = &box
	}
	if screen.Content, err = decodeChild(wire.Content, "content", true); err != nil {
		return err
	}
	if screen.Footer, err = decodeChild(wire.Footer, "footer", false); err != nil {
		return err
	}
	if screen.Overlay, err = decodeChild(wire.Overlay, "overlay", false); err != nil {
		return err
	}
	*s = screen
	return nil
}
