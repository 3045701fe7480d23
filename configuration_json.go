package remoteui

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Resolved elements are encoded with their ElementType as a "type" tag so a
// Configuration can be persisted and read back, for example by the versioned
// cache. UnknownElement already carries its own tag in Type.

func (s Space) MarshalJSON() ([]byte, error) {
	type plain Space
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{s.ElementType(), plain(s)})
}

func (s Stack) MarshalJSON() ([]byte, error) {
	type plain Stack
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{s.ElementType(), plain(s)})
}

func (b Box) MarshalJSON() ([]byte, error) {
	type plain Box
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{b.ElementType(), plain(b)})
}

func (t Text) MarshalJSON() ([]byte, error) {
	type plain Text
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{t.ElementType(), plain(t)})
}

func (i ImageElement) MarshalJSON() ([]byte, error) {
	type plain ImageElement
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{i.ElementType(), plain(i)})
}

func (v VideoElement) MarshalJSON() ([]byte, error) {
	type plain VideoElement
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{v.ElementType(), plain(v)})
}

func (b Button) MarshalJSON() ([]byte, error) {
	type plain Button
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{b.ElementType(), plain(b)})
}

// UnmarshalJSON decodes a stack and its tagged items.
func (s *Stack) UnmarshalJSON(data []byte) error {
	var wire struct {
		Axis      StackAxis         `json:"axis"`
		Spacing   float64           `json:"spacing"`
		Items     []json.RawMessage `json:"items"`
		Decorator *Decorator        `json:"decorator"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	stack := Stack{Axis: wire.Axis, Spacing: wire.Spacing, Decorator: wire.Decorator}
	if wire.Items != nil {
		stack.Items = make([]Element, 0, len(wire.Items))
		for i, raw := range wire.Items {
			item, err := unmarshalElement(raw)
			if err != nil {
				return fmt.Errorf("stack item %d: %w", i, err)
			}
			stack.Items = append(stack.Items, item)
		}
	}
	*s = stack
	return nil
}

// UnmarshalJSON decodes a box and its tagged content.
func (b *Box) UnmarshalJSON(data []byte) error {
	var wire struct {
		Width     *float64        `json:"width"`
		Height    *float64        `json:"height"`
		Content   json.RawMessage `json:"content"`
		Decorator *Decorator      `json:"decorator"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	content, err := unmarshalElement(wire.Content)
	if err != nil {
		return fmt.Errorf("box content: %w", err)
	}
	*b = Box{Width: wire.Width, Height: wire.Height, Content: content, Decorator: wire.Decorator}
	return nil
}

// UnmarshalJSON decodes a button and its tagged state elements.
func (b *Button) UnmarshalJSON(data []byte) error {
	var wire struct {
		Action   Action          `json:"action"`
		Normal   json.RawMessage `json:"normal"`
		Selected json.RawMessage `json:"selected"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	button := Button{Action: wire.Action}
	var err error
	if button.Normal, err = unmarshalElement(wire.Normal); err != nil {
		return fmt.Errorf("button normal: %w", err)
	}
	if button.Selected, err = unmarshalElement(wire.Selected); err != nil {
		return fmt.Errorf("button selected: %w", err)
	}
	*b = button
	return nil
}

// UnmarshalJSON decodes a screen whose element slots are tagged elements.
func (s *Screen) UnmarshalJSON(data []byte) error {
	var wire struct {
		Background *Background     `json:"background"`
		Cover      *Box            `json:"cover"`
		Content    json.RawMessage `json:"content"`
		Footer     json.RawMessage `json:"footer"`
		Overlay    json.RawMessage `json:"overlay"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	screen := Screen{Background: wire.Background, Cover: wire.Cover}
	var err error
	if screen.Content, err = unmarshalElement(wire.Content); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if screen.Footer, err = unmarshalElement(wire.Footer); err != nil {
		return fmt.Errorf("footer: %w", err)
	}
	if screen.Overlay, err = unmarshalElement(wire.Overlay); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	*s = screen
	return nil
}

// unmarshalElement picks the concrete Element from the "type" tag. A missing
// or null value decodes to nil.
func unmarshalElement(raw json.RawMessage) (Element, error) {
	if isNullJSON(raw) {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid json")
	}
	tag := gjson.GetBytes(raw, "type").String()
	switch tag {
	case wireElementSpace:
		return decodeResolved[Space](raw)
	case wireElementStack:
		return decodeResolved[Stack](raw)
	case wireElementBox:
		return decodeResolved[Box](raw)
	case wireElementText:
		return decodeResolved[Text](raw)
	case wireElementImage:
		return decodeResolved[ImageElement](raw)
	case wireElementVideo:
		return decodeResolved[VideoElement](raw)
	case wireElementButton:
		return decodeResolved[Button](raw)
	default:
		return UnknownElement{Type: tag}, nil
	}
}

func decodeResolved[E Element](raw json.RawMessage) (Element, error) {
	var element E
	if err := json.Unmarshal(raw, &element); err != nil {
		return nil, err
	}
	return element, nil
}
