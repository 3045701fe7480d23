package remoteui

import (
	"encoding/json"
	"fmt"
)

// The MarshalJSON methods below write raw elements back in the wire form
// DecodeElement reads.

func newWireDecorator(d *RawDecorator) *wireDecorator {
	if d == nil {
		return nil
	}
	return &wireDecorator{
		Background:      d.Background,
		BorderColor:     d.BorderColor,
		BorderThickness: d.BorderThickness,
		CornerRadius:    d.CornerRadius,
	}
}

func (s RawSpace) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Count int    `json:"count"`
	}{wireElementSpace, s.Count})
}

func (s RawStack) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string         `json:"type"`
		Axis      StackAxis      `json:"axis"`
		Spacing   float64        `json:"spacing,omitempty"`
		Items     []RawElement   `json:"items"`
		Decorator *wireDecorator `json:"decorator,omitempty"`
	}{wireElementStack, s.Axis, s.Spacing, s.Items, newWireDecorator(s.Decorator)})
}

func (b RawBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string         `json:"type"`
		Width     *float64       `json:"width,omitempty"`
		Height    *float64       `json:"height,omitempty"`
		Content   RawElement     `json:"content,omitempty"`
		Decorator *wireDecorator `json:"decorator,omitempty"`
	}{wireElementBox, b.Width, b.Height, b.Content, newWireDecorator(b.Decorator)})
}

func (t RawText) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string  `json:"type"`
		StringID string  `json:"string_id"`
		Color    AssetID `json:"color,omitempty"`
		Font     AssetID `json:"font,omitempty"`
		MaxLines int     `json:"max_lines,omitempty"`
	}{wireElementText, t.StringID, t.Color, t.Font, t.MaxLines})
}

func (i RawImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string  `json:"type"`
		Asset  AssetID `json:"asset_id"`
		Aspect string  `json:"aspect,omitempty"`
	}{wireElementImage, i.Asset, i.Aspect})
}

func (v RawVideo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string  `json:"type"`
		Asset  AssetID `json:"asset_id"`
		Aspect string  `json:"aspect,omitempty"`
		Loop   bool    `json:"loop,omitempty"`
	}{wireElementVideo, v.Asset, v.Aspect, v.Loop})
}

func (b RawButton) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string     `json:"type"`
		Action   Action     `json:"action"`
		Normal   RawElement `json:"normal"`
		Selected RawElement `json:"selected,omitempty"`
	}{wireElementButton, b.Action, b.Normal, b.Selected})
}

func (r RawReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		ElementID string `json:"element_id"`
	}{wireElementReference, r.ElementID})
}

// MarshalJSON writes the version constraint as its source text; decoding
// parses it again.
func (n RawIf) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string     `json:"type"`
		Platform string     `json:"platform,omitempty"`
		Version  string     `json:"version,omitempty"`
		Expr     string     `json:"expr,omitempty"`
		Then     RawElement `json:"then"`
		Else     RawElement `json:"else,omitempty"`
	}{wireElementIf, n.Platform, n.Version, n.Expr, n.Then, n.Else})
}

func (u RawUnknownElement) MarshalJSON() ([]byte, error) {
	if u.Type == "" {
		return nil, fmt.Errorf("remoteui: unknown element without a type tag")
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{u.Type})
}

// MarshalJSON writes the screen in wire form.
func (s RawScreen) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Background AssetID    `json:"background,omitempty"`
		Cover      *RawBox    `json:"cover,omitempty"`
		Content    RawElement `json:"content"`
		Footer     RawElement `json:"footer,omitempty"`
		Overlay    RawElement `json:"overlay,omitempty"`
	}{s.Background, s.Cover, s.Content, s.Footer, s.Overlay})
}
