package remoteui

// Configuration is a fully localized view configuration. It contains no asset,
// string or fragment ids that still need resolving and is ready to be walked
// by a renderer.
type Configuration struct {
	ID               string            `json:"id"`
	Locale           LocaleID          `json:"locale"`
	IsRightToLeft    bool              `json:"is_right_to_left"`
	TemplateID       string            `json:"template_id"`
	TemplateRevision int64             `json:"template_revision"`
	Screen           Screen            `json:"screen"`
	BottomSheets     map[string]Screen `json:"bottom_sheets,omitempty"`
	SelectedProducts []string          `json:"selected_products,omitempty"`
}

// Screen is a resolved screen.
type Screen struct {
	Background *Background `json:"background,omitempty"`
	Cover      *Box        `json:"cover,omitempty"`
	Content    Element     `json:"content"`
	Footer     Element     `json:"footer,omitempty"`
	Overlay    Element     `json:"overlay,omitempty"`
}

// Element is a resolved node. The concrete types are Space, Stack, Box, Text,
// ImageElement, VideoElement, Button and UnknownElement.
type Element interface {
	ElementType() string
}

// Decorator is the resolved styling of a box or stack.
type Decorator struct {
	Background      *Background    `json:"background,omitempty"`
	BorderColor     *Mode[Filling] `json:"border_color,omitempty"`
	BorderThickness float64        `json:"border_thickness,omitempty"`
	CornerRadius    float64        `json:"corner_radius,omitempty"`
}

// Space is flexible empty room; Count weighs it against sibling spaces.
type Space struct {
	Count int `json:"count"`
}

// Stack lays Items out along Axis.
type Stack struct {
	Axis      StackAxis  `json:"axis"`
	Spacing   float64    `json:"spacing,omitempty"`
	Items     []Element  `json:"items"`
	Decorator *Decorator `json:"decorator,omitempty"`
}

// Box is an optionally sized, decorated container for a single element.
type Box struct {
	Width     *float64   `json:"width,omitempty"`
	Height    *float64   `json:"height,omitempty"`
	Content   Element    `json:"content,omitempty"`
	Decorator *Decorator `json:"decorator,omitempty"`
}

// Text is a localized string with its resolved color and font.
type Text struct {
	StringID string         `json:"string_id"`
	Value    string         `json:"value"`
	Color    *Mode[Filling] `json:"color,omitempty"`
	Font     *Font          `json:"font,omitempty"`
	MaxLines int            `json:"max_lines,omitempty"`
}

// ImageElement renders a resolved image pair.
type ImageElement struct {
	Asset  Mode[Image] `json:"asset"`
	Aspect string      `json:"aspect,omitempty"`
}

// VideoElement renders a resolved video pair.
type VideoElement struct {
	Asset  Mode[Video] `json:"asset"`
	Aspect string      `json:"aspect,omitempty"`
	Loop   bool        `json:"loop,omitempty"`
}

// Button shows Normal, or Selected when it is set and the button is
// selected, and runs Action when tapped.
type Button struct {
	Action   Action  `json:"action"`
	Normal   Element `json:"normal"`
	Selected Element `json:"selected,omitempty"`
}

// UnknownElement is an element type this version cannot render. Renderers
// are expected to skip it.
type UnknownElement struct {
	Type string `json:"type"`
}

// ElementType returns the element's "type" tag.
func (Space) ElementType() string          { return wireElementSpace }
func (Stack) ElementType() string          { return wireElementStack }
func (Box) ElementType() string            { return wireElementBox }
func (Text) ElementType() string           { return wireElementText }
func (ImageElement) ElementType() string   { return wireElementImage }
func (VideoElement) ElementType() string   { return wireElementVideo }
func (Button) ElementType() string         { return wireElementButton }
func (UnknownElement) ElementType() string { return "unknown" }
