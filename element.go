package remoteui

import (
	"github.com/Masterminds/semver/v3"
)

// RawElement is a node of the undecoded descriptor graph. Asset, string and
// fragment ids inside it are unresolved.
type RawElement interface {
	rawElement()
}

// StackAxis is the layout direction of a stack.
type StackAxis string

const (
	StackVertical   StackAxis = "v"
	StackHorizontal StackAxis = "h"
	StackZ          StackAxis = "z"
)

// RawDecorator holds the asset ids styling a box or stack.
type RawDecorator struct {
	Background      AssetID
	BorderColor     AssetID
	BorderThickness float64
	CornerRadius    float64
}

// RawSpace is flexible empty room. A missing wire count decodes as 1.
type RawSpace struct {
	Count int
}

// RawStack lays its items out along Axis.
type RawStack struct {
	Axis      StackAxis
	Spacing   float64
	Items     []RawElement
	Decorator *RawDecorator
}

// RawBox is an optionally sized container for a single element.
type RawBox struct {
	Width     *float64
	Height    *float64
	Content   RawElement
	Decorator *RawDecorator
}

// RawText names a localized string and the asset ids styling it.
type RawText struct {
	StringID string
	Color    AssetID
	Font     AssetID
	MaxLines int
}

// RawImage names the image asset to render.
type RawImage struct {
	Asset  AssetID
	Aspect string
}

// RawVideo names the video asset to render.
type RawVideo struct {
	Asset  AssetID
	Aspect string
	Loop   bool
}

// ActionType names what a button does when tapped.
type ActionType string

const (
	ActionOpenURL       ActionType = "open_url"
	ActionSelectProduct ActionType = "select_product"
	ActionPurchase      ActionType = "purchase"
	ActionOpenScreen    ActionType = "open_screen"
	ActionClose         ActionType = "close"
	ActionRestore       ActionType = "restore"
)

// Action is a button action. ScreenID must name a descriptor screen when Type
// is ActionOpenScreen.
type Action struct {
	Type      ActionType `json:"type"`
	URL       string     `json:"url,omitempty"`
	ProductID string     `json:"product_id,omitempty"`
	ScreenID  string     `json:"screen_id,omitempty"`
}

// RawButton pairs an action with the elements drawn for its normal and
// selected states.
type RawButton struct {
	Action   Action
	Normal   RawElement
	Selected RawElement
}

// RawReference points at a named fragment of the descriptor.
type RawReference struct {
	ElementID string
}

// RawIf picks Then when every condition it carries holds and Else otherwise.
type RawIf struct {
	Platform   string
	Version    string
	Constraint *semver.Constraints
	Expr       string
	Then       RawElement
	Else       RawElement
}

// RawUnknownElement preserves an element type this version does not know.
type RawUnknownElement struct {
	Type string
}

func (RawSpace) rawElement()          {}
func (RawStack) rawElement()          {}
func (RawBox) rawElement()            {}
func (RawText) rawElement()           {}
func (RawImage) rawElement()          {}
func (RawVideo) rawElement()          {}
func (RawButton) rawElement()         {}
func (RawReference) rawElement()      {}
func (RawIf) rawElement()             {}
func (RawUnknownElement) rawElement() {}

// RawScreen is an unresolved screen. Content is required.
type RawScreen struct {
	Background AssetID
	Cover      *RawBox
	Content    RawElement
	Footer     RawElement
	Overlay    RawElement
}
