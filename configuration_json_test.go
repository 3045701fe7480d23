package remoteui

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func roundTrip[T any](t *testing.T, value T) T {
	t.Helper()
	payload, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal %T: %v", value, err)
	}
	var decoded T
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal %T: %v\n%s", value, err, payload)
	}
	return decoded
}

func TestConfigurationJSONRoundTrip(t *testing.T) {
	descriptor := loadFixture(t, "descriptor_basic.json")
	l := newLocalizer(t, WithPlatform("ios"))

	for _, locale := range []string{"en-US", "fr-FR", "ar"} {
		cfg, err := l.Localize(descriptor, ParseLocale(locale))
		if err != nil {
			t.Fatalf("%s: localize: %v", locale, err)
		}
		decoded := roundTrip(t, *cfg)
		if !reflect.DeepEqual(*cfg, decoded) {
			t.Fatalf("%s: configuration changed through json:\nwant: %#v\n got: %#v", locale, *cfg, decoded)
		}
	}
}

func TestConfigurationJSONKeepsElementVariants(t *testing.T) {
	width := 120.0
	dark := Asset(Image{URL: "night.png", Data: []byte{0x89, 'P', 'N', 'G'}})
	screen := Screen{
		Background: &Background{Light: solid(9, 9, 9), Dark: &dark},
		Content: Stack{
			Axis:  StackHorizontal,
			Items: []Element{Space{Count: 2}, UnknownElement{Type: "carousel"}},
			Decorator: &Decorator{
				Background:   &Background{Light: Filling{Gradient: &Gradient{Kind: GradientConic, Stops: []GradientStop{{Color: Color{A: 255}, Position: 0.5}}}}},
				CornerRadius: 4,
			},
		},
		Footer: Button{
			Action:   Action{Type: ActionSelectProduct, ProductID: "annual"},
			Normal:   Box{Width: &width, Content: Text{StringID: "cta", Value: "Go"}},
			Selected: Box{Width: &width},
		},
		Overlay: VideoElement{Asset: Mode[Video]{Light: Video{URL: "loop.m3u8", Poster: Image{URL: "poster.png"}}}, Loop: true},
	}

	decoded := roundTrip(t, screen)
	if !reflect.DeepEqual(screen, decoded) {
		t.Fatalf("screen changed through json:\nwant: %#v\n got: %#v", screen, decoded)
	}
	if _, ok := decoded.Background.Light.(Filling); !ok {
		t.Fatalf("expected background light to stay a filling, got %T", decoded.Background.Light)
	}
	if _, ok := (*decoded.Background.Dark).(Image); !ok {
		t.Fatalf("expected background dark to stay an image, got %T", *decoded.Background.Dark)
	}
}

func TestBackgroundJSONRequiresLight(t *testing.T) {
	var background Background
	if err := json.Unmarshal([]byte(`{"dark":{"type":"color","value":"#000000"}}`), &background); err == nil {
		t.Fatalf("expected missing light value to fail")
	}
}

func TestAssetTableJSONRoundTrip(t *testing.T) {
	table := mustTable(t,
		AssetEntry{ID: "brand", Asset: solid(255, 102, 0)},
		AssetEntry{ID: "fade", Asset: Filling{Gradient: &Gradient{
			Kind:   GradientRadial,
			Stops:  []GradientStop{{Color: Color{R: 1, A: 255}, Position: 0}, {Color: Color{B: 2}, Position: 1}},
			Points: GradientPoints{X0: 0.5, Y0: 0.5, X1: 1, Y1: 1},
		}}},
		AssetEntry{ID: "hero", Asset: Image{URL: "hero.png", Preview: []byte("blur")}},
		AssetEntry{ID: "promo", Asset: Video{URL: "promo.m3u8", Poster: Image{Data: []byte("frame")}}},
		AssetEntry{ID: "title", Asset: Font{Families: []string{"Inter"}, Weight: 600, Size: 17, Color: &Color{R: 17, G: 17, B: 17, A: 255}}},
		AssetEntry{ID: "sparkle", Asset: UnknownAsset{Type: "lottie"}},
	)

	payload, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(payload), `[{"id":"brand"`) {
		t.Fatalf("expected wire array ordered by id, got %s", payload)
	}
	var decoded AssetTable
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, payload)
	}
	if !reflect.DeepEqual(table.Map(), decoded.Map()) {
		t.Fatalf("asset table changed through json:\nwant: %#v\n got: %#v", table.Map(), decoded.Map())
	}
}

func TestDescriptorJSONRoundTrip(t *testing.T) {
	descriptor := loadFixture(t, "descriptor_basic.json")
	decoded := roundTrip(t, *descriptor)

	if decoded.ID != descriptor.ID || decoded.TemplateRevision != descriptor.TemplateRevision {
		t.Fatalf("unexpected header %q/%d", decoded.ID, decoded.TemplateRevision)
	}
	if !decoded.DefaultLocale.Equal(descriptor.DefaultLocale) {
		t.Fatalf("expected default locale %s, got %s", descriptor.DefaultLocale, decoded.DefaultLocale)
	}
	if decoded.Assets.Len() != descriptor.Assets.Len() || decoded.Localizations.Len() != descriptor.Localizations.Len() {
		t.Fatalf("expected %d assets and %d localizations, got %d and %d",
			descriptor.Assets.Len(), descriptor.Localizations.Len(), decoded.Assets.Len(), decoded.Localizations.Len())
	}

	l := newLocalizer(t, WithPlatform("ios"))
	for _, locale := range []string{"en-US", "fr-FR", "ar"} {
		want, err := l.Localize(descriptor, ParseLocale(locale))
		if err != nil {
			t.Fatalf("%s: localize original: %v", locale, err)
		}
		got, err := l.Localize(&decoded, ParseLocale(locale))
		if err != nil {
			t.Fatalf("%s: localize decoded: %v", locale, err)
		}
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("%s: decoded descriptor localizes differently:\nwant: %#v\n got: %#v", locale, want, got)
		}
	}
}

func TestRawIfJSONKeepsVersionConstraint(t *testing.T) {
	element := mustElement(t, `{"type":"if","version":">= 2.1","then":{"type":"space"},"else":{"type":"reference","element_id":"legal"}}`)
	payload, err := json.Marshal(element)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := DecodeElement(payload)
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, payload)
	}
	node, ok := decoded.(RawIf)
	if !ok || node.Constraint == nil || node.Version != ">= 2.1" {
		t.Fatalf("expected version constraint to survive, got %#v", decoded)
	}
	if ref, ok := node.Else.(RawReference); !ok || ref.ElementID != "legal" {
		t.Fatalf("expected else branch to survive, got %#v", node.Else)
	}
}
