package remoteui

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-remoteui/internal/hydrate"
)

// Descriptor is the raw, locale-agnostic view configuration as delivered by
// the backend. It is immutable after decoding and safe to share between
// concurrent Localize calls.
type Descriptor struct {
	ID               string
	TemplateID       string
	TemplateRevision int64
	DefaultLocale    LocaleID
	DefaultScreen    RawScreen
	Screens          map[string]RawScreen
	Fragments        map[string]RawElement
	Assets           AssetTable
	Localizations    OverlaySet
	SelectedProducts []string
}

type wireDescriptor struct {
	ID                  string                     `json:"id"`
	TemplateID          string                     `json:"template_id"`
	TemplateRevision    int64                      `json:"template_revision"`
	DefaultLocalization string                     `json:"default_localization"`
	DefaultScreen       *RawScreen                 `json:"default_screen"`
	Screens             map[string]RawScreen       `json:"screens"`
	Fragments           map[string]json.RawMessage `json:"fragments"`
	Assets              AssetTable                 `json:"assets"`
	Localizations       []Overlay                  `json:"localizations"`
	SelectedProducts    []string                   `json:"selected_products"`
}

// DecodeOption configures DecodeDescriptor.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	validateSchema bool
	source         string
}

// WithSchemaValidation checks the payload against DescriptorSchema before
// typed decoding.
func WithSchemaValidation() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.validateSchema = true
	}
}

// WithSource labels the payload origin in decode errors.
func WithSource(source string) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.source = source
	}
}

// DecodeDescriptor decodes a backend JSON payload. Duplicate asset ids and
// duplicate localizations fail the whole decode.
func DecodeDescriptor(data []byte, opts ...DecodeOption) (*Descriptor, error) {
	cfg := decodeConfig{source: "descriptor"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var checks []hydrate.Check
	if cfg.validateSchema {
		checks = append(checks, validateDescriptorPayload)
	}
	wire, err := hydrate.NewDecoder[wireDescriptor](checks...).Decode(cfg.source, data)
	if err != nil {
		return nil, err
	}
	return wire.descriptor()
}

func (w wireDescriptor) descriptor() (*Descriptor, error) {
	if w.ID == "" {
		return nil, fmt.Errorf("remoteui: descriptor id is required")
	}
	if w.DefaultScreen == nil {
		return nil, fmt.Errorf("remoteui: descriptor %q: default_screen is required", w.ID)
	}

	defaultLocale := ParseLocale(w.DefaultLocalization)
	if defaultLocale.IsZero() {
		defaultLocale = DefaultLocale
	}
	overlays, err := NewOverlaySet(defaultLocale, w.Localizations...)
	if err != nil {
		return nil, fmt.Errorf("remoteui: descriptor %q: %w", w.ID, err)
	}

	fragments := make(map[string]RawElement, len(w.Fragments))
	for id, raw := range w.Fragments {
		element, err := DecodeElement(raw)
		if err != nil {
			return nil, fmt.Errorf("remoteui: descriptor %q: fragment %q: %w", w.ID, id, err)
		}
		fragments[id] = element
	}

	return &Descriptor{
		ID:               w.ID,
		TemplateID:       w.TemplateID,
		TemplateRevision: w.TemplateRevision,
		DefaultLocale:    defaultLocale,
		DefaultScreen:    *w.DefaultScreen,
		Screens:          w.Screens,
		Fragments:        fragments,
		Assets:           w.Assets,
		Localizations:    overlays,
		SelectedProducts: w.SelectedProducts,
	}, nil
}

// MarshalJSON encodes the descriptor in the backend wire form, so a decoded
// descriptor can be cached and decoded again.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	fragments := make(map[string]json.RawMessage, len(d.Fragments))
	for id, element := range d.Fragments {
		raw, err := json.Marshal(element)
		if err != nil {
			return nil, fmt.Errorf("remoteui: descriptor %q: fragment %q: %w", d.ID, id, err)
		}
		fragments[id] = raw
	}
	defaultLocale := d.DefaultLocale
	if defaultLocale.IsZero() {
		defaultLocale = d.Localizations.DefaultLocale()
	}
	screen := d.DefaultScreen
	return json.Marshal(wireDescriptor{
		ID:                  d.ID,
		TemplateID:          d.TemplateID,
		TemplateRevision:    d.TemplateRevision,
		DefaultLocalization: defaultLocale.String(),
		DefaultScreen:       &screen,
		Screens:             d.Screens,
		Fragments:           fragments,
		Assets:              d.Assets,
		Localizations:       d.Localizations.Overlays(),
		SelectedProducts:    d.SelectedProducts,
	})
}

// UnmarshalJSON decodes the backend wire form through DecodeDescriptor.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeDescriptor(data)
	if err != nil {
		return err
	}
	*d = *decoded
	return nil
}
