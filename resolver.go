package remoteui

// Mode pairs a required light-theme value with an optional dark override.
type Mode[T any] struct {
	Light T  `json:"light"`
	Dark  *T `json:"dark,omitempty"`
}

// Background is the light/dark pair of a screen or decorator background. Its
// values are always a Filling or an Image.
type Background struct {
	Light Asset
	Dark  *Asset
}

// Resolver looks asset and string ids up through an effective overlay and the
// descriptor's base asset table. It holds no mutable state.
type Resolver struct {
	overlay EffectiveOverlay
	base    AssetTable
}

// NewResolver constructs a resolver over overlay and base.
func NewResolver(base AssetTable, overlay EffectiveOverlay) Resolver {
	return Resolver{overlay: overlay, base: base}
}

// Overlay returns the effective overlay the resolver reads from.
func (r Resolver) Overlay() EffectiveOverlay {
	return r.overlay
}

// Asset returns the first asset defined for id, checking the requested
// overlay, then the default overlay, then the base table. Entries for the same
// id are never merged.
func (r Resolver) Asset(id AssetID) (Asset, error) {
	if asset, ok := r.overlay.Asset(id); ok {
		return asset, nil
	}
	if asset, ok := r.base.Lookup(id); ok {
		return asset, nil
	}
	return nil, notFoundAsset(string(id))
}

// Resolve returns the asset for id, or for its dark variant when dark is set.
func (r Resolver) Resolve(id AssetID, dark bool) (Asset, error) {
	if dark {
		return r.Asset(id.Dark())
	}
	return r.Asset(id)
}

// String returns the localized string for id.
func (r Resolver) String(id string) (string, error) {
	if value, ok := r.overlay.String(id); ok {
		return value, nil
	}
	return "", notFoundAsset(id)
}

// Filling returns id as a solid color or gradient.
func (r Resolver) Filling(id AssetID) (Filling, error) {
	asset, err := r.Asset(id)
	if err != nil {
		return Filling{}, err
	}
	filling, ok := asset.(Filling)
	if !ok {
		return Filling{}, wrongTypeAsset(string(id), "filling")
	}
	return filling, nil
}

// Color returns id as a solid color. A gradient filling is a type mismatch.
func (r Resolver) Color(id AssetID) (Color, error) {
	asset, err := r.Asset(id)
	if err != nil {
		return Color{}, err
	}
	filling, ok := asset.(Filling)
	if !ok || filling.Color == nil {
		return Color{}, wrongTypeAsset(string(id), "color")
	}
	return *filling.Color, nil
}

// Image returns id as an image.
func (r Resolver) Image(id AssetID) (Image, error) {
	asset, err := r.Asset(id)
	if err != nil {
		return Image{}, err
	}
	image, ok := asset.(Image)
	if !ok {
		return Image{}, wrongTypeAsset(string(id), "image")
	}
	return image, nil
}

// Video returns id as a video.
func (r Resolver) Video(id AssetID) (Video, error) {
	asset, err := r.Asset(id)
	if err != nil {
		return Video{}, err
	}
	video, ok := asset.(Video)
	if !ok {
		return Video{}, wrongTypeAsset(string(id), "video")
	}
	return video, nil
}

// Font returns id as a font.
func (r Resolver) Font(id AssetID) (Font, error) {
	asset, err := r.Asset(id)
	if err != nil {
		return Font{}, err
	}
	font, ok := asset.(Font)
	if !ok {
		return Font{}, wrongTypeAsset(string(id), "font")
	}
	return font, nil
}

// FillingMode resolves id and, when present, its dark variant.
func (r Resolver) FillingMode(id AssetID) (Mode[Filling], error) {
	return resolveMode(id, r.Filling)
}

// ColorMode resolves id and, when present, its dark variant.
func (r Resolver) ColorMode(id AssetID) (Mode[Color], error) {
	return resolveMode(id, r.Color)
}

// ImageMode resolves id and, when present, its dark variant.
func (r Resolver) ImageMode(id AssetID) (Mode[Image], error) {
	return resolveMode(id, r.Image)
}

// VideoMode resolves id and, when present, its dark variant.
func (r Resolver) VideoMode(id AssetID) (Mode[Video], error) {
	return resolveMode(id, r.Video)
}

// Background resolves id as a screen or decorator background. Only fillings
// and images qualify. A missing dark variant is nil; a dark variant of any
// other type fails like the light value would.
func (r Resolver) Background(id AssetID) (Background, error) {
	light, err := r.backgroundAsset(id)
	if err != nil {
		return Background{}, err
	}
	mode := Background{Light: light}
	dark, err := r.backgroundAsset(id.Dark())
	switch {
	case err == nil:
		mode.Dark = &dark
	case IsNotFound(err):
	default:
		return Background{}, err
	}
	return mode, nil
}

func (r Resolver) backgroundAsset(id AssetID) (Asset, error) {
	asset, err := r.Asset(id)
	if err != nil {
		return nil, err
	}
	switch asset.(type) {
	case Filling, Image:
		return asset, nil
	default:
		return nil, wrongTypeAsset(string(id), "background")
	}
}

// resolveMode requires the light value; any failure resolving the dark
// variant leaves Dark nil.
func resolveMode[T any](id AssetID, lookup func(AssetID) (T, error)) (Mode[T], error) {
	light, err := lookup(id)
	if err != nil {
		return Mode[T]{}, err
	}
	mode := Mode[T]{Light: light}
	if dark, err := lookup(id.Dark()); err == nil {
		mode.Dark = &dark
	}
	return mode, nil
}
