package remoteui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Localizer turns a Descriptor into a Configuration for one locale. A
// Localizer holds no per-call state and is safe for concurrent use.
type Localizer struct {
	evaluator  Evaluator
	engine     string
	logger     Logger
	condition  ConditionContext
	sdkVersion *semver.Version
}

// NewLocalizer builds a Localizer. It fails when an option is invalid, the
// configured rule engine is unknown or the SDK version is not a semantic
// version.
func NewLocalizer(opts ...Option) (*Localizer, error) {
	cfg := newLocalizerConfig(opts)
	if err := errors.Join(cfg.errs...); err != nil {
		return nil, err
	}

	evaluator := cfg.evaluator
	if evaluator == nil {
		cache := cfg.cache
		if cache == nil {
			cache = NewProgramCache()
		}
		var err error
		evaluator, err = NewEvaluator(cfg.engine, cache, cfg.functions)
		if err != nil {
			return nil, err
		}
	}

	l := &Localizer{
		evaluator: evaluator,
		engine:    evaluatorEngineName(evaluator),
		logger:    cfg.logger,
		condition: cfg.condition.withDefaultMaps(),
	}
	if cfg.condition.SDKVersion != "" {
		version, err := semver.NewVersion(cfg.condition.SDKVersion)
		if err != nil {
			return nil, fmt.Errorf("remoteui: sdk version %q: %w", cfg.condition.SDKVersion, err)
		}
		l.sdkVersion = version
	}
	return l, nil
}

// Localize resolves every asset, string and fragment reference in src for
// locale. The default screen becomes Screen and every named screen becomes a
// bottom sheet. Any failure aborts the call; no partial configuration is
// returned. A zero locale selects the descriptor's default locale.
func (l *Localizer) Localize(src *Descriptor, locale LocaleID) (*Configuration, error) {
	if src == nil {
		return nil, errors.New("remoteui: descriptor is nil")
	}
	if locale.IsZero() {
		locale = src.Localizations.DefaultLocale()
	}

	start := time.Now()
	out, err := l.localize(src, locale)
	l.logger.LogEvent(LogEvent{
		Component: "localizer",
		Operation: "localize",
		Subject:   src.ID,
		Locale:    locale.String(),
		Duration:  time.Since(start),
		Err:       err,
		Attrs: map[string]any{
			"engine":        l.engine,
			"screens":       len(src.Screens),
			"effective":     effectiveLocale(out),
			"template":      src.TemplateID,
			"revision":      src.TemplateRevision,
			"fragments":     len(src.Fragments),
			"right_to_left": out != nil && out.IsRightToLeft,
		},
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func effectiveLocale(cfg *Configuration) string {
	if cfg == nil {
		return ""
	}
	return cfg.Locale.String()
}

func (l *Localizer) localize(src *Descriptor, locale LocaleID) (*Configuration, error) {
	overlay := src.Localizations.Overlay(locale)
	condition := l.condition
	condition.Locale = locale

	run := &localizeRun{
		src:       src,
		resolver:  NewResolver(src.Assets, overlay),
		localizer: l,
		condition: condition,
	}

	screen, err := run.screen("default", src.DefaultScreen)
	if err != nil {
		return nil, err
	}

	var sheets map[string]Screen
	if len(src.Screens) > 0 {
		ids := make([]string, 0, len(src.Screens))
		for id := range src.Screens {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		sheets = make(map[string]Screen, len(ids))
		for _, id := range ids {
			resolved, err := run.screen(id, src.Screens[id])
			if err != nil {
				return nil, err
			}
			sheets[id] = resolved
		}
	}

	return &Configuration{
		ID:               src.ID,
		Locale:           overlay.Locale,
		IsRightToLeft:    overlay.IsRightToLeft,
		TemplateID:       src.TemplateID,
		TemplateRevision: src.TemplateRevision,
		Screen:           screen,
		BottomSheets:     sheets,
		SelectedProducts: append([]string(nil), src.SelectedProducts...),
	}, nil
}

// localizeRun is the state of one Localize call. fragments is the chain of
// fragment ids currently being resolved; a fragment may appear in sibling
// branches but never twice on the chain.
type localizeRun struct {
	src       *Descriptor
	resolver  Resolver
	localizer *Localizer
	condition ConditionContext

	path      []string
	fragments []string
}

func (r *localizeRun) enter(segment string) func() {
	r.path = append(r.path, segment)
	return func() { r.path = r.path[:len(r.path)-1] }
}

func (r *localizeRun) fail(err error) error {
	return withPath(err, r.path)
}

func (r *localizeRun) screen(id string, raw RawScreen) (Screen, error) {
	defer r.enter("screen:" + id)()

	var out Screen
	if raw.Background != "" {
		background, err := r.resolver.Background(raw.Background)
		if err != nil {
			defer r.enter("background")()
			return Screen{}, r.fail(err)
		}
		out.Background = &background
	}
	if raw.Cover != nil {
		cover, err := r.child("cover", *raw.Cover)
		if err != nil {
			return Screen{}, err
		}
		box := cover.(Box)
		out.Cover = &box
	}

	var err error
	if out.Content, err = r.child("content", raw.Content); err != nil {
		return Screen{}, err
	}
	if out.Footer, err = r.child("footer", raw.Footer); err != nil {
		return Screen{}, err
	}
	if out.Overlay, err = r.child("overlay", raw.Overlay); err != nil {
		return Screen{}, err
	}
	return out, nil
}

// child resolves raw under a new path segment. A nil raw element resolves to
// a nil Element.
func (r *localizeRun) child(segment string, raw RawElement) (Element, error) {
	if raw == nil {
		return nil, nil
	}
	defer r.enter(segment)()
	out, err := r.element(raw)
	if err != nil {
		return nil, r.fail(err)
	}
	return out, nil
}

func (r *localizeRun) element(raw RawElement) (Element, error) {
	switch el := raw.(type) {
	case RawSpace:
		return Space{Count: el.Count}, nil
	case RawStack:
		return r.stack(el)
	case RawBox:
		return r.box(el)
	case RawText:
		return r.text(el)
	case RawImage:
		asset, err := r.resolver.ImageMode(el.Asset)
		if err != nil {
			return nil, err
		}
		return ImageElement{Asset: asset, Aspect: el.Aspect}, nil
	case RawVideo:
		asset, err := r.resolver.VideoMode(el.Asset)
		if err != nil {
			return nil, err
		}
		return VideoElement{Asset: asset, Aspect: el.Aspect, Loop: el.Loop}, nil
	case RawButton:
		return r.button(el)
	case RawReference:
		return r.reference(el)
	case RawIf:
		return r.conditional(el)
	case RawUnknownElement:
		return UnknownElement{Type: el.Type}, nil
	default:
		return nil, fmt.Errorf("remoteui: unsupported element %T", raw)
	}
}

func (r *localizeRun) stack(el RawStack) (Element, error) {
	out := Stack{Axis: el.Axis, Spacing: el.Spacing, Items: make([]Element, 0, len(el.Items))}
	for i, item := range el.Items {
		resolved, err := r.child("items["+strconv.Itoa(i)+"]", item)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, resolved)
	}
	decorator, err := r.decorator(el.Decorator)
	if err != nil {
		return nil, err
	}
	out.Decorator = decorator
	return out, nil
}

func (r *localizeRun) box(el RawBox) (Element, error) {
	content, err := r.child("content", el.Content)
	if err != nil {
		return nil, err
	}
	decorator, err := r.decorator(el.Decorator)
	if err != nil {
		return nil, err
	}
	return Box{
		Width:     cloneFloat(el.Width),
		Height:    cloneFloat(el.Height),
		Content:   content,
		Decorator: decorator,
	}, nil
}

func (r *localizeRun) decorator(raw *RawDecorator) (*Decorator, error) {
	if raw == nil {
		return nil, nil
	}
	defer r.enter("decorator")()
	out := &Decorator{BorderThickness: raw.BorderThickness, CornerRadius: raw.CornerRadius}
	if raw.Background != "" {
		background, err := r.resolver.Background(raw.Background)
		if err != nil {
			return nil, r.fail(err)
		}
		out.Background = &background
	}
	if raw.BorderColor != "" {
		border, err := r.resolver.FillingMode(raw.BorderColor)
		if err != nil {
			return nil, r.fail(err)
		}
		out.BorderColor = &border
	}
	return out, nil
}

func (r *localizeRun) text(el RawText) (Element, error) {
	value, err := r.resolver.String(el.StringID)
	if err != nil {
		return nil, err
	}
	out := Text{StringID: el.StringID, Value: value, MaxLines: el.MaxLines}
	if el.Color != "" {
		color, err := r.resolver.FillingMode(el.Color)
		if err != nil {
			return nil, err
		}
		out.Color = &color
	}
	if el.Font != "" {
		font, err := r.resolver.Font(el.Font)
		if err != nil {
			return nil, err
		}
		out.Font = &font
	}
	return out, nil
}

func (r *localizeRun) button(el RawButton) (Element, error) {
	if el.Action.Type == ActionOpenScreen {
		if _, ok := r.src.Screens[el.Action.ScreenID]; !ok {
			return nil, unknownReference(el.Action.ScreenID)
		}
	}
	normal, err := r.child("normal", el.Normal)
	if err != nil {
		return nil, err
	}
	selected, err := r.child("selected", el.Selected)
	if err != nil {
		return nil, err
	}
	return Button{Action: el.Action, Normal: normal, Selected: selected}, nil
}

func (r *localizeRun) reference(el RawReference) (Element, error) {
	fragment, ok := r.src.Fragments[el.ElementID]
	if !ok {
		return nil, unknownReference(el.ElementID)
	}
	for _, active := range r.fragments {
		if active == el.ElementID {
			chain := append(append([]string(nil), r.fragments...), el.ElementID)
			return nil, referenceCycle(el.ElementID, chain)
		}
	}

	r.fragments = append(r.fragments, el.ElementID)
	defer func() { r.fragments = r.fragments[:len(r.fragments)-1] }()

	resolved, err := r.child("fragment:"+el.ElementID, fragment)
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// conditional resolves Then when every condition on el holds and Else
// otherwise. A missing Else yields an empty space.
func (r *localizeRun) conditional(el RawIf) (Element, error) {
	matched, err := r.matches(el)
	if err != nil {
		return nil, err
	}
	if matched {
		return r.child("then", el.Then)
	}
	if el.Else == nil {
		return Space{}, nil
	}
	return r.child("else", el.Else)
}

func (r *localizeRun) matches(el RawIf) (bool, error) {
	if el.Platform != "" && !strings.EqualFold(el.Platform, r.condition.Platform) {
		return false, nil
	}
	if el.Constraint != nil {
		version := r.localizer.sdkVersion
		if version == nil || !el.Constraint.Check(version) {
			return false, nil
		}
	}
	if el.Expr == "" {
		return true, nil
	}
	result, err := r.localizer.evaluator.Evaluate(r.condition, el.Expr)
	if err != nil {
		return false, wrapEvaluationError(r.localizer.engine, el.Expr, err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, wrapEvaluationError(r.localizer.engine, el.Expr, fmt.Errorf("rule returned %T, want bool", result))
	}
	return matched, nil
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
