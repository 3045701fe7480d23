package remoteui

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNoEvaluator = errors.New("remoteui: evaluator not configured")

// ConditionContext carries the inputs an `if` element rule can read. It has no
// clock so that localizing the same descriptor twice gives the same tree.
type ConditionContext struct {
	Platform   string
	SDKVersion string
	Locale     LocaleID
	Args       map[string]any
	Metadata   map[string]any
}

func (ctx ConditionContext) withDefaultMaps() ConditionContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

// bindings returns the variables exposed to rule expressions.
func (ctx ConditionContext) bindings() map[string]any {
	ctx = ctx.withDefaultMaps()
	return map[string]any{
		"platform":    ctx.Platform,
		"sdk_version": ctx.SDKVersion,
		"locale":      ctx.Locale.String(),
		"language":    ctx.Locale.LanguageCode(),
		"args":        ctx.Args,
		"metadata":    ctx.Metadata,
	}
}

// Evaluator executes rule expressions against a condition context.
type Evaluator interface {
	Evaluate(ctx ConditionContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx ConditionContext) (any, error)
}

// ProgramCache stores compiled expression programs keyed by expression strings.
// Implementations must be safe for concurrent use.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MemoryProgramCache is a ProgramCache backed by a sync.Map.
type MemoryProgramCache struct {
	programs sync.Map
}

// NewProgramCache constructs an empty in-memory program cache.
func NewProgramCache() *MemoryProgramCache {
	return &MemoryProgramCache{}
}

func (c *MemoryProgramCache) Get(key string) (any, bool) {
	return c.programs.Load(key)
}

func (c *MemoryProgramCache) Set(key string, value any) {
	c.programs.Store(key, value)
}

// NewEvaluator returns the evaluator registered under engine: "expr" (the
// default), "cel" or "js". The js engine is only available when built with the
// js_eval tag.
func NewEvaluator(engine string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	switch engine {
	case "", "expr":
		return NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(registry)), nil
	case "cel":
		return NewCELEvaluator(CELWithProgramCache(cache), CELWithFunctionRegistry(registry)), nil
	case "js":
		evaluator := NewJSEvaluator(JSWithProgramCache(cache), JSWithFunctionRegistry(registry))
		if evaluator == nil {
			return nil, fmt.Errorf("%w: js engine requires the js_eval build tag", ErrNoEvaluator)
		}
		return evaluator, nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrNoEvaluator, engine)
	}
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if jsEvaluatorAvailable() && isJSEvaluator(e) {
			return "js"
		}
		return "custom"
	}
}
