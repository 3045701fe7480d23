package remoteui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownFunction is returned when a rule calls a function that was never
// registered.
var ErrUnknownFunction = errors.New("remoteui: unknown rule function")

// Function is a helper callable from `if` element rules.
type Function func(args ...any) (any, error)

// ruleBindings are the names every rule engine already binds; a function
// registered under one of them would be shadowed.
var ruleBindings = map[string]struct{}{
	"platform": {}, "sdk_version": {}, "locale": {}, "language": {},
	"args": {}, "metadata": {}, "call": {},
}

// FunctionRegistry holds the functions rules may call. Names are stored in
// lower case; expr and JS rules call them by that name, CEL rules through
// call("name", [args]).
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function)}
}

// Register adds fn under name. The name must be an identifier, must not be a
// rule binding and must not already be registered in any letter case.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	key := strings.ToLower(strings.TrimSpace(name))
	switch {
	case fn == nil:
		return fmt.Errorf("remoteui: rule function %q is nil", name)
	case !isIdentifier(key):
		return fmt.Errorf("remoteui: rule function name %q is not an identifier", name)
	}
	if _, reserved := ruleBindings[key]; reserved {
		return fmt.Errorf("remoteui: rule function %q would shadow a rule binding", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("remoteui: rule function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Call runs the function registered under name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	var fn Function
	if r != nil {
		r.mu.RLock()
		fn = r.functions[strings.ToLower(name)]
		r.mu.RUnlock()
	}
	if fn == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownFunction, name)
	}
	return fn(args...)
}

// Names returns the registered names, sorted.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// snapshot copies the registry so later registrations do not reach a
// localizer that was already built.
func (r *FunctionRegistry) snapshot() *FunctionRegistry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := &FunctionRegistry{functions: make(map[string]Function, len(r.functions))}
	for name, fn := range r.functions {
		out.functions[name] = fn
	}
	return out
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// WithFunctionRegistry makes the functions registered so far in registry
// callable from `if` element rules. It replaces functions added by earlier
// WithCustomFunction options.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *localizerConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.snapshot()
	}
}

// WithCustomFunction registers fn under name for `if` element rules. An
// invalid or duplicate name makes NewLocalizer fail.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *localizerConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		if err := cfg.functions.Register(name, fn); err != nil {
			cfg.errs = append(cfg.errs, err)
		}
	}
}
