package remoteui

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFoundAsset indicates an asset or string id that no layer defines.
	ErrNotFoundAsset = errors.New("remoteui: asset not found")
	// ErrWrongTypeAsset indicates an asset whose variant does not match the
	// typed lookup that requested it.
	ErrWrongTypeAsset = errors.New("remoteui: wrong asset type")
	// ErrUnknownReference indicates a fragment or screen id missing from the
	// descriptor.
	ErrUnknownReference = errors.New("remoteui: unknown reference")
	// ErrReferenceCycle indicates a fragment that references one of its own
	// ancestors.
	ErrReferenceCycle = errors.New("remoteui: reference cycle")
	// ErrDuplicateAssetID indicates a wire asset array that repeats an id.
	ErrDuplicateAssetID = errors.New("remoteui: duplicate asset id")
	// ErrDuplicateLocale indicates a wire localization array that repeats a
	// locale id.
	ErrDuplicateLocale = errors.New("remoteui: duplicate localization")
)

// ResolutionError carries the offending id alongside one of the sentinel
// kinds above. errors.Is matches the kind; errors.As exposes the details.
type ResolutionError struct {
	Kind     error
	Subject  string
	Expected string
	Path     []string
}

func (e *ResolutionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	kind := "remoteui: resolution failed"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}
	var b strings.Builder
	b.WriteString(kind)
	fmt.Fprintf(&b, " id=%q", e.Subject)
	if e.Expected != "" {
		fmt.Fprintf(&b, " expected=%s", e.Expected)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " path=%s", strings.Join(e.Path, "/"))
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func notFoundAsset(id string) error {
	return &ResolutionError{Kind: ErrNotFoundAsset, Subject: id}
}

func wrongTypeAsset(id string, expected string) error {
	return &ResolutionError{Kind: ErrWrongTypeAsset, Subject: id, Expected: expected}
}

func unknownReference(id string) error {
	return &ResolutionError{Kind: ErrUnknownReference, Subject: id}
}

func referenceCycle(id string, path []string) error {
	return &ResolutionError{Kind: ErrReferenceCycle, Subject: id, Path: append([]string(nil), path...)}
}

func duplicateAssetID(id AssetID) error {
	return &ResolutionError{Kind: ErrDuplicateAssetID, Subject: string(id)}
}

func duplicateLocale(id LocaleID) error {
	return &ResolutionError{Kind: ErrDuplicateLocale, Subject: id.String()}
}

// withPath fills in the element path on resolution and evaluation errors that
// do not carry one yet. Errors that already know their path are left alone so
// the innermost location wins.
func withPath(err error, path []string) error {
	if err == nil || len(path) == 0 {
		return err
	}
	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		if len(resErr.Path) == 0 {
			resErr.Path = append([]string(nil), path...)
		}
		return err
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Element == "" {
			evalErr.Element = strings.Join(path, "/")
		}
		return err
	}
	return err
}

// IsNotFound reports whether err is a missing asset or string.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFoundAsset)
}

// IsWrongType reports whether err is a typed lookup mismatch.
func IsWrongType(err error) bool {
	return errors.Is(err, ErrWrongTypeAsset)
}
