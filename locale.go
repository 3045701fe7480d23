package remoteui

import (
	"strings"

	"golang.org/x/text/language"
)

// LocaleID is a normalized locale identifier. Well-formed BCP 47 tags are
// canonicalized ("en_us" and "en-US" both become "en-US"); anything else is
// kept lower-cased. The language code drives fallback comparisons.
type LocaleID struct {
	id       string
	language string
}

// DefaultLocale is used when a descriptor or cache does not name one.
var DefaultLocale = ParseLocale("en")

// ParseLocale normalizes value into a LocaleID. An empty value yields the zero
// LocaleID.
func ParseLocale(value string) LocaleID {
	trimmed := strings.ReplaceAll(strings.TrimSpace(value), "_", "-")
	if trimmed == "" {
		return LocaleID{}
	}
	if tag, err := language.Parse(trimmed); err == nil {
		base, _ := tag.Base()
		return LocaleID{id: tag.String(), language: base.String()}
	}
	lowered := strings.ToLower(trimmed)
	lang, _, _ := strings.Cut(lowered, "-")
	return LocaleID{id: lowered, language: lang}
}

// String returns the normalized id.
func (l LocaleID) String() string {
	return l.id
}

// LanguageCode returns the language component ("en" for "en-GB").
func (l LocaleID) LanguageCode() string {
	return l.language
}

// IsZero reports whether l was never set.
func (l LocaleID) IsZero() bool {
	return l.id == ""
}

// Equal reports whether both ids normalize to the same locale.
func (l LocaleID) Equal(other LocaleID) bool {
	return l.id == other.id
}

// SameLanguage reports whether both locales share a language code.
func (l LocaleID) SameLanguage(other LocaleID) bool {
	return l.language == other.language
}

// MarshalText implements encoding.TextMarshaler.
func (l LocaleID) MarshalText() ([]byte, error) {
	return []byte(l.id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LocaleID) UnmarshalText(text []byte) error {
	*l = ParseLocale(string(text))
	return nil
}
