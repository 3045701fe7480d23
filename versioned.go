package remoteui

// Origin tells whether a reconciled value came from the incoming fetch or from
// the cache.
type Origin int

const (
	OriginFresh Origin = iota
	OriginRestored
)

func (o Origin) String() string {
	switch o {
	case OriginFresh:
		return "fresh"
	case OriginRestored:
		return "restored"
	default:
		return "unknown"
	}
}

// VersionedValue pairs a value with a monotonic version and the locale it was
// fetched for.
type VersionedValue[T any] struct {
	Value   T        `json:"value"`
	Version int64    `json:"version"`
	Locale  LocaleID `json:"locale"`
}

// Reconciliation is the authoritative value picked by Reconcile.
type Reconciliation[T any] struct {
	Value  VersionedValue[T]
	Origin Origin
}

// Reconcile picks between a freshly fetched value and the cached one. Versions
// are only compared inside one language bucket: a cached value for another
// language, or no cached value at all, loses to incoming. Within a bucket the
// cached value wins only when its version is strictly greater.
func Reconcile[T any](incoming VersionedValue[T], cached *VersionedValue[T]) Reconciliation[T] {
	if cached == nil || !cached.Locale.SameLanguage(incoming.Locale) {
		return Reconciliation[T]{Value: incoming, Origin: OriginFresh}
	}
	if cached.Version > incoming.Version {
		return Reconciliation[T]{Value: *cached, Origin: OriginRestored}
	}
	return Reconciliation[T]{Value: incoming, Origin: OriginFresh}
}
