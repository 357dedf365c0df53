package helpers

// Ptr returns a pointer to val. Handy for building patch requests.
func Ptr[T any](val T) *T {
	return &val
}

// ValueOr dereferences val, returning fallback when nil.
func ValueOr[T any](val *T, fallback T) T {
	if val == nil {
		return fallback
	}
	return *val
}

// NonZero dereferences val, returning fallback when val is nil or points
// at the zero value. Used by patch handlers that treat "" as absent.
func NonZero[T comparable](val *T, fallback T) T {
	var zero T
	if val == nil || *val == zero {
		return fallback
	}
	return *val
}
