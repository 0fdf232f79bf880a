package utils

// Value dereferences v, giving the zero value for nil
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// ValueOr dereferences v, giving fallback when v is nil or points at the zero value
func ValueOr[T comparable](v *T, fallback T) T {
	var zero T
	if v == nil || *v == zero {
		return fallback
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}
