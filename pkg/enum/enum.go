package enum

import "fmt"

// registry maps an enum type name to its registered string values.
var registry = map[string]map[string]any{}

// New registers a value so ToEnum can later resolve its string form.
func New[T ~string](value T) T {
	var zero T
	name := fmt.Sprintf("%T", zero)
	if _, ok := registry[name]; !ok {
		registry[name] = map[string]any{}
	}

	registry[name][string(value)] = value
	return value
}

func ToEnum[T ~string](s string) (T, error) {
	var zero T
	values, ok := registry[fmt.Sprintf("%T", zero)]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := values[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value.(T), nil
}
