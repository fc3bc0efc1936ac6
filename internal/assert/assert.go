package assert

import "fmt"

// NotNil panics when a required dependency was not provided.
func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

// NonNegative panics on a negative quantity, it guards the numeric fields of a catalog record.
func NonNegative[T int | int64 | float64](name string, value T) {
	if value < 0 {
		panic(fmt.Sprintf("expected %s to be non-negative, got %v", name, value))
	}
}
