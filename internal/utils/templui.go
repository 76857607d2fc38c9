package utils

import (
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// TwMerge combines Tailwind classes and resolves conflicts, last one wins.
func TwMerge(classes ...string) string {
	return twmerge.Merge(strings.Join(classes, " "))
}

// If returns value if condition is true, otherwise the zero value of T.
func If[T comparable](condition bool, value T) T {
	var empty T
	if condition {
		return value
	}
	return empty
}

// IfElse returns trueValue if condition is true, otherwise falseValue.
func IfElse[T any](condition bool, trueValue T, falseValue T) T {
	if condition {
		return trueValue
	}
	return falseValue
}
