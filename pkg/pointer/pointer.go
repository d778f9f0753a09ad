// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Partial updates and nullable columns are modeled as pointers throughout the
API; these helpers keep the call sites free of temporary variables.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
