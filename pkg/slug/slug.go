// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Categories and genres are addressed by slug ("science-fiction"). When a
// client omits the slug it is derived from the name with [From].
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the storage limit of a slug column.
const MaxLength = 50

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9_-]+`)
	multiHyphen     = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug of at
// most [MaxLength] characters.
//
// Accents are stripped after NFD decomposition ("Drame" and "Drâme" give the
// same slug). Anything outside [a-z0-9_-] becomes a hyphen, and runs of
// hyphens collapse into one.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
