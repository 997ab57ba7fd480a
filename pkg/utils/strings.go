package utils

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
	skuInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
	maxSKUBase  = 20
)

// MaxUniqueSuffix is the highest numeric suffix UniqueValue tries.
const MaxUniqueSuffix = 10000

var ErrNoUniqueValue = errors.New("no free value")

// foldAccents turns "Équipement" into "Equipement" so accented names keep their letters.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// GenerateSlug converts a string into a URL-friendly slug.
// e.g. "Ballons de Football" -> "ballons-de-football"
func GenerateSlug(input string) string {
	s := strings.ToLower(foldAccents(input))
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SKUBase derives the SKU stem used by bulk product import: lowercase
// alphanumerics only, at most 20 characters.
func SKUBase(name string) string {
	s := skuInvalid.ReplaceAllString(strings.ToLower(foldAccents(name)), "")
	if len(s) > maxSKUBase {
		s = s[:maxSKUBase]
	}
	return s
}

// SplitLines splits a pasted text blob into trimmed, non-empty lines.
func SplitLines(text string) []string {
	return CleanNames(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
}

// CleanNames trims every name and drops the blank ones.
func CleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// UniqueValue returns base if unused, otherwise the first of base1, base2, ...
// up to base10000 for which exists reports false.
func UniqueValue(ctx context.Context, base string, exists func(ctx context.Context, v string) (bool, error)) (string, error) {
	for i := 0; i <= MaxUniqueSuffix; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for %q up to suffix %d", ErrNoUniqueValue, base, MaxUniqueSuffix)
}

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}
