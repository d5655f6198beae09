// Package filter holds the pure predicates and reductions behind every list view.
package filter

import (
	"sort"
	"strings"
)

// Predicate reports whether an item belongs in a view.
type Predicate[T any] func(T) bool

// Apply keeps the items satisfying every predicate. The input slice is not modified.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, pred := range preds {
		if pred != nil && !pred(item) {
			return false
		}
	}
	return true
}

// MatchesText reports whether any field contains term, ignoring case. An empty term matches everything.
func MatchesText(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Off reports whether a facet selection disables the facet.
func Off(selected string) bool {
	return selected == "" || selected == "all"
}

// Facet reports whether value satisfies the selection.
func Facet(selected, value string) bool {
	return Off(selected) || selected == value
}

// Unique returns distinct values in first seen order.
func Unique[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, item := range items {
		v := key(item)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// UniqueSortedInts returns distinct values in ascending order.
func UniqueSortedInts[T any](items []T, key func(T) int) []int {
	seen := make(map[int]struct{}, len(items))
	out := make([]int, 0)
	for _, item := range items {
		v := key(item)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
