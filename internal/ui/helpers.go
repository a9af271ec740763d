package ui

import (
	"github.com/ATRam3/campus-safe-admin-sub000/internal/collection"
)

// moveFocus walks the controller's focus through the currently
// visible (filtered) view. Focus lands on the first visible element
// when the focused one is filtered out.
func moveFocus[T any](ctrl *collection.Controller[T], visible []T, delta int, id func(T) string) {
	if len(visible) == 0 {
		return
	}

	current := -1
	if focusedID := ctrl.FocusedID(); focusedID != "" {
		for i, item := range visible {
			if id(item) == focusedID {
				current = i
				break
			}
		}
	}

	next := current + delta
	if current == -1 {
		next = 0
	}
	if next < 0 {
		next = 0
	}
	if next >= len(visible) {
		next = len(visible) - 1
	}
	ctrl.Focus(id(visible[next]))
}

// truncate shortens s to max characters with an ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
