// Package collection implements the one view-controller shape every
// page of the console shares: a client-cached copy of a server
// collection, a derived filtered view, and a single focused item. The
// server stays the source of truth; controllers only mirror writes
// that already succeeded.
package collection

import (
	"sort"
	"strings"
)

// Fallback selects what happens to focus when the focused element is
// removed.
type Fallback int

const (
	// FallbackNone clears focus when the focused element is removed
	FallbackNone Fallback = iota
	// FallbackFirst moves focus to the new first element
	FallbackFirst
)

// Config parameterizes a controller for one domain
type Config[T any] struct {
	// ID extracts the identifier used for equality on mutations
	ID func(T) string
	// SearchText lists the fields matched by free-text search
	SearchText func(T) []string
	// Less is the merge/sort comparator applied on load; nil keeps
	// server order.
	Less func(a, b T) bool
	// Fallback is the focus behavior after removing the focused item
	Fallback Fallback
}

// Controller owns one domain collection plus its focused item
type Controller[T any] struct {
	cfg       Config[T]
	items     []T
	focusedID string
}

// New creates an empty controller
func New[T any](cfg Config[T]) *Controller[T] {
	return &Controller[T]{cfg: cfg}
}

// SetLoaded replaces the collection with a freshly fetched copy,
// sorting when a comparator is configured. If nothing is focused, or
// the focused element no longer exists, focus moves to the first
// element. Loading the same server state twice yields the same
// collection.
func (c *Controller[T]) SetLoaded(items []T) {
	c.items = make([]T, len(items))
	copy(c.items, items)
	if c.cfg.Less != nil {
		sort.SliceStable(c.items, func(i, j int) bool {
			return c.cfg.Less(c.items[i], c.items[j])
		})
	}

	if c.focusedID == "" || c.indexOf(c.focusedID) < 0 {
		c.focusFirst()
	}
}

// Items returns a copy of the current collection
func (c *Controller[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the collection size
func (c *Controller[T]) Len() int {
	return len(c.items)
}

// Filter returns the subsequence whose search text contains query
// (case-insensitive) and for which match returns true. A nil match or
// empty query is a wildcard. The source collection is never mutated;
// successive Filter calls compose by predicate intersection.
func (c *Controller[T]) Filter(query string, match func(T) bool) []T {
	return FilterSlice(c.items, query, c.cfg.SearchText, match)
}

// FilterSlice is the pure filtering function behind Controller.Filter
func FilterSlice[T any](items []T, query string, searchText func(T) []string, match func(T) bool) []T {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if match != nil && !match(item) {
			continue
		}
		if query != "" && !textMatches(searchText(item), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func textMatches(fields []string, query string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// ApplyCreate mirrors a successful server create: the server-returned
// entity joins the collection and takes focus.
func (c *Controller[T]) ApplyCreate(item T, prepend bool) {
	if prepend {
		c.items = append([]T{item}, c.items...)
	} else {
		c.items = append(c.items, item)
	}
	c.focusedID = c.cfg.ID(item)
}

// ApplyUpdate mirrors a successful server update: the element with
// the same identifier is replaced in place, preserving order. Focus on
// the updated element follows the new value automatically since focus
// is held by identifier.
func (c *Controller[T]) ApplyUpdate(item T) {
	id := c.cfg.ID(item)
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = item
	}
}

// ApplyRemove mirrors a successful server delete. When the removed
// element was focused, focus falls back per the configured policy.
func (c *Controller[T]) ApplyRemove(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)

	if c.focusedID == id {
		c.focusedID = ""
		if c.cfg.Fallback == FallbackFirst {
			c.focusFirst()
		}
	}
}

// Focused returns the focused element. The second return is false
// when nothing is focused, which is always the case for an empty
// collection.
func (c *Controller[T]) Focused() (T, bool) {
	var zero T
	if c.focusedID == "" {
		return zero, false
	}
	if i := c.indexOf(c.focusedID); i >= 0 {
		return c.items[i], true
	}
	return zero, false
}

// FocusedID returns the identifier of the focused element, empty when
// nothing is focused.
func (c *Controller[T]) FocusedID() string {
	if _, ok := c.Focused(); !ok {
		return ""
	}
	return c.focusedID
}

// Focus moves focus to the element with the given identifier,
// reporting whether it exists.
func (c *Controller[T]) Focus(id string) bool {
	if c.indexOf(id) < 0 {
		return false
	}
	c.focusedID = id
	return true
}

// ClearFocus unsets the focused item
func (c *Controller[T]) ClearFocus() {
	c.focusedID = ""
}

func (c *Controller[T]) focusFirst() {
	if len(c.items) > 0 {
		c.focusedID = c.cfg.ID(c.items[0])
	} else {
		c.focusedID = ""
	}
}

func (c *Controller[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.cfg.ID(item) == id {
			return i
		}
	}
	return -1
}
