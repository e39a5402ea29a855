// Package sublist holds small ordered lists staged inside a form draft, such
// as quoted items or follow-up activities. Each item gets a stable key when
// it is added; edits and removals address items by key, never by position.
package sublist

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/juju/errors"
)

// Item is a staged value and its key.
type Item[T any] struct {
	Key   string `json:"key"`
	Value T      `json:"value"`
}

// List is an ordered list of staged values. The zero value accepts any value.
type List[T any] struct {
	items []Item[T]
	check func(T) error
}

// New returns an empty List that runs check on every added or edited value.
func New[T any](check func(T) error) *List[T] {
	return &List[T]{check: check}
}

// Of returns a List holding values, each under a fresh key. Values loaded
// this way are not checked.
func Of[T any](check func(T) error, values ...T) *List[T] {
	l := New(check)
	for _, v := range values {
		l.items = append(l.items, Item[T]{Key: uuid.NewString(), Value: v})
	}
	return l
}

func (l *List[T]) validate(v T) error {
	if l.check == nil {
		return nil
	}
	return l.check(v)
}

// Add validates v and appends it. A rejected value leaves the list unchanged.
func (l *List[T]) Add(v T) (string, error) {
	if err := l.validate(v); err != nil {
		return "", err
	}
	key := uuid.NewString()
	l.items = append(l.items, Item[T]{Key: key, Value: v})
	return key, nil
}

func (l *List[T]) index(key string) int {
	for i, it := range l.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the value stored under key.
func (l *List[T]) Get(key string) (T, bool) {
	var zero T
	i := l.index(key)
	if i < 0 {
		return zero, false
	}
	return l.items[i].Value, true
}

// Update applies edit to a copy of the value under key and stores the result
// if it passes validation.
func (l *List[T]) Update(key string, edit func(*T)) error {
	i := l.index(key)
	if i < 0 {
		return errors.NotFoundf("item %q", key)
	}
	v := l.items[i].Value
	edit(&v)
	if err := l.validate(v); err != nil {
		return err
	}
	l.items[i].Value = v
	return nil
}

// Remove deletes the item under key and reports whether it existed.
func (l *List[T]) Remove(key string) bool {
	i := l.index(key)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return true
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// Items returns a copy of the items in order.
func (l *List[T]) Items() []Item[T] {
	return append([]Item[T](nil), l.items...)
}

// Values returns the values in order.
func (l *List[T]) Values() []T {
	out := make([]T, len(l.items))
	for i, it := range l.items {
		out[i] = it.Value
	}
	return out
}

// MarshalJSON encodes the values as a plain array, the form sent upstream.
func (l *List[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Values())
}

// UnmarshalJSON replaces the contents with the values of a JSON array,
// keying each one afresh.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return errors.Trace(err)
	}
	l.items = l.items[:0]
	for _, v := range values {
		l.items = append(l.items, Item[T]{Key: uuid.NewString(), Value: v})
	}
	return nil
}
