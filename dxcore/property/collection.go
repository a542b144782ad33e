/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package property

import (
	"iter"
	"slices"
	"strconv"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/wire"
)

// Item is the constraint on collection elements: a node that can be told
// apart from other nodes by identity.
type Item interface {
	comparable
	Property
}

// Collection is an ordered list of nodes of one family. Duplicates are
// allowed and order is arrival order on read and insertion order on write.
//
// The collection owns its items. Each item gets a handle as its owner, so
// that a change inside an item both marks the collection dirty and records
// the item in Modified.
//
// Subtypes supply two functions: newItem builds an empty item for a child
// element name it recognises, and itemName returns the element name an
// item is written under, which may differ from the name it was read from.
type Collection[T Item] struct {
	Base

	items    []T
	added    []T
	removed  []T
	modified []T

	newItem  func(name string) (T, bool)
	itemName func(item T) string
}

// NewCollection returns an empty collection in ns.
func NewCollection[T Item](ns wire.Namespace, newItem func(name string) (T, bool), itemName func(item T) string) *Collection[T] {
	return &Collection[T]{
		Base:     NewBase(ns),
		newItem:  newItem,
		itemName: itemName,
	}
}

type itemOwner[T Item] struct {
	c    *Collection[T]
	item T
}

func (o itemOwner[T]) MarkChanged() {
	o.c.itemChanged(o.item)
}

func (c *Collection[T]) itemChanged(item T) {
	if !slices.Contains(c.added, item) && !slices.Contains(c.modified, item) {
		c.modified = append(c.modified, item)
	}
	c.MarkChanged()
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// At returns the item at index i. It panics when i is out of range.
func (c *Collection[T]) At(i int) T {
	return c.items[i]
}

// Items returns a snapshot of the items in order. Changing the returned
// slice does not affect the collection.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

// All returns an iterator over the items in order.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range c.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Find returns the first item matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether item is in the collection.
func (c *Collection[T]) Contains(item T) bool {
	return slices.Contains(c.items, item)
}

// Add appends item and takes ownership of it. An item owned by another
// node is an *errors.ArgumentError; remove it from its owner first.
func (c *Collection[T]) Add(item T) error {
	if !c.canOwn(item) {
		return &errors.ArgumentError{Param: "item", Reason: "is owned by another node"}
	}
	present := slices.Contains(c.items, item)
	c.attach(item)
	c.items = append(c.items, item)
	if present {
		c.MarkChanged()
		return nil
	}
	if i := slices.Index(c.removed, item); i >= 0 {
		c.removed = slices.Delete(c.removed, i, i+1)
		c.modified = append(c.modified, item)
	} else {
		c.added = append(c.added, item)
	}
	c.MarkChanged()
	return nil
}

func (c *Collection[T]) canOwn(item T) bool {
	switch o := item.Owner().(type) {
	case nil:
		return true
	case itemOwner[T]:
		return o.c == c
	default:
		return false
	}
}

// Remove removes the first occurrence of item and reports whether it was
// present.
func (c *Collection[T]) Remove(item T) bool {
	i := slices.Index(c.items, item)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

// RemoveAt removes the item at index i. An index out of range is an
// *errors.ArgumentError.
func (c *Collection[T]) RemoveAt(i int) error {
	if i < 0 || i >= len(c.items) {
		return &errors.ArgumentError{Param: "index", Reason: strconv.Itoa(i) + " is out of range"}
	}
	c.removeAt(i)
	return nil
}

// Clear removes every item.
func (c *Collection[T]) Clear() {
	for len(c.items) > 0 {
		c.removeAt(len(c.items) - 1)
	}
}

func (c *Collection[T]) removeAt(i int) {
	item := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	if slices.Contains(c.items, item) {
		c.MarkChanged()
		return
	}

	item.SetOwner(nil)
	if j := slices.Index(c.added, item); j >= 0 {
		c.added = slices.Delete(c.added, j, j+1)
	} else {
		c.removed = append(c.removed, item)
	}
	if j := slices.Index(c.modified, item); j >= 0 {
		c.modified = slices.Delete(c.modified, j, j+1)
	}
	c.MarkChanged()
}

func (c *Collection[T]) attach(item T) {
	item.SetOwner(itemOwner[T]{c: c, item: item})
}

// Added returns the items added since the last MarkClean.
func (c *Collection[T]) Added() []T {
	return slices.Clone(c.added)
}

// Removed returns the items removed since the last MarkClean.
func (c *Collection[T]) Removed() []T {
	return slices.Clone(c.removed)
}

// Modified returns the items that were already present at the last
// MarkClean and changed since.
func (c *Collection[T]) Modified() []T {
	return slices.Clone(c.modified)
}

// MarkClean cleans every item and forgets pending changes.
func (c *Collection[T]) MarkClean() {
	for _, item := range c.items {
		item.MarkClean()
	}
	c.added, c.removed, c.modified = nil, nil, nil
	c.Base.MarkClean()
}

// TryReadElement builds an item when the element name is recognised,
// hydrates it and appends it. Items read from the wire are not reported by
// Added.
func (c *Collection[T]) TryReadElement(r *wire.Reader) (bool, error) {
	item, ok := c.newItem(r.LocalName())
	if !ok {
		return false, nil
	}
	if err := ReadElement(r, item); err != nil {
		return true, err
	}
	c.Load(item)
	return true, nil
}

// Load appends an item hydrated from the wire. Unlike Add it neither marks
// the collection dirty nor reports the item in Added.
func (c *Collection[T]) Load(item T) {
	c.attach(item)
	c.items = append(c.items, item)
}

// WriteElements writes every item wrapped in the element named by
// itemName.
func (c *Collection[T]) WriteElements(w *wire.Writer) error {
	for _, item := range c.items {
		if err := WriteElement(w, item.Namespace(), c.itemName(item), item); err != nil {
			return err
		}
	}
	return nil
}
