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
	"maps"
	"slices"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/wire"
)

// Key is the constraint on dictionary keys: an enumerated type whose
// String form is written in the entry's Key attribute. Keys are written in
// their numeric order.
type Key interface {
	~int
	String() string
	Valid() bool
}

// Entry is the constraint on dictionary values. Entries carry their own key
// and are built by embedding DictionaryEntry.
type Entry[K Key] interface {
	comparable
	Property
	Key() K
	setKey(k K)
}

// Dictionary maps enumerated keys to entries. The key stored in an entry
// always equals the key it is indexed under.
type Dictionary[K Key, V Entry[K]] struct {
	Base

	entries map[K]V
	changed map[K]struct{}
	removed map[K]struct{}

	entryName string
	newEntry  func() V
}

// NewDictionary returns an empty dictionary in ns whose entries are read
// from and written to elements named entryName.
func NewDictionary[K Key, V Entry[K]](ns wire.Namespace, entryName string, newEntry func() V) *Dictionary[K, V] {
	return &Dictionary[K, V]{
		Base:      NewBase(ns),
		entries:   make(map[K]V),
		changed:   make(map[K]struct{}),
		removed:   make(map[K]struct{}),
		entryName: entryName,
		newEntry:  newEntry,
	}
}

type entryOwner[K Key, V Entry[K]] struct {
	d   *Dictionary[K, V]
	key K
}

func (o entryOwner[K, V]) MarkChanged() {
	o.d.changed[o.key] = struct{}{}
	o.d.MarkChanged()
}

// Get returns the entry at k, or the zero V when there is none.
func (d *Dictionary[K, V]) Get(k K) V {
	return d.entries[k]
}

// TryGet returns the entry at k and whether it exists.
func (d *Dictionary[K, V]) TryGet(k K) (V, bool) {
	v, ok := d.entries[k]
	return v, ok
}

// Len returns the number of entries.
func (d *Dictionary[K, V]) Len() int {
	return len(d.entries)
}

// Keys returns the keys present, in write order.
func (d *Dictionary[K, V]) Keys() []K {
	return slices.Sorted(maps.Keys(d.entries))
}

// Set stores v under k, stamping k into v. A zero v removes the entry at k;
// removing an absent key is not an error. Keys outside the enumeration and
// entries owned by another node are an *errors.ArgumentError.
func (d *Dictionary[K, V]) Set(k K, v V) error {
	if !k.Valid() {
		return &errors.ArgumentError{Param: "key", Reason: "unknown key " + k.String()}
	}

	var zero V
	old, exists := d.entries[k]
	if v == zero {
		if !exists {
			return nil
		}
		old.SetOwner(nil)
		delete(d.entries, k)
		delete(d.changed, k)
		d.removed[k] = struct{}{}
		d.MarkChanged()
		return nil
	}

	if exists && old == v {
		return nil
	}
	if !d.canOwn(v) {
		return &errors.ArgumentError{Param: "value", Reason: "is owned by another node"}
	}
	if exists {
		old.SetOwner(nil)
	}
	if prev := v.Key(); prev != k && d.entries[prev] == v {
		delete(d.entries, prev)
		delete(d.changed, prev)
		d.removed[prev] = struct{}{}
	}
	d.insert(k, v)
	d.changed[k] = struct{}{}
	delete(d.removed, k)
	d.MarkChanged()
	return nil
}

func (d *Dictionary[K, V]) canOwn(v V) bool {
	switch o := v.Owner().(type) {
	case nil:
		return true
	case entryOwner[K, V]:
		return o.d == d
	default:
		return false
	}
}

func (d *Dictionary[K, V]) insert(k K, v V) {
	v.setKey(k)
	v.SetOwner(entryOwner[K, V]{d: d, key: k})
	d.entries[k] = v
}

// Changes returns the keys set or modified and the keys removed since the
// last MarkClean, each in write order.
func (d *Dictionary[K, V]) Changes() (changed, removed []K) {
	return slices.Sorted(maps.Keys(d.changed)), slices.Sorted(maps.Keys(d.removed))
}

// MarkClean cleans every entry and forgets pending changes.
func (d *Dictionary[K, V]) MarkClean() {
	for _, v := range d.entries {
		v.MarkClean()
	}
	clear(d.changed)
	clear(d.removed)
	d.Base.MarkClean()
}

// TryReadElement reads an entry element. The entry's key comes from its Key
// attribute; an entry read later replaces an earlier one with the same key.
func (d *Dictionary[K, V]) TryReadElement(r *wire.Reader) (bool, error) {
	if r.LocalName() != d.entryName {
		return false, nil
	}
	v := d.newEntry()
	if err := ReadElement(r, v); err != nil {
		return true, err
	}
	if old, ok := d.entries[v.Key()]; ok {
		old.SetOwner(nil)
	}
	d.insert(v.Key(), v)
	return true, nil
}

// WriteElements writes every entry in key order.
func (d *Dictionary[K, V]) WriteElements(w *wire.Writer) error {
	for _, k := range d.Keys() {
		v := d.entries[k]
		if err := WriteElement(w, v.Namespace(), d.entryName, v); err != nil {
			return err
		}
	}
	return nil
}

// DictionaryEntry is embedded by dictionary entries. It holds the entry's
// key and reads and writes it as the Key attribute.
type DictionaryEntry[K Key] struct {
	Base
	key   K
	parse func(string) (K, error)
}

// NewDictionaryEntry returns an entry base in ns that parses its key with
// parse.
func NewDictionaryEntry[K Key](ns wire.Namespace, parse func(string) (K, error)) DictionaryEntry[K] {
	return DictionaryEntry[K]{Base: NewBase(ns), parse: parse}
}

// Key returns the key the entry is stored under.
func (e *DictionaryEntry[K]) Key() K {
	return e.key
}

func (e *DictionaryEntry[K]) setKey(k K) {
	e.key = k
}

// ReadAttributes reads the Key attribute. A missing or unknown key is an
// *errors.UnmarshalError.
func (e *DictionaryEntry[K]) ReadAttributes(r *wire.Reader) error {
	s, ok := r.Attr("Key")
	if !ok {
		return r.Errorf(r.LocalName(), "missing Key attribute")
	}
	k, err := e.parse(s)
	if err != nil {
		line, column := r.Position()
		return &errors.UnmarshalError{
			Type:   r.LocalName(),
			Data:   []byte(s),
			Reason: "unknown key",
			Line:   line,
			Column: column,
			Err:    err,
		}
	}
	e.key = k
	return nil
}

// WriteAttributes writes the Key attribute.
func (e *DictionaryEntry[K]) WriteAttributes(w *wire.Writer) error {
	if !e.key.Valid() {
		return &errors.MarshalError{Type: "Key", Value: int(e.key)}
	}
	return w.WriteAttributeValue("Key", e.key.String())
}
