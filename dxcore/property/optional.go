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
	"bytes"
	"slices"
	"time"

	"dirpx.dev/dxews/dxcore/wire"
)

// Optional holds a scalar field that is either set or unset. The zero value
// is unset.
type Optional[T comparable] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T comparable](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Value returns the value, or the zero value of T when unset.
func (o Optional[T]) Value() T {
	return o.value
}

// IsSet reports whether the field holds a value.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Load stores a value read from the wire without marking anything dirty.
func (o *Optional[T]) Load(v T) {
	o.value, o.set = v, true
}

// Assign stores v in o and marks owner changed, unless o already holds v.
func Assign[T comparable](owner Owner, o *Optional[T], v T) {
	if o.set && !CanAssign(o.value, v) {
		return
	}
	o.value, o.set = v, true
	owner.MarkChanged()
}

// AssignTime is Assign for date-times. Values are stored in UTC, so the
// same instant in another zone is not a change.
func AssignTime(owner Owner, o *Optional[time.Time], v time.Time) {
	Assign(owner, o, v.UTC())
}

// Unset clears o and marks owner changed, unless o is already unset.
func Unset[T comparable](owner Owner, o *Optional[T]) {
	if !o.set {
		return
	}
	var zero T
	o.value, o.set = zero, false
	owner.MarkChanged()
}

// WriteOptional writes o as a scalar element named name in ns when it is
// set, and nothing otherwise.
func WriteOptional[T comparable](w *wire.Writer, ns wire.Namespace, name string, o Optional[T]) error {
	if !o.set {
		return nil
	}
	return w.WriteElementValue(ns, name, o.value)
}

// Bytes holds a binary field that is either set or unset. The zero value
// is unset.
type Bytes struct {
	value []byte
	set   bool
}

// Get returns a copy of the value and whether it is set.
func (b Bytes) Get() ([]byte, bool) {
	return slices.Clone(b.value), b.set
}

// IsSet reports whether the field holds a value.
func (b Bytes) IsSet() bool {
	return b.set
}

// Load stores data read from the wire without marking anything dirty.
func (b *Bytes) Load(data []byte) {
	b.value, b.set = data, true
}

// AssignBytes stores a copy of data in b and marks owner changed, unless b
// already holds equal bytes.
func AssignBytes(owner Owner, b *Bytes, data []byte) {
	if b.set && bytes.Equal(b.value, data) {
		return
	}
	b.value, b.set = slices.Clone(data), true
	owner.MarkChanged()
}

// WriteBytes writes b as a base64 element named name in ns when it is set.
func WriteBytes(w *wire.Writer, ns wire.Namespace, name string, b Bytes) error {
	if !b.set {
		return nil
	}
	return w.WriteBase64ElementValue(ns, name, b.value)
}
