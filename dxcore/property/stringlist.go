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
	"slices"

	"dirpx.dev/dxews/dxcore/wire"
)

// StringList is an ordered list of strings written as repeated String
// elements.
type StringList struct {
	Base
	values []string
}

// NewStringList returns an empty list in ns holding values.
func NewStringList(ns wire.Namespace, values ...string) *StringList {
	return &StringList{Base: NewBase(ns), values: slices.Clone(values)}
}

// Len returns the number of strings.
func (l *StringList) Len() int { return len(l.values) }

// Values returns a snapshot of the strings.
func (l *StringList) Values() []string { return slices.Clone(l.values) }

// Contains reports whether s is in the list.
func (l *StringList) Contains(s string) bool { return slices.Contains(l.values, s) }

// Add appends s.
func (l *StringList) Add(s string) {
	l.values = append(l.values, s)
	l.MarkChanged()
}

// Set replaces the contents with values unless they are already equal.
func (l *StringList) Set(values ...string) {
	if slices.Equal(l.values, values) {
		return
	}
	l.values = slices.Clone(values)
	l.MarkChanged()
}

// Remove removes the first occurrence of s and reports whether it was
// present.
func (l *StringList) Remove(s string) bool {
	i := slices.Index(l.values, s)
	if i < 0 {
		return false
	}
	l.values = slices.Delete(l.values, i, i+1)
	l.MarkChanged()
	return true
}

// Clear removes every string.
func (l *StringList) Clear() {
	if len(l.values) == 0 {
		return
	}
	l.values = nil
	l.MarkChanged()
}

func (l *StringList) TryReadElement(r *wire.Reader) (bool, error) {
	if r.LocalName() != "String" {
		return false, nil
	}
	s, err := r.ReadElementValue()
	if err != nil {
		return true, err
	}
	l.values = append(l.values, s)
	return true, nil
}

func (l *StringList) WriteElements(w *wire.Writer) error {
	for _, s := range l.values {
		if err := w.WriteElementValue(l.Namespace(), "String", s); err != nil {
			return err
		}
	}
	return nil
}
