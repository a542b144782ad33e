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

package property_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

const ns = wire.NamespaceTypes

// counter is a root owner that counts notifications.
type counter struct{ n int }

func (c *counter) MarkChanged() { c.n++ }

// note is a small node exercising every scalar kind and a nested list.
type note struct {
	property.Base
	subject property.Optional[string]
	size    property.Optional[int]
	flagged property.Optional[bool]
	due     property.Optional[time.Time]
	body    property.Bytes
	tags    *property.StringList
}

func newNote() *note {
	n := &note{Base: property.NewBase(ns), tags: property.NewStringList(ns)}
	n.tags.SetOwner(n)
	return n
}

func (n *note) SetSubject(s string) { property.Assign(n, &n.subject, s) }
func (n *note) SetSize(v int) { property.Assign(n, &n.size, v) }
func (n *note) SetFlagged(v bool) { property.Assign(n, &n.flagged, v) }
func (n *note) SetDue(t time.Time) { property.AssignTime(n, &n.due, t) }
func (n *note) SetBody(data []byte) { property.AssignBytes(n, &n.body, data) }
func (n *note) Tags() *property.StringList { return n.tags }

func (n *note) TryReadElement(r *wire.Reader) (bool, error) {
	switch r.LocalName() {
	case "Subject":
		s, err := r.ReadElementValue()
		if err != nil {
			return true, err
		}
		n.subject.Load(s)
	case "Size":
		v, err := r.ReadElementValueAsInt()
		if err != nil {
			return true, err
		}
		n.size.Load(v)
	case "Flagged":
		v, err := r.ReadElementValueAsBool()
		if err != nil {
			return true, err
		}
		n.flagged.Load(v)
	case "Due":
		v, err := r.ReadElementValueAsDateTime()
		if err != nil {
			return true, err
		}
		n.due.Load(v)
	case "Body":
		v, err := r.ReadBase64ElementValue()
		if err != nil {
			return true, err
		}
		n.body.Load(v)
	case "Tags":
		tags := property.NewStringList(ns)
		if err := property.ReadElement(r, tags); err != nil {
			return true, err
		}
		tags.SetOwner(n)
		n.tags = tags
	default:
		return false, nil
	}
	return true, nil
}

func (n *note) WriteElements(w *wire.Writer) error {
	if err := property.WriteOptional(w, ns, "Subject", n.subject); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "Size", n.size); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "Flagged", n.flagged); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "Due", n.due); err != nil {
		return err
	}
	if err := property.WriteBytes(w, ns, "Body", n.body); err != nil {
		return err
	}
	if n.tags.Len() > 0 {
		return property.WriteElement(w, ns, "Tags", n.tags)
	}
	return nil
}

func (n *note) MarkClean() {
	n.tags.MarkClean()
	n.Base.MarkClean()
}

// slot is an enumerated dictionary key.
type slot int

const (
	slotA slot = iota
	slotB
	slotC
)

var slotNames = [...]string{"A", "B", "C"}

func (s slot) Valid() bool { return s >= slotA && s <= slotC }

func (s slot) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return slotNames[s]
}

func parseSlot(str string) (slot, error) {
	for i, name := range slotNames {
		if name == str {
			return slot(i), nil
		}
	}
	return slotA, &errors.ParseError{Type: "slot", Value: str}
}

type slotEntry struct {
	property.DictionaryEntry[slot]
	label property.Optional[string]
}

func newSlotEntry() *slotEntry {
	return &slotEntry{DictionaryEntry: property.NewDictionaryEntry(ns, parseSlot)}
}

func labelled(label string) *slotEntry {
	e := newSlotEntry()
	e.label.Load(label)
	return e
}

func (e *slotEntry) SetLabel(s string) { property.Assign(e, &e.label, s) }

func (e *slotEntry) TryReadElement(r *wire.Reader) (bool, error) {
	if r.LocalName() != "Label" {
		return false, nil
	}
	s, err := r.ReadElementValue()
	if err != nil {
		return true, err
	}
	e.label.Load(s)
	return true, nil
}

func (e *slotEntry) WriteElements(w *wire.Writer) error {
	return property.WriteOptional(w, ns, "Label", e.label)
}

func newSlots() *property.Dictionary[slot, *slotEntry] {
	return property.NewDictionary[slot, *slotEntry](ns, "Entry", newSlotEntry)
}

func newNotes() *property.Collection[*note] {
	return property.NewCollection(ns,
		func(name string) (*note, bool) {
			if name == "Note" {
				return newNote(), true
			}
			return nil, false
		},
		func(*note) string { return "Note" },
	)
}

const decls = ` xmlns:m="` + wire.MessagesURI + `" xmlns:t="` + wire.TypesURI + `"`

func render(t *testing.T, name string, p property.Property) string {
	t.Helper()
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	if err := property.WriteElement(w, ns, name, p); err != nil {
		t.Fatalf("WriteElement(%s) error = %v", name, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.String()
}

func parse(doc, name string, p property.Property, opts ...wire.Option) error {
	r, err := wire.NewReader(strings.NewReader(doc), opts...)
	if err != nil {
		return err
	}
	return property.ReadRoot(r, ns, name, p)
}
